// Copyright 2017-2026 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package token

import (
	"bytes"
	"fmt"
)

// Position describes an arbitrary source position including the file, line, and column location.
type Position struct {
	Filename string
	Offset   int // byte offset in the file
	Line     int // 1-based line number
	Column   int // 1-based column number (byte index)
}

// IsValid returns true if the position has a line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File maps byte offsets in a source buffer to line/column positions.
// Line offsets are computed once by NewFile; a File is safe for concurrent
// use.
type File struct {
	name  string
	src   []byte
	lines []int // 0-based offsets of line starts
}

// NewFile returns a new File for the given source.
func NewFile(name string, src []byte) *File {
	lines := make([]int, 1, bytes.Count(src, []byte{'\n'})+1)
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{
		name:  name,
		src:   src,
		lines: lines,
	}
}

// Name returns the file name.
func (f *File) Name() string {
	return f.name
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte {
	return f.src
}

// LineCount returns the number of lines in the file. A trailing newline
// starts a new, empty line.
func (f *File) LineCount() int {
	return len(f.lines)
}

// line returns the 0-based index of the line containing offset off.
func (f *File) line(off int) int {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > off) {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}

// Position returns the position for byte offset off. Offsets outside of
// [0, len(src)] yield an invalid Position.
func (f *File) Position(off int) Position {
	if off < 0 || off > len(f.src) {
		return Position{Filename: f.name, Offset: off}
	}
	l := f.line(off)
	return Position{f.name, off, l + 1, off - f.lines[l] + 1}
}

// LineStart returns the offset of the given 1-based line, or -1 if there is
// no such line.
func (f *File) LineStart(line int) int {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// LineBytes returns the contents of the line containing offset off, without
// its line terminator. The returned slice aliases the source buffer.
func (f *File) LineBytes(off int) []byte {
	if off < 0 || off > len(f.src) {
		return nil
	}
	l := f.line(off)
	start := f.lines[l]
	end := len(f.src)
	if l+1 < len(f.lines) {
		end = f.lines[l+1] - 1 // drop '\n'
	}
	if end > start && f.src[end-1] == '\r' {
		end--
	}
	return f.src[start:end:end]
}
