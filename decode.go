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

package munch

import "unicode/utf8"

// Sentinel values returned by Decode in place of a valid rune.
const (
	EOF     rune = -1 // end of input
	Invalid rune = -2 // malformed UTF-8 sequence
)

// Decode decodes the UTF-8 encoded rune starting at src[off] and returns it
// along with its width in bytes.
//
// At off == len(src), Decode returns (EOF, 0). If the bytes at off do not
// form a valid encoding, it returns (Invalid, 1) so that callers can skip
// the offending byte and resume decoding. Note that a properly encoded
// U+FFFD is a valid rune and decodes as such.
//
// Decode panics if off is outside of [0, len(src)].
func Decode(src []byte, off int) (rune, int) {
	if off == len(src) {
		return EOF, 0
	}
	// Common case: ASCII
	if b := src[off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, w := utf8.DecodeRune(src[off:])
	if r == utf8.RuneError && w == 1 {
		return Invalid, 1
	}
	return r, w
}
