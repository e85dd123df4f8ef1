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

// Package report formats diagnostics for token spans, showing the offending
// source line with the span underlined:
//
//	INPUT:2:11: unrecognized input
//	|déjà vu 2<
//	|        ^
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"

	"github.com/db47h/munch/token"
)

// Fprint writes a diagnostic for the span [first, last) of f to w. Only the
// part of the span on the first line is underlined. An empty span gets a
// single caret.
func Fprint(w io.Writer, f *token.File, first, last int, msg string) error {
	pos := f.Position(first)
	if _, err := fmt.Fprintf(w, "%s: %s\n", pos, msg); err != nil {
		return err
	}
	if !pos.IsValid() {
		return nil
	}
	l := f.LineBytes(first)
	b := min(pos.Column-1, len(l))
	e := min(b+max(last-first, 0), len(l))

	var sb strings.Builder
	sb.WriteByte('|')
	sb.Write(l)
	sb.WriteString("\n|")
	pad(&sb, string(l[:b]))
	sb.WriteByte('^')
	if n := Width(string(l[b:e])); n > 1 {
		sb.WriteString(strings.Repeat("~", n-1))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// Width computes the width in text cells of s, supposing rendering with a
// UTF-8 locale and a monospaced font. Grapheme clusters count as a single
// character and East Asian wide or fullwidth characters count for two cells.
// Tabs count as one cell.
func Width(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n += clusterWidth(g.Runes())
	}
	return n
}

func clusterWidth(rs []rune) int {
	r := rs[0]
	if r == '\t' {
		return 1
	}
	if !unicode.IsGraphic(r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	default:
		// EastAsianAmbiguous depends on user locale. 2 if locale is CJK, 1 otherwise.
		return 1
	}
}

// pad writes blanks covering the display width of s. Tabs are kept as is so
// that the caret stays aligned whatever the terminal's tab stops.
func pad(sb *strings.Builder, s string) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		rs := g.Runes()
		if rs[0] == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", clusterWidth(rs)))
	}
}
