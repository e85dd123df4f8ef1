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

// Package token defines the token descriptor produced by a munch lexer, the
// kind enumeration shared with generated rule sets, and helpers to map byte
// offsets back to line and column positions.
package token

import (
	"fmt"
	"strconv"
)

// A Kind is the integer tag of a token. Kinds other than NIL are defined by
// the rule set driving the lexer and are opaque to the engine.
type Kind uint32

// NIL is the reserved end-of-stream kind. It is always the last token a lexer
// produces for a given input.
const NIL Kind = 0

// String returns a generic representation of k. Use a Names table to get the
// display name defined by a rule set.
func (k Kind) String() string {
	if k == NIL {
		return "NIL"
	}
	return "Kind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// Token describes a token as a half-open byte span [First, Last) in the
// source buffer.
type Token struct {
	Kind  Kind
	First int // offset of the first byte
	Last  int // offset of the byte following the token
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.Last - t.First
}

// IsNIL returns true if t is the terminal token.
func (t Token) IsNIL() bool {
	return t.Kind == NIL
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.First, t.Last)
}
