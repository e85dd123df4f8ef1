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

// Package basic provides a small ready-to-use language for munch lexers:
// identifiers, decimal and hexadecimal numbers, double quoted strings, line
// comments, white space and C-like operators.
//
// It is laid out the way a generator would emit a language: a constant for
// each kind, in priority order, and a transition table built once.
package basic

import (
	"fmt"
	"unicode"

	"github.com/db47h/munch"
	"github.com/db47h/munch/dfa"
	"github.com/db47h/munch/token"
)

// Token kinds.
const (
	Error      token.Kind = iota + 1 // unrecognized input
	Space                            // white space
	Comment                          // // up to the end of line
	Ident                            // identifier
	Number                           // 42, 0x2a, 4.2
	String                           // "quoted string"
	LeftParen                        // (
	RightParen                       // )
	LeftBrace                        // {
	RightBrace                       // }
	Comma                            // ,
	Semicolon                        // ;
	Dot                              // .
	Assign                           // =
	Eq                               // ==
	Not                              // !
	NotEq                            // !=
	Less                             // <
	LessEq                           // <=
	Greater                          // >
	GreaterEq                        // >=
	Plus                             // +
	PlusAssign                       // +=
	Minus                            // -
	MinusAssign                      // -=
	Mul                              // *
	Div                              // /
	AndAnd                           // &&
	OrOr                             // ||
	If                               // if
	Else                             // else
	For                              // for
	Func                             // func
	Return                           // return
	Var                              // var
)

var names = [...]string{
	Error:       "Error",
	Space:       "Space",
	Comment:     "Comment",
	Ident:       "Ident",
	Number:      "Number",
	String:      "String",
	LeftParen:   "LeftParen",
	RightParen:  "RightParen",
	LeftBrace:   "LeftBrace",
	RightBrace:  "RightBrace",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	Dot:         "Dot",
	Assign:      "Assign",
	Eq:          "Eq",
	Not:         "Not",
	NotEq:       "NotEq",
	Less:        "Less",
	LessEq:      "LessEq",
	Greater:     "Greater",
	GreaterEq:   "GreaterEq",
	Plus:        "Plus",
	PlusAssign:  "PlusAssign",
	Minus:       "Minus",
	MinusAssign: "MinusAssign",
	Mul:         "Mul",
	Div:         "Div",
	AndAnd:      "AndAnd",
	OrOr:        "OrOr",
	If:          "If",
	Else:        "Else",
	For:         "For",
	Func:        "Func",
	Return:      "Return",
	Var:         "Var",
}

var punct = [...]struct {
	s string
	k token.Kind
}{
	{"(", LeftParen}, {")", RightParen}, {"{", LeftBrace}, {"}", RightBrace},
	{",", Comma}, {";", Semicolon}, {"=", Assign}, {"==", Eq},
	{"!", Not}, {"!=", NotEq}, {"<", Less}, {"<=", LessEq},
	{">", Greater}, {">=", GreaterEq}, {"+", Plus}, {"+=", PlusAssign},
	{"-", Minus}, {"-=", MinusAssign}, {"*", Mul}, {"&&", AndAnd},
	{"||", OrOr},
}

// Keywords maps keywords to their kind. Keywords are lexed as identifiers,
// then remapped by the munch.Keywords option set by New. Changes to this map
// after package initialization have no effect.
var Keywords = map[string]token.Kind{
	"if":     If,
	"else":   Else,
	"for":    For,
	"func":   Func,
	"return": Return,
	"var":    Var,
}

var (
	table = build()
	kwOpt = munch.Keywords(Ident, Keywords)
)

// Language returns the language's transition table. The table is shared
// and must not be modified.
func Language() *dfa.Table {
	return table
}

// New returns a new lexer for src with keyword recognition enabled.
func New(src []byte, opts ...munch.Option) *munch.Lexer {
	opts = append([]munch.Option{kwOpt}, opts...)
	return munch.New(src, table, opts...)
}

var (
	digits    = &unicode.RangeTable{R16: []unicode.Range16{{Lo: '0', Hi: '9', Stride: 1}}}
	hexDigits = &unicode.RangeTable{R16: []unicode.Range16{
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 'A', Hi: 'F', Stride: 1},
		{Lo: 'a', Hi: 'f', Stride: 1},
	}}
	identStart = &unicode.RangeTable{R16: []unicode.Range16{{Lo: '_', Hi: '_', Stride: 1}}}
)

func build() *dfa.Table {
	b := dfa.NewBuilder()
	for k := Error; k <= Var; k++ {
		if kk := b.Kind(names[k]); kk != k {
			panic(fmt.Sprintf("basic: kind %s declared as %d, want %d", names[k], kk, k))
		}
	}
	b.Error(Error)

	// white space
	sp := b.State()
	b.Class(0, sp, unicode.White_Space)
	b.Loop(sp, unicode.White_Space)
	b.Accept(sp, Space)

	// identifiers
	id := b.State()
	b.Class(0, id, unicode.Letter, identStart)
	b.Loop(id, unicode.Letter, unicode.Digit, identStart)
	b.Accept(id, Ident)

	// numbers: [0-9]+ (. [0-9]+)? | 0[xX][0-9a-fA-F]+
	zero, dec, dot, frac, x, hex := b.State(), b.State(), b.State(), b.State(), b.State(), b.State()
	b.Range(0, '0', '0', zero)
	b.Range(0, '1', '9', dec)
	b.Class(zero, dec, digits)
	b.Runes(zero, "xX", x)
	b.Runes(zero, ".", dot)
	b.Loop(dec, digits)
	b.Runes(dec, ".", dot)
	b.Class(dot, frac, digits)
	b.Loop(frac, digits)
	b.Class(x, hex, hexDigits)
	b.Loop(hex, hexDigits)
	b.Accept(zero, Number)
	b.Accept(dec, Number)
	b.Accept(frac, Number)
	b.Accept(hex, Number)

	// strings
	str, esc, end := b.State(), b.State(), b.State()
	b.Range(0, '"', '"', str)
	b.Range(str, 0, '\n'-1, str)
	b.Range(str, '\n'+1, '"'-1, str)
	b.Range(str, '"'+1, '\\'-1, str)
	b.Range(str, '\\'+1, unicode.MaxRune, str)
	b.Range(str, '\\', '\\', esc)
	b.Range(str, '"', '"', end)
	b.Range(esc, 0, '\n'-1, str)
	b.Range(esc, '\n'+1, unicode.MaxRune, str)
	b.Accept(end, String)

	// punctuation; "." and "/" are shared with numbers and comments
	for _, p := range punct {
		b.Literal(0, p.s, p.k)
	}
	b.Literal(0, ".", Dot)
	slash := b.Literal(0, "/", Div)
	cmt := b.State()
	b.Range(slash, '/', '/', cmt)
	b.Range(cmt, 0, '\n'-1, cmt)
	b.Range(cmt, '\n'+1, unicode.MaxRune, cmt)
	b.Accept(cmt, Comment)

	return b.MustBuild()
}
