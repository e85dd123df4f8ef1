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

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/db47h/munch/token"
)

// A State is a state of an Automaton. Its meaning is private to the
// automaton, with the exception of Dead.
type State int32

// Dead is the state returned by Automaton.Step when no transition exists for
// the given input.
const Dead State = -1

// An Automaton is the decision procedure recognizing the tokens of a
// language. It is typically a transition table emitted by a generator
// (see package dfa), but any deterministic implementation will do.
//
// Step is never called on Dead. Step may receive the Invalid sentinel for
// malformed input; automata that do not accept it must return Dead.
//
// Accept returns the kind recognized when the input read so far ends in
// state s, or token.NIL if s is not accepting. When a state accepts more
// than one kind, the automaton must return the kind declared first (lowest
// tag). The start state must not be accepting: the lexer never emits empty
// tokens.
type Automaton interface {
	Start() State
	Step(s State, r rune) State
	Accept(s State) token.Kind
}

// A Language is an Automaton bundled with its kind name table and the kind
// used to report unrecognized input.
type Language interface {
	Automaton
	Names() token.Names
	ErrorKind() token.Kind
}

// A Lexer scans a source buffer and returns tokens using maximal munch: at
// each position, it emits the longest prefix of the remaining input that the
// language recognizes.
//
// A Lexer is not safe for concurrent use. Independent lexers may share the
// same Language and the same source buffer.
type Lexer struct {
	cursor
	lang  Language
	names token.Names
	errK  token.Kind
	log   *slog.Logger
	kw    map[token.Kind]map[string]token.Kind
	split bool
	done  bool

	// (state, offset) pairs from which no accepting state can be reached.
	failed  map[visit]struct{}
	failMax int
	trail   []visit
}

type visit struct {
	s   State
	off int
}

// New returns a new lexer for src. The source buffer must not be modified
// while the lexer or any of the byte slices it returned are in use.
//
// New panics if lang's error kind is NIL or not part of its name table, or
// if an option references a kind that is not part of the name table.
func New(src []byte, lang Language, opts ...Option) *Lexer {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	l := &Lexer{
		lang:  lang,
		names: lang.Names(),
		errK:  lang.ErrorKind(),
		log:   o.log,
		kw:    o.keywords,
		split: o.splitErrors,
	}
	if l.errK == token.NIL || !l.names.Contains(l.errK) {
		panic(fmt.Sprintf("munch: invalid error kind %d", l.errK))
	}
	for k, words := range l.kw {
		if !l.names.Contains(k) {
			panic(fmt.Sprintf("munch: unknown keyword base kind %d", k))
		}
		for w, kk := range words {
			if kk == token.NIL || !l.names.Contains(kk) {
				panic(fmt.Sprintf("munch: invalid kind %d for keyword %q", kk, w))
			}
		}
	}
	l.Reset(src)
	return l
}

// Reset resets the lexer to scan src from the beginning. Options and
// language are preserved.
func (l *Lexer) Reset(src []byte) {
	l.cursor.init(src)
	l.done = false
	l.forget()
}

// Source returns the source buffer.
func (l *Lexer) Source() []byte {
	return l.src
}

// Offset returns the current byte offset, i.e. the start of the next token.
func (l *Lexer) Offset() int {
	return l.off
}

// Current returns the rune at the current offset and its width. At the end
// of input, it returns (EOF, 0).
func (l *Lexer) Current() (rune, int) {
	return l.r, l.w
}

// Done returns true once the lexer has returned a NIL token.
func (l *Lexer) Done() bool {
	return l.done
}

// Name returns the display name of kind k. It panics if k is not part of the
// lexer's language.
func (l *Lexer) Name(k token.Kind) string {
	return l.names.Name(k)
}

// Bytes returns the source bytes of t. See Substr.
func (l *Lexer) Bytes(t token.Token) []byte {
	return Substr(l.src, t.First, t.Last)
}

// Next scans and returns the next token.
//
// Once the end of input is reached, Next returns a NIL token with an empty
// span at len(src), and keeps doing so on every subsequent call.
//
// Input that the language does not recognize is returned as tokens of the
// language's error kind. By default, a run of consecutive unrecognized runes
// is returned as a single token that ends where a valid token starts (see
// SplitErrors). Malformed UTF-8 sequences are reported the same way unless
// the language accepts the Invalid sentinel.
func (l *Lexer) Next() token.Token {
	start := l.off
	if l.eof() {
		l.done = true
		return token.Token{Kind: token.NIL, First: start, Last: start}
	}

	if len(l.failed) > 0 && start >= l.failMax {
		l.forget()
	}
	k, end := l.munch()
	if k == token.NIL {
		k, end = l.errK, l.unrecognized(start)
		if l.log != nil {
			l.log.Debug("munch: unrecognized input", slog.Int("first", start), slog.Int("last", end))
		}
	} else if words := l.kw[k]; words != nil {
		if kk, ok := words[string(l.src[start:end])]; ok {
			k = kk
		}
	}
	l.seek(end)

	if l.off <= start {
		panic(fmt.Sprintf("munch: lexer failed to make progress at offset %d", start))
	}
	if l.log != nil {
		l.log.Debug("munch: token", slog.String("kind", l.names.Name(k)), slog.Int("first", start), slog.Int("last", end))
	}
	return token.Token{Kind: k, First: start, Last: end}
}

// munch runs the automaton from the current position and returns the last
// accepted kind and the offset where that match ends. It returns token.NIL
// if nothing matched. The cursor is left past the last rune examined.
//
// Every (state, offset) pair visited after the last match is recorded as
// failed, and later runs stop as soon as they reach a failed pair. No pair
// is walked past twice, which keeps a full scan linear in the input size
// even when error runs force the automaton to be restarted at each rune.
func (l *Lexer) munch() (token.Kind, int) {
	var (
		lang = l.lang
		k    = token.NIL
		end  = l.off
		s    = lang.Start()
	)
	l.trail = l.trail[:0]
	for !l.eof() {
		v := visit{s, l.off}
		if _, ok := l.failed[v]; ok {
			break
		}
		l.trail = append(l.trail, v)
		if s = lang.Step(s, l.r); s == Dead {
			break
		}
		l.advance()
		if a := lang.Accept(s); a != token.NIL {
			k, end = a, l.off
			l.trail = l.trail[:0]
		}
	}
	if len(l.trail) > 0 {
		if l.failed == nil {
			l.failed = make(map[visit]struct{})
		}
		for _, v := range l.trail {
			l.failed[v] = struct{}{}
		}
		l.failMax = max(l.failMax, l.trail[len(l.trail)-1].off)
	}
	return k, end
}

// forget drops the failed pairs recorded so far. Large sets are released
// rather than cleared so that clearing stays cheap on the next tokens.
func (l *Lexer) forget() {
	if len(l.failed) > 64 {
		l.failed = nil
	} else {
		clear(l.failed)
	}
	l.failMax = 0
}

// unrecognized returns the end offset of the run of unrecognized input
// starting at start.
func (l *Lexer) unrecognized(start int) int {
	l.seek(start)
	l.advance()
	if l.split {
		return l.off
	}
	for !l.eof() {
		p := l.off
		k, _ := l.munch()
		l.seek(p)
		if k != token.NIL {
			break
		}
		l.advance()
	}
	return l.off
}

// All returns an iterator over the remaining tokens, NIL excluded.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			t := l.Next()
			if t.Kind == token.NIL || !yield(t) {
				return
			}
		}
	}
}

// Tokens scans the remaining input and returns all tokens, including the
// terminal NIL token.
func (l *Lexer) Tokens() []token.Token {
	var ts []token.Token
	for {
		t := l.Next()
		ts = append(ts, t)
		if t.Kind == token.NIL {
			return ts
		}
	}
}

// Substr returns src[first:last] with its capacity clipped to last, so that
// appending to the returned slice never overwrites the source. No copy is
// made.
//
// Substr panics if the span is not within src: spans returned by a Lexer are
// always valid.
func Substr(src []byte, first, last int) []byte {
	if first < 0 || first > last || last > len(src) {
		panic(fmt.Sprintf("munch: span [%d:%d] out of range [0:%d]", first, last, len(src)))
	}
	return src[first:last:last]
}
