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

// Package dfa implements the transition table format used by generated munch
// lexers.
//
// A Table is a deterministic finite automaton over runes. Each state holds a
// sorted list of disjoint rune ranges with their target state, and the kind
// of token it accepts, if any. State 0 is the start state.
//
// Tables are normally emitted by a generator as Go literals. Builder
// assembles tables programmatically, which is convenient for small languages
// and tests.
package dfa

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/db47h/munch"
	"github.com/db47h/munch/token"
)

// Common errors.
var (
	ErrInvalidTable = errors.New("invalid transition table")
	ErrOverlap      = errors.New("overlapping transitions")
)

// An Edge is a transition on any rune in [Lo, Hi] to state Next.
type Edge struct {
	Lo, Hi rune
	Next   int32
}

// A State is a state of a Table.
type State struct {
	Accept token.Kind // token.NIL if not accepting
	Edges  []Edge     // sorted, disjoint
}

// A Table is a transition table. It implements munch.Language.
//
// A Table must not be modified once in use by a lexer. It is safe to share
// a Table between lexers running concurrently.
type Table struct {
	States []State
	Kinds  token.Names
	Error  token.Kind // kind of unrecognized input
}

// Start implements munch.Automaton.
func (t *Table) Start() munch.State {
	return 0
}

// Step implements munch.Automaton.
func (t *Table) Step(s munch.State, r rune) munch.State {
	e := t.States[s].Edges
	i, j := 0, len(e)
	for i < j {
		h := int(uint(i+j) >> 1)
		if e[h].Hi < r {
			i = h + 1
		} else {
			j = h
		}
	}
	if i < len(e) && e[i].Lo <= r {
		return munch.State(e[i].Next)
	}
	return munch.Dead
}

// Accept implements munch.Automaton.
func (t *Table) Accept(s munch.State) token.Kind {
	return t.States[s].Accept
}

// Names implements munch.Language.
func (t *Table) Names() token.Names {
	return t.Kinds
}

// ErrorKind implements munch.Language.
func (t *Table) ErrorKind() token.Kind {
	return t.Error
}

// Validate checks the consistency of the table. All errors wrap
// ErrInvalidTable, or ErrOverlap for edges that are out of order.
func (t *Table) Validate() error {
	if len(t.States) == 0 {
		return fmt.Errorf("%w: no start state", ErrInvalidTable)
	}
	if t.Error == token.NIL || !t.Kinds.Contains(t.Error) {
		return fmt.Errorf("%w: invalid error kind %d", ErrInvalidTable, t.Error)
	}
	if t.States[0].Accept != token.NIL {
		return fmt.Errorf("%w: start state accepts the empty string", ErrInvalidTable)
	}
	for i := range t.States {
		s := &t.States[i]
		if !t.Kinds.Contains(s.Accept) {
			return fmt.Errorf("%w: state %d: unknown kind %d", ErrInvalidTable, i, s.Accept)
		}
		for j, e := range s.Edges {
			if e.Lo < 0 || e.Hi > utf8.MaxRune || e.Lo > e.Hi {
				return fmt.Errorf("%w: state %d: invalid range %#U-%#U", ErrInvalidTable, i, e.Lo, e.Hi)
			}
			if e.Next < 0 || int(e.Next) >= len(t.States) {
				return fmt.Errorf("%w: state %d: invalid target state %d", ErrInvalidTable, i, e.Next)
			}
			if j > 0 && s.Edges[j-1].Hi >= e.Lo {
				return fmt.Errorf("%w: state %d: %#U-%#U: %w", ErrInvalidTable, i, e.Lo, e.Hi, ErrOverlap)
			}
		}
	}
	return nil
}
