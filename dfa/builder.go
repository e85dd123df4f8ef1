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

package dfa

import (
	"fmt"
	"slices"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/db47h/munch/token"
)

// A Builder assembles a Table.
//
// Kinds are declared with Kind, in priority order: when a state accepts more
// than one kind, the kind declared first wins.
//
// Builder methods do not return errors. The first error encountered is
// recorded and returned by Build; subsequent calls are ignored.
type Builder struct {
	names  []string
	states []State
	errK   token.Kind
	err    error
}

// NewBuilder returns a new Builder. The start state is state 0.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 1)}
}

// Kind declares a new token kind and returns its tag.
func (b *Builder) Kind(name string) token.Kind {
	b.names = append(b.names, name)
	return token.Kind(len(b.names))
}

// Error sets the kind of unrecognized input. It must have been declared with
// Kind.
func (b *Builder) Error(k token.Kind) {
	b.errK = k
}

// State adds a new state and returns its index.
func (b *Builder) State() int {
	b.states = append(b.states, State{})
	return len(b.states) - 1
}

// Accept marks state s as accepting kind k. If s already accepts a kind
// declared before k, the call has no effect.
func (b *Builder) Accept(s int, k token.Kind) {
	if !b.valid(s) {
		return
	}
	if k == token.NIL || int(k) > len(b.names) {
		b.fail(fmt.Errorf("%w: state %d: accept of undeclared kind %d", ErrInvalidTable, s, k))
		return
	}
	st := &b.states[s]
	if st.Accept == token.NIL || k < st.Accept {
		st.Accept = k
	}
}

// Range adds a transition from state from to state to on any rune in [lo, hi].
func (b *Builder) Range(from int, lo, hi rune, to int) {
	if !b.valid(from) || !b.valid(to) {
		return
	}
	if lo < 0 || hi > unicode.MaxRune || lo > hi {
		b.fail(fmt.Errorf("%w: state %d: invalid range %#U-%#U", ErrInvalidTable, from, lo, hi))
		return
	}
	b.states[from].Edges = append(b.states[from].Edges, Edge{lo, hi, int32(to)})
}

// Class adds a transition from state from to state to on any rune in the
// union of the given tables.
func (b *Builder) Class(from, to int, tables ...*unicode.RangeTable) {
	if len(tables) == 0 {
		return
	}
	rt := tables[0]
	if len(tables) > 1 {
		rt = rangetable.Merge(tables...)
	}
	for _, r := range rt.R16 {
		b.stride(from, rune(r.Lo), rune(r.Hi), rune(r.Stride), to)
	}
	for _, r := range rt.R32 {
		b.stride(from, rune(r.Lo), rune(r.Hi), rune(r.Stride), to)
	}
}

func (b *Builder) stride(from int, lo, hi, stride rune, to int) {
	if stride <= 1 {
		b.Range(from, lo, hi, to)
		return
	}
	for r := lo; r <= hi; r += stride {
		b.Range(from, r, r, to)
	}
}

// Runes adds a transition from state from to state to on any of the runes in
// s.
func (b *Builder) Runes(from int, s string, to int) {
	b.Class(from, to, rangetable.New([]rune(s)...))
}

// Loop adds a transition from state s to itself on any rune in the union of
// the given tables.
func (b *Builder) Loop(s int, tables ...*unicode.RangeTable) {
	b.Class(s, s, tables...)
}

// Literal adds a chain of states matching s from state from, and marks the
// final state as accepting k. It returns the final state.
//
// Transitions on single runes already present along the path are shared, so
// that literals with common prefixes form a trie. A rune of s covered by a
// wider range transition is an error, as is a literal registered twice.
func (b *Builder) Literal(from int, s string, k token.Kind) int {
	if s == "" {
		b.fail(fmt.Errorf("%w: empty literal", ErrInvalidTable))
		return from
	}
	n := from
	for _, r := range s {
		if !b.valid(n) {
			return n
		}
		next := -1
		for _, e := range b.states[n].Edges {
			if e.Lo <= r && r <= e.Hi {
				if e.Lo != e.Hi {
					b.fail(fmt.Errorf("%w: state %d: literal %q: %#U: %w", ErrInvalidTable, n, s, r, ErrOverlap))
					return n
				}
				next = int(e.Next)
				break
			}
		}
		if next < 0 {
			next = b.State()
			b.Range(n, r, r, next)
		}
		n = next
	}
	if b.valid(n) && b.states[n].Accept != token.NIL {
		b.fail(fmt.Errorf("%w: literal %q registered twice", ErrInvalidTable, s))
		return n
	}
	b.Accept(n, k)
	return n
}

// Build returns the transition table. Transitions of each state are sorted
// and adjacent ranges with the same target are merged. Overlapping ranges
// with different targets are reported as ErrOverlap.
//
// The Builder must not be used after calling Build.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	names, err := token.NewNames(b.names...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	for i := range b.states {
		edges, err := normalize(b.states[i].Edges)
		if err != nil {
			return nil, fmt.Errorf("%w: state %d: %w", ErrInvalidTable, i, err)
		}
		b.states[i].Edges = edges
	}
	t := &Table{
		States: b.states,
		Kinds:  names,
		Error:  b.errK,
	}
	if err = t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustBuild is like Build but panics on error. It simplifies the
// initialization of global tables.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func normalize(edges []Edge) ([]Edge, error) {
	if len(edges) == 0 {
		return nil, nil
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})
	out := edges[:1]
	for _, e := range edges[1:] {
		p := &out[len(out)-1]
		switch {
		case e.Lo > p.Hi+1:
			out = append(out, e)
		case e.Next == p.Next:
			p.Hi = max(p.Hi, e.Hi)
		case e.Lo > p.Hi:
			// adjacent, different targets
			out = append(out, e)
		default:
			return nil, fmt.Errorf("%#U-%#U: %w", e.Lo, e.Hi, ErrOverlap)
		}
	}
	return slices.Clip(out), nil
}

func (b *Builder) valid(s int) bool {
	if b.err != nil {
		return false
	}
	if s < 0 || s >= len(b.states) {
		b.fail(fmt.Errorf("%w: no such state %d", ErrInvalidTable, s))
		return false
	}
	return true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
