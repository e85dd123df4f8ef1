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
	"errors"
	"fmt"
)

// NILName is the display name of the NIL kind in tables built by NewNames.
const NILName = "NIL"

// Common errors.
var (
	ErrEmptyName     = errors.New("empty kind name")
	ErrDuplicateName = errors.New("duplicate kind name")
)

// Names maps kinds to their display names. Names[k] is the name of kind k;
// Names[0] is the name of NIL.
//
// Names is meant for diagnostics. A Names value must not be modified once it
// has been handed to a lexer.
type Names []string

// NewNames returns a name table for kinds 1 through len(names), in order.
// The NIL entry is added automatically.
func NewNames(names ...string) (Names, error) {
	n := make(Names, 0, len(names)+1)
	n = append(n, NILName)
	seen := make(map[string]Kind, len(names)+1)
	seen[NILName] = NIL
	for i, s := range names {
		k := Kind(i + 1)
		if s == "" {
			return nil, fmt.Errorf("kind %d: %w", k, ErrEmptyName)
		}
		if p, ok := seen[s]; ok {
			return nil, fmt.Errorf("kind %d: %w %q (already used by kind %d)", k, ErrDuplicateName, s, p)
		}
		seen[s] = k
		n = append(n, s)
	}
	return n, nil
}

// MustNames is like NewNames but panics on error. It simplifies the
// initialization of global tables.
func MustNames(names ...string) Names {
	n, err := NewNames(names...)
	if err != nil {
		panic(err)
	}
	return n
}

// Name returns the display name of k. It panics if k is not part of the
// table.
func (n Names) Name(k Kind) string {
	if uint64(k) >= uint64(len(n)) {
		panic(fmt.Sprintf("token: unknown kind %d (table has %d kinds)", k, len(n)))
	}
	return n[k]
}

// Contains returns true if k is part of the table.
func (n Names) Contains(k Kind) bool {
	return uint64(k) < uint64(len(n))
}

// Lookup returns the kind with the given name.
func (n Names) Lookup(name string) (Kind, bool) {
	for i, s := range n {
		if s == name {
			return Kind(i), true
		}
	}
	return NIL, false
}

// Len returns the number of kinds in the table, including NIL.
func (n Names) Len() int {
	return len(n)
}
