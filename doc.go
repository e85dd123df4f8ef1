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

/*
Package munch provides the runtime half of a generated lexer: a scanning
engine that turns a byte buffer into a sequence of classified tokens, driven
by an Automaton that recognizes the tokens of a given language.

The Automaton is usually a transition table emitted by a generator from a
grammar description (see package dfa for the table format), but it can be
any deterministic state machine, including a hand written switch over the
input rune.

# Tokens

A token is a half-open byte span [First, Last) in the source buffer along
with its kind. Kinds are small integers defined by the language, with the
exception of token.NIL (0), which marks the end of input:

	l := munch.New(src, lang)
	for {
		t := l.Next()
		if t.Kind == token.NIL {
			break
		}
		fmt.Printf("%s: %s\n", l.Name(t.Kind), l.Bytes(t))
	}

Once NIL has been returned, any further call to Next returns NIL again with
an empty span at the end of the buffer.

The bytes of a token are obtained with Substr or Lexer.Bytes. Both return
a sub-slice of the source buffer: no copy is made, so the source must not be
modified while tokens are in use.

# Maximal munch

At each position, the lexer feeds decoded runes to the automaton, one at a
time, and remembers the last position where the automaton was in an
accepting state. When the automaton reaches a dead state, or at the end of
input, the lexer rewinds to that last accepting position and emits the
corresponding token. Only the last match is remembered.

The lexer also records the automaton states from which no match could be
reached at a given offset, and never walks past those again. Scanning a
whole buffer is therefore linear in its size, including inputs made mostly
of unrecognized runes.

When a state accepts more than one kind, the automaton is expected to
return the one declared first. dfa.Builder takes care of this.

# Input decoding

The source is decoded as UTF-8 by Decode. Malformed sequences do not stop
the lexer: they decode as the Invalid sentinel with a width of one byte,
which is passed to the automaton like any other rune.

# Error handling

Input that the language does not recognize, including malformed UTF-8 that
the language does not accept, is returned as tokens of the language's error
kind. By default, consecutive unrecognized runes are merged into a single
error token that ends where the next valid token begins. The SplitErrors
option produces one error token per rune instead.

The lexer never returns empty tokens, except for NIL, and every call to Next
consumes at least one byte until the end of input is reached. As a result,
the spans of all the tokens returned for a given input are contiguous and
cover the whole input.

# Concurrency

A Lexer must not be used concurrently. Languages are expected to be
immutable and can be shared by any number of lexers.
*/
package munch
