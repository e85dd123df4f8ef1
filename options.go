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
	"log/slog"
	"maps"

	"github.com/db47h/munch/token"
)

type options struct {
	log         *slog.Logger
	keywords    map[token.Kind]map[string]token.Kind
	splitErrors bool
}

// An Option is a configuration option for a new Lexer.
type Option func(*options)

// Logger sets a logger used to trace emitted tokens and unrecognized input at
// debug level. By default, lexers do not log.
func Logger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Keywords registers a keyword table for tokens of kind k: whenever the lexer
// matches a token of kind k whose text is a key in words, the token is
// returned with the corresponding kind instead.
//
// The words map is copied.
func Keywords(k token.Kind, words map[string]token.Kind) Option {
	words = maps.Clone(words)
	return func(o *options) {
		if o.keywords == nil {
			o.keywords = make(map[token.Kind]map[string]token.Kind)
		}
		o.keywords[k] = words
	}
}

// SplitErrors makes the lexer emit one error token per unrecognized rune (or
// malformed byte) instead of one token per run of unrecognized input.
func SplitErrors() Option {
	return func(o *options) {
		o.splitErrors = true
	}
}
