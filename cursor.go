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

// cursor holds the read position in the source buffer along with a one rune
// look-ahead: r and w are the rune at off and its width.
//
// Invariants: off+w <= len(src), w == 0 iff off == len(src).
type cursor struct {
	src []byte
	off int
	r   rune
	w   int
}

func (c *cursor) init(src []byte) {
	c.src = src
	c.seek(0)
}

// advance consumes the current rune. It is a no-op at EOF.
func (c *cursor) advance() {
	if c.w == 0 {
		return
	}
	c.off += c.w
	c.r, c.w = Decode(c.src, c.off)
}

// seek moves the cursor to offset off, which must be a previously visited
// rune boundary.
func (c *cursor) seek(off int) {
	c.off = off
	c.r, c.w = Decode(c.src, off)
}

func (c *cursor) eof() bool {
	return c.w == 0
}
