package munch_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/munch"
	"github.com/db47h/munch/basic"
	"github.com/db47h/munch/token"
)

// Token kinds of alnum.
const (
	tokError token.Kind = iota + 1
	tokIdent
	tokNumber
	tokBad
)

var alnumNames = token.MustNames("Error", "Ident", "Number", "Bad")

// alnum is a hand written language with identifiers (letters+) and numbers
// (digits+). If bad is true, it also accepts malformed input as tokBad.
type alnum struct {
	bad bool
}

func (alnum) Start() munch.State { return 0 }

func (a alnum) Step(s munch.State, r rune) munch.State {
	switch {
	case unicode.IsLetter(r) && (s == 0 || s == 1):
		return 1
	case r >= '0' && r <= '9' && (s == 0 || s == 2):
		return 2
	case r == munch.Invalid && s == 0 && a.bad:
		return 3
	}
	return munch.Dead
}

func (alnum) Accept(s munch.State) token.Kind {
	switch s {
	case 1:
		return tokIdent
	case 2:
		return tokNumber
	case 3:
		return tokBad
	}
	return token.NIL
}

func (alnum) Names() token.Names    { return alnumNames }
func (alnum) ErrorKind() token.Kind { return tokError }

func TestLexer_Next(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []munch.Option
		lang munch.Language
		want []token.Token
	}{
		{"ab12", "ab12", nil, alnum{}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 2}, {Kind: tokNumber, First: 2, Last: 4}, {Kind: token.NIL, First: 4, Last: 4},
		}},
		{"empty", "", nil, alnum{}, []token.Token{
			{Kind: token.NIL, First: 0, Last: 0},
		}},
		{"unicode", "déjà42", nil, alnum{}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 6}, {Kind: tokNumber, First: 6, Last: 8}, {Kind: token.NIL, First: 8, Last: 8},
		}},
		{"malformed", "ab\xe2\x82cd", nil, alnum{}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 2}, {Kind: tokError, First: 2, Last: 4}, {Kind: tokIdent, First: 4, Last: 6}, {Kind: token.NIL, First: 6, Last: 6},
		}},
		{"malformed_split", "ab\xe2\x82cd", []munch.Option{munch.SplitErrors()}, alnum{}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 2}, {Kind: tokError, First: 2, Last: 3}, {Kind: tokError, First: 3, Last: 4}, {Kind: tokIdent, First: 4, Last: 6}, {Kind: token.NIL, First: 6, Last: 6},
		}},
		{"malformed_accepted", "a\xffb", nil, alnum{bad: true}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 1}, {Kind: tokBad, First: 1, Last: 2}, {Kind: tokIdent, First: 2, Last: 3}, {Kind: token.NIL, First: 3, Last: 3},
		}},
		{"unrecognized_run", "a -+ 1", nil, alnum{}, []token.Token{
			{Kind: tokIdent, First: 0, Last: 1}, {Kind: tokError, First: 1, Last: 5}, {Kind: tokNumber, First: 5, Last: 6}, {Kind: token.NIL, First: 6, Last: 6},
		}},
		{"unrecognized_tail", "1$$", nil, alnum{}, []token.Token{
			{Kind: tokNumber, First: 0, Last: 1}, {Kind: tokError, First: 1, Last: 3}, {Kind: token.NIL, First: 3, Last: 3},
		}},
		{"unrecognized_split", "1$€", []munch.Option{munch.SplitErrors()}, alnum{}, []token.Token{
			{Kind: tokNumber, First: 0, Last: 1}, {Kind: tokError, First: 1, Last: 2}, {Kind: tokError, First: 2, Last: 5}, {Kind: token.NIL, First: 5, Last: 5},
		}},
		{"longest_match", "a==b", nil, basic.Language(), []token.Token{
			{Kind: basic.Ident, First: 0, Last: 1}, {Kind: basic.Eq, First: 1, Last: 3}, {Kind: basic.Ident, First: 3, Last: 4}, {Kind: token.NIL, First: 4, Last: 4},
		}},
		{"backtrack_fraction", "1.x", nil, basic.Language(), []token.Token{
			{Kind: basic.Number, First: 0, Last: 1}, {Kind: basic.Dot, First: 1, Last: 2}, {Kind: basic.Ident, First: 2, Last: 3}, {Kind: token.NIL, First: 3, Last: 3},
		}},
		{"backtrack_hex", "0xg", nil, basic.Language(), []token.Token{
			{Kind: basic.Number, First: 0, Last: 1}, {Kind: basic.Ident, First: 1, Last: 3}, {Kind: token.NIL, First: 3, Last: 3},
		}},
		{"fraction", "3.14.", nil, basic.Language(), []token.Token{
			{Kind: basic.Number, First: 0, Last: 4}, {Kind: basic.Dot, First: 4, Last: 5}, {Kind: token.NIL, First: 5, Last: 5},
		}},
		{"unterminated_string", `"ab`, nil, basic.Language(), []token.Token{
			{Kind: basic.Error, First: 0, Last: 1}, {Kind: basic.Ident, First: 1, Last: 3}, {Kind: token.NIL, First: 3, Last: 3},
		}},
		{"keywords", "if x", []munch.Option{munch.Keywords(basic.Ident, basic.Keywords)}, basic.Language(), []token.Token{
			{Kind: basic.If, First: 0, Last: 2}, {Kind: basic.Space, First: 2, Last: 3}, {Kind: basic.Ident, First: 3, Last: 4}, {Kind: token.NIL, First: 4, Last: 4},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := munch.New([]byte(tt.in), tt.lang, tt.opts...)
			got := l.Tokens()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_NILIdempotent(t *testing.T) {
	src := []byte("ab 12")
	l := munch.New(src, alnum{})
	assert.False(t, l.Done())
	for i := 0; i <= len(src)+1; i++ {
		if l.Next().IsNIL() {
			break
		}
	}
	require.True(t, l.Done())
	for i := 0; i < 3; i++ {
		tok := l.Next()
		assert.Equal(t, token.Token{Kind: token.NIL, First: len(src), Last: len(src)}, tok)
		assert.Equal(t, len(src), l.Offset())
		r, w := l.Current()
		assert.Equal(t, munch.EOF, r)
		assert.Equal(t, 0, w)
	}
}

func TestLexer_Accessors(t *testing.T) {
	src := []byte("déjà vu")
	l := basic.New(src)
	assert.Equal(t, src, l.Source())
	assert.Equal(t, 0, l.Offset())
	r, w := l.Current()
	assert.Equal(t, 'd', r)
	assert.Equal(t, 1, w)

	tok := l.Next()
	assert.Equal(t, "déjà", string(l.Bytes(tok)))
	assert.Equal(t, "Ident", l.Name(tok.Kind))
	assert.Equal(t, 6, l.Offset())
	r, _ = l.Current()
	assert.Equal(t, ' ', r)

	assert.Panics(t, func() { l.Name(1000) })
}

func TestLexer_Reset(t *testing.T) {
	l := munch.New([]byte("abc"), alnum{})
	for range l.All() {
	}
	require.True(t, l.Done())

	l.Reset([]byte("42"))
	assert.False(t, l.Done())
	assert.Equal(t, []token.Token{{Kind: tokNumber, First: 0, Last: 2}, {Kind: token.NIL, First: 2, Last: 2}}, l.Tokens())

	// failures recorded on the previous buffer must not leak into the next
	l = basic.New([]byte(`"ab`))
	assert.Equal(t, []token.Token{{Kind: basic.Error, First: 0, Last: 1}, {Kind: basic.Ident, First: 1, Last: 3}, {Kind: token.NIL, First: 3, Last: 3}}, l.Tokens())
	l.Reset([]byte(`"ab"`))
	assert.Equal(t, []token.Token{{Kind: basic.String, First: 0, Last: 4}, {Kind: token.NIL, First: 4, Last: 4}}, l.Tokens())
}

func TestLexer_All(t *testing.T) {
	l := munch.New([]byte("a1b2"), alnum{})
	var kinds []token.Kind
	for tok := range l.All() {
		kinds = append(kinds, tok.Kind)
		if len(kinds) == 2 {
			break
		}
	}
	assert.Equal(t, []token.Kind{tokIdent, tokNumber}, kinds)
	// iteration resumes where it stopped
	assert.Equal(t, token.Token{Kind: tokIdent, First: 2, Last: 3}, l.Next())
}

func TestLexer_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := munch.New([]byte("ab$"), alnum{}, munch.Logger(log))
	l.Tokens()

	out := buf.String()
	assert.Contains(t, out, `msg="munch: token" kind=Ident first=0 last=2`)
	assert.Contains(t, out, `msg="munch: unrecognized input" first=2 last=3`)
	assert.Contains(t, out, `msg="munch: token" kind=Error first=2 last=3`)
}

type badErrorKind struct{ alnum }

func (badErrorKind) ErrorKind() token.Kind { return token.NIL }

func TestNew_Panics(t *testing.T) {
	assert.Panics(t, func() { munch.New(nil, badErrorKind{}) })
	assert.Panics(t, func() {
		munch.New(nil, alnum{}, munch.Keywords(42, nil))
	})
	assert.Panics(t, func() {
		munch.New(nil, alnum{}, munch.Keywords(tokIdent, map[string]token.Kind{"x": 42}))
	})
	assert.NotPanics(t, func() {
		munch.New(nil, alnum{}, munch.Keywords(tokIdent, map[string]token.Kind{"x": tokNumber}))
	})
}

func TestSubstr(t *testing.T) {
	src := []byte("hello world")
	s := munch.Substr(src, 6, 11)
	assert.Equal(t, "world", string(s))
	assert.Equal(t, 5, cap(s))
	// zero-copy
	assert.Same(t, &src[6], &s[0])

	s = munch.Substr(src, 5, 5)
	assert.Empty(t, s)

	// appending must not overwrite the source
	hello := munch.Substr(src, 0, 5)
	_ = append(hello, '!')
	assert.Equal(t, "hello world", string(src))

	assert.Panics(t, func() { munch.Substr(src, 3, 2) })
	assert.Panics(t, func() { munch.Substr(src, -1, 2) })
	assert.Panics(t, func() { munch.Substr(src[:5], 0, 6) })
}

// TestLexer_Properties checks termination, span validity, coverage and
// idempotent termination over random inputs.
func TestLexer_Properties(t *testing.T) {
	alphabet := []byte("ab01 \t\n\"\\/.=+-!<>&|(){}xX\xe2\x82\xac\xff\xc3")
	rng := rand.New(rand.NewPCG(1, 2))
	langs := []struct {
		name string
		new  func(src []byte) *munch.Lexer
	}{
		{"alnum", func(src []byte) *munch.Lexer { return munch.New(src, alnum{}) }},
		{"alnum_split", func(src []byte) *munch.Lexer { return munch.New(src, alnum{}, munch.SplitErrors()) }},
		{"basic", func(src []byte) *munch.Lexer { return basic.New(src) }},
	}
	for _, lang := range langs {
		t.Run(lang.name, func(t *testing.T) {
			for n := 0; n < 500; n++ {
				src := make([]byte, rng.IntN(64))
				for i := range src {
					src[i] = alphabet[rng.IntN(len(alphabet))]
				}
				checkProperties(t, lang.new(src), src)
				if t.Failed() {
					t.Logf("input: %q", src)
					return
				}
			}
		})
	}
}

func checkProperties(t *testing.T, l *munch.Lexer, src []byte) {
	t.Helper()
	var (
		prev  = 0
		calls = 0
		buf   []byte
	)
	for {
		calls++
		if calls > len(src)+1 {
			t.Fatalf("no NIL token after %d calls", calls-1)
		}
		tok := l.Next()
		require.True(t, 0 <= tok.First && tok.First <= tok.Last && tok.Last <= len(src), "invalid span %v", tok)
		require.Equal(t, prev, tok.First, "gap or overlap at %v", tok)
		buf = append(buf, l.Bytes(tok)...)
		if tok.IsNIL() {
			require.Equal(t, len(src), tok.First)
			require.Equal(t, len(src), tok.Last)
			break
		}
		require.Greater(t, tok.Last, tok.First, "empty token %v", tok)
		require.Equal(t, tok.Last, l.Offset())
		prev = tok.Last
	}
	require.Equal(t, string(src), string(buf))
	require.Equal(t, token.Token{Kind: token.NIL, First: len(src), Last: len(src)}, l.Next())
}

// stepCounter counts the transitions taken by the wrapped language.
type stepCounter struct {
	munch.Language
	steps *int
}

func (c stepCounter) Step(s munch.State, r rune) munch.State {
	*c.steps++
	return c.Language.Step(s, r)
}

// TestLexer_LinearErrorRuns scans inputs where every restart of the automaton
// inside an error run would read up to the end of the input. The number of
// transitions must stay proportional to the input size.
func TestLexer_LinearErrorRuns(t *testing.T) {
	tests := []struct {
		name  string
		split bool
	}{
		{"coalesced", false},
		{"split", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{1000, 2000, 8000} {
				src := bytes.Repeat([]byte(`"\`), n/2)
				steps := 0
				var opts []munch.Option
				if tt.split {
					opts = append(opts, munch.SplitErrors())
				}
				l := munch.New(src, stepCounter{basic.Language(), &steps}, opts...)
				toks := l.Tokens()
				if tt.split {
					require.Len(t, toks, n+1)
					assert.Equal(t, token.Token{Kind: basic.Error, First: n - 1, Last: n}, toks[n-1])
				} else {
					require.Len(t, toks, 2)
					assert.Equal(t, token.Token{Kind: basic.Error, First: 0, Last: n}, toks[0])
				}
				assert.LessOrEqual(t, steps, 4*n, "n=%d", n)
			}
		})
	}
}

func Example() {
	src := []byte(`if x1 >= 0x2a { return "ok" } // done`)
	l := basic.New(src)
	for {
		t := l.Next()
		fmt.Printf("%s %q\n", l.Name(t.Kind), l.Bytes(t))
		if t.Kind == token.NIL {
			break
		}
	}
	// Output:
	// If "if"
	// Space " "
	// Ident "x1"
	// Space " "
	// GreaterEq ">="
	// Space " "
	// Number "0x2a"
	// Space " "
	// LeftBrace "{"
	// Space " "
	// Return "return"
	// Space " "
	// String "\"ok\""
	// Space " "
	// RightBrace "}"
	// Space " "
	// Comment "// done"
	// NIL ""
}

func BenchmarkLexer(b *testing.B) {
	var src []byte
	for len(src) < 1<<20 {
		src = append(src, "func f(x, y) { var z = x + 0x2a; if z >= 3.14 { return \"big\" } } // comment\n"...)
	}
	l := basic.New(src)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reset(src)
		for !l.Next().IsNIL() {
		}
	}
}
