package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/c4go/internal/arena"
	"github.com/jcorbin/c4go/internal/lexer"
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
)

func newLexer(src string) *lexer.Lexer {
	return lexer.New([]byte(src), symtab.New(), arena.NewData())
}

func TestHexLiteral(t *testing.T) {
	l := newLexer("0xDeadBeef")
	l.Next()
	require.Equal(t, token.Num, l.Tok.Kind)
	assert.Equal(t, uint32(3735928559), uint32(l.Tok.IVal))
}

func TestDecimalLiteral(t *testing.T) {
	l := newLexer("1234")
	l.Next()
	assert.Equal(t, token.Num, l.Tok.Kind)
	assert.Equal(t, int32(1234), l.Tok.IVal)
}

func TestStringLiteralNewlineEscape(t *testing.T) {
	data := arena.NewData()
	l := lexer.New([]byte(`"hi\n"`), symtab.New(), data)
	l.Next()
	require.Equal(t, token.Kind('"'), l.Tok.Kind)
	assert.Equal(t, int32(0), l.Tok.IVal)
	assert.Equal(t, []byte("hi\n\x00"), data.Bytes)
}

func TestAmbiguousOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"=": token.Assign, "==": token.Eq,
		"+": token.Add, "++": token.Inc,
		"-": token.Sub, "--": token.Dec,
		"<": token.Lt, "<=": token.Le, "<<": token.Shl,
		">": token.Gt, ">=": token.Ge, ">>": token.Shr,
		"|": token.Or, "||": token.Lor,
		"&": token.And, "&&": token.Lan,
		"/": token.Div,
	}
	for src, want := range cases {
		l := newLexer(src)
		l.Next()
		assert.Equal(t, want, l.Tok.Kind, "source %q", src)
	}
}

func TestLoneBangIsItsOwnByteKind(t *testing.T) {
	l := newLexer("!")
	l.Next()
	assert.Equal(t, token.Kind('!'), l.Tok.Kind)
}

func TestCommentsAndPreprocessorLinesSkipped(t *testing.T) {
	l := newLexer("// comment\n#define X 1\n42")
	l.Next()
	assert.Equal(t, token.Num, l.Tok.Kind)
	assert.Equal(t, int32(42), l.Tok.IVal)
}

func TestIdentifierInternsIntoSymbolTable(t *testing.T) {
	syms := symtab.New()
	l := lexer.New([]byte("foo foo"), syms, arena.NewData())
	l.Next()
	first := l.Sym
	l.Next()
	assert.Same(t, first, l.Sym)
}

func TestOnLineFiresPerCompletedLine(t *testing.T) {
	var lines []string
	l := newLexer("int x;\nint y;\n")
	l.OnLine = func(_ int, text []byte) { lines = append(lines, string(text)) }
	for {
		l.Next()
		if l.Tok.Kind == 0 {
			break
		}
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "int x;", lines[0])
	assert.Equal(t, "int y;", lines[1])
}
