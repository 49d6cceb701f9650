// Package lexer scans c4 source into tokens, interning identifiers into a
// symbol table and string literals into a data arena as it goes (spec
// §4.A).
package lexer

import (
	"github.com/jcorbin/c4go/internal/arena"
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
)

// Lexer holds the source cursor and the two tables it feeds as it scans.
type Lexer struct {
	src []byte
	pos int

	Line int // current 1-based source line
	lp   int // cursor position at the last newline, for trace echo

	syms *symtab.Table
	data *arena.Data

	Tok token.Token
	Sym *symtab.Symbol // set when Tok.Kind is an identifier-classed kind

	// OnLine, if set, is called with each completed source line (without
	// its trailing newline) as the lexer crosses it. This is the hook
	// internal/trace uses to echo source alongside disassembly.
	OnLine func(line int, text []byte)
}

// New returns a Lexer over src, ready to produce its first token via Next.
func New(src []byte, syms *symtab.Table, data *arena.Data) *Lexer {
	return &Lexer{src: src, Line: 1, syms: syms, data: data}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.peek()
	if l.pos < len(l.src) {
		l.pos++
	}
	return c
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// Next scans and installs the next token into l.Tok (and l.Sym, for
// identifier-classed tokens). It never fails: an unrecognized byte simply
// becomes its own Kind, per spec §4.A.
func (l *Lexer) Next() {
	for {
		c := l.peek()
		if c == 0 {
			l.Tok = token.Token{Kind: 0}
			return
		}
		l.advance()

		switch {
		case c == '\n':
			l.emitLine()
			continue
		case c == '#':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
			continue
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			continue
		case isAlpha(c):
			l.lexIdent(c)
			return
		case isDigit(c):
			l.lexNumber(c)
			return
		case c == '/':
			if l.peek() == '/' {
				for l.peek() != 0 && l.peek() != '\n' {
					l.advance()
				}
				continue
			}
			l.Tok = token.Token{Kind: token.Div}
			return
		case c == '"' || c == '\'':
			l.lexLiteral(c)
			return
		case c == '=':
			if l.peek() == '=' {
				l.advance()
				l.Tok = token.Token{Kind: token.Eq}
			} else {
				l.Tok = token.Token{Kind: token.Assign}
			}
			return
		case c == '+':
			if l.peek() == '+' {
				l.advance()
				l.Tok = token.Token{Kind: token.Inc}
			} else {
				l.Tok = token.Token{Kind: token.Add}
			}
			return
		case c == '-':
			if l.peek() == '-' {
				l.advance()
				l.Tok = token.Token{Kind: token.Dec}
			} else {
				l.Tok = token.Token{Kind: token.Sub}
			}
			return
		case c == '!':
			if l.peek() == '=' {
				l.advance()
				l.Tok = token.Token{Kind: token.Ne}
			} else {
				l.Tok = token.Token{Kind: token.Kind(c)}
			}
			return
		case c == '<':
			switch l.peek() {
			case '=':
				l.advance()
				l.Tok = token.Token{Kind: token.Le}
			case '<':
				l.advance()
				l.Tok = token.Token{Kind: token.Shl}
			default:
				l.Tok = token.Token{Kind: token.Lt}
			}
			return
		case c == '>':
			switch l.peek() {
			case '=':
				l.advance()
				l.Tok = token.Token{Kind: token.Ge}
			case '>':
				l.advance()
				l.Tok = token.Token{Kind: token.Shr}
			default:
				l.Tok = token.Token{Kind: token.Gt}
			}
			return
		case c == '|':
			if l.peek() == '|' {
				l.advance()
				l.Tok = token.Token{Kind: token.Lor}
			} else {
				l.Tok = token.Token{Kind: token.Or}
			}
			return
		case c == '&':
			if l.peek() == '&' {
				l.advance()
				l.Tok = token.Token{Kind: token.Lan}
			} else {
				l.Tok = token.Token{Kind: token.And}
			}
			return
		case c == '^':
			l.Tok = token.Token{Kind: token.Xor}
			return
		case c == '%':
			l.Tok = token.Token{Kind: token.Mod}
			return
		case c == '*':
			l.Tok = token.Token{Kind: token.Mul}
			return
		case c == '[':
			l.Tok = token.Token{Kind: token.Brak}
			return
		case c == '?':
			l.Tok = token.Token{Kind: token.Cond}
			return
		default:
			// ~ ; { } ( ) ] , : and anything else unrecognized pass
			// through as their own byte value.
			l.Tok = token.Token{Kind: token.Kind(c)}
			return
		}
	}
}

func (l *Lexer) lexIdent(first byte) {
	start := l.pos - 1
	for isAlnum(l.peek()) {
		l.advance()
	}
	name := l.src[start:l.pos]
	sym := l.syms.Intern(name)
	l.Sym = sym
	l.Tok = token.Token{Kind: sym.Kind}
}

func (l *Lexer) lexNumber(first byte) {
	ival := int32(first - '0')
	if ival == 0 && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for {
			c := l.peek()
			var v int32
			switch {
			case c >= '0' && c <= '9':
				v = int32(c - '0')
			case c >= 'A' && c <= 'F':
				v = int32(c) - 'A' + 10
			case c >= 'a' && c <= 'f':
				v = int32(c) - 'a' + 10
			default:
				l.Tok = token.Token{Kind: token.Num, IVal: ival}
				return
			}
			ival = ival*16 + v
			l.advance()
		}
	}
	for isDigit(l.peek()) {
		ival = ival*10 + int32(l.advance()-'0')
	}
	l.Tok = token.Token{Kind: token.Num, IVal: ival}
}

// lexLiteral implements both string and character literals: they share
// the same byte-collection loop (spec §4.A), differing only in whether
// the collected bytes are written into the data segment.
func (l *Lexer) lexLiteral(quote byte) {
	start := l.data.Head()
	var ival int32
	for l.peek() != 0 && l.peek() != quote {
		c := l.advance()
		ival = int32(c)
		if c == '\\' {
			c2 := l.advance()
			ival = int32(c2)
			if c2 == 'n' {
				ival = '\n'
			}
		}
		if quote == '"' {
			l.data.AppendByte(byte(ival))
		}
	}
	if l.peek() == quote {
		l.advance()
	}
	if quote == '"' {
		l.data.AlignTo4()
		l.Tok = token.Token{Kind: token.Kind('"'), IVal: start}
	} else {
		l.Tok = token.Token{Kind: token.Num, IVal: ival}
	}
}

// LineText returns the raw text of the source line the cursor is
// currently inside, without its trailing newline -- used to enrich
// compiler diagnostics with the offending line (SPEC_FULL.md §3.1).
func (l *Lexer) LineText() []byte {
	end := l.pos
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	return l.src[l.lp:end]
}

func (l *Lexer) emitLine() {
	if l.OnLine != nil {
		l.OnLine(l.Line, l.src[l.lp:l.pos-1])
	}
	l.Line++
	l.lp = l.pos
}
