// Package compiler implements c4's single-pass recursive-descent compiler:
// lexer tokens go in, a code+data image comes out, with no intermediate
// AST (spec §4.B-§4.E). Declarations, statements and expressions each get
// their own file, all hanging off the same Compiler so they can share the
// lexer, symbol table and the two output arenas.
package compiler

import (
	"github.com/jcorbin/c4go/internal/arena"
	"github.com/jcorbin/c4go/internal/image"
	"github.com/jcorbin/c4go/internal/lexer"
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
	"github.com/jcorbin/c4go/internal/vm"
)

// Compiler holds the shared state expr, stmt and decl thread through a
// single compilation: the lexer (and its current token), the symbol
// table, and the code/data arenas being written into.
type Compiler struct {
	lex  *lexer.Lexer
	syms *symtab.Table
	code *arena.Code
	data *arena.Data

	ty  Type  // type of the expression just compiled
	loc int32 // current function's parameter count + 1, for LEA operand math

	dumpFn   func(line int, text []byte, words []int32, startAddr int32, syms *symtab.Table, data []byte)
	dumpedTo int32
}

// Option configures a Compiler at construction.
type Option interface{ apply(c *Compiler) }

type optionFunc func(c *Compiler)

func (f optionFunc) apply(c *Compiler) { f(c) }

// WithSourceTrace installs a hook fired once per source line, the way the
// original's dump_source does: with the line's own text and the slice of
// code words compiled from it since the previous line (spec §4.H). The
// words are passed as they stand when the lexer crosses the newline: an
// if, while or ?: patches its branch holes only after parsing what follows
// the branch, so a forward branch whose target lies on a later line still
// shows its unpatched operand (0) here.
//
// The hook also receives the symbol table and data arena as they stand at
// that point in compilation, live -- the only way a caller can get at them
// during compilation, since Compile only returns the finished image. This
// is what lets internal/trace.Disassembler resolve LGB operands to global
// names or string literals instead of printing a bare data offset.
func WithSourceTrace(fn func(line int, text []byte, words []int32, startAddr int32, syms *symtab.Table, data []byte)) Option {
	return optionFunc(func(c *Compiler) { c.dumpFn = fn })
}

// Compile lexes and compiles src in one pass, returning the resulting
// image (code, data, and main's entry offset).
func Compile(src []byte, opts ...Option) (*image.Image, error) {
	c := &Compiler{
		syms: symtab.New(),
		code: arena.NewCode(),
		data: arena.NewData(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
	c.lex = lexer.New(src, c.syms, c.data)
	if c.dumpFn != nil {
		c.lex.OnLine = c.onLineDump
	}

	c.next()
	for c.tok() != 0 {
		if err := c.decl(); err != nil {
			return nil, err
		}
	}

	main := c.syms.FindMain()
	if main == nil || main.Class != token.Fun {
		return nil, c.errorf("main() not defined")
	}

	return &image.Image{
		MainOffset: main.Val,
		Code:       c.code.Words,
		Data:       c.data.Bytes,
	}, nil
}

func (c *Compiler) onLineDump(line int, text []byte) {
	start := c.dumpedTo
	here := c.code.Here()
	c.dumpedTo = here
	c.dumpFn(line, text, c.code.Words[start:here], start, c.syms, c.data.Bytes)
}

func (c *Compiler) tok() token.Kind { return c.lex.Tok.Kind }
func (c *Compiler) ival() int32     { return c.lex.Tok.IVal }
func (c *Compiler) sym() *symtab.Symbol {
	return c.lex.Sym
}

func (c *Compiler) next() { c.lex.Next() }

func (c *Compiler) emit(word int32) int32 { return c.code.Emit(word) }

// emitOp emits an operand-less opcode word.
func (c *Compiler) emitOp(op vm.Op) int32 { return c.emit(int32(op)) }

// emitOpImm emits an opcode word followed immediately by its operand.
func (c *Compiler) emitOpImm(op vm.Op, operand int32) int32 {
	addr := c.emit(int32(op))
	c.emit(operand)
	return addr
}
