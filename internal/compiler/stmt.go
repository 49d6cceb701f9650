package compiler

import (
	"github.com/jcorbin/c4go/internal/token"
	"github.com/jcorbin/c4go/internal/vm"
)

// stmt compiles one statement (spec §4.D): if/else, while, return, a
// brace-delimited block, an empty ';', or an expression statement. Every
// branch here patches its own hole(s) before returning; the source-trace
// hook for a line can fire before that, since parsing a body reads the
// token after it (crossing the newline) first.
func (c *Compiler) stmt() error {
	switch c.tok() {
	case token.If:
		return c.stmtIf()
	case token.While:
		return c.stmtWhile()
	case token.Return:
		return c.stmtReturn()
	case token.Kind('{'):
		c.next()
		for c.tok() != token.Kind('}') {
			if err := c.stmt(); err != nil {
				return err
			}
		}
		c.next()
		return nil
	case token.Kind(';'):
		c.next()
		return nil
	default:
		if err := c.expr(token.Assign); err != nil {
			return err
		}
		if c.tok() != token.Kind(';') {
			return c.errorf("semicolon expected")
		}
		c.next()
		return nil
	}
}

func (c *Compiler) stmtIf() error {
	c.next()
	if c.tok() != token.Kind('(') {
		return c.errorf("open paren expected")
	}
	c.next()
	if err := c.expr(token.Assign); err != nil {
		return err
	}
	if c.tok() != token.Kind(')') {
		return c.errorf("close paren expected")
	}
	c.next()

	bz := c.emitOpImm(vm.BZ, 0)
	if err := c.stmt(); err != nil {
		return err
	}

	if c.tok() == token.Else {
		c.next()
		jmp := c.emitOpImm(vm.JMP, 0)
		c.code.Patch(bz + 1)
		if err := c.stmt(); err != nil {
			return err
		}
		c.code.Patch(jmp + 1)
		return nil
	}

	c.code.Patch(bz + 1)
	return nil
}

// stmtWhile compiles "while (cond) body". top is recorded before cond is
// compiled, since the condition itself is re-evaluated on every
// iteration and must be the jump target, not just the body.
func (c *Compiler) stmtWhile() error {
	c.next()
	if c.tok() != token.Kind('(') {
		return c.errorf("open paren expected")
	}
	c.next()

	top := c.code.Here()
	if err := c.expr(token.Assign); err != nil {
		return err
	}
	if c.tok() != token.Kind(')') {
		return c.errorf("close paren expected")
	}
	c.next()

	bz := c.emitOpImm(vm.BZ, 0)
	if err := c.stmt(); err != nil {
		return err
	}
	jmp := c.emitOpImm(vm.JMP, 0)
	c.code.PatchTo(jmp+1, top)
	c.code.Patch(bz + 1)
	return nil
}

func (c *Compiler) stmtReturn() error {
	c.next()
	if c.tok() != token.Kind(';') {
		if err := c.expr(token.Assign); err != nil {
			return err
		}
	}
	c.emitOp(vm.LEV)
	if c.tok() != token.Kind(';') {
		return c.errorf("semicolon expected")
	}
	c.next()
	return nil
}
