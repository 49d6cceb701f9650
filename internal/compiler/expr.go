package compiler

import (
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
	"github.com/jcorbin/c4go/internal/vm"
)

// expr compiles one expression at precedence level lev: it compiles a
// leading term, then keeps absorbing binary/postfix operators whose Kind
// is >= lev, recursing at the operator's own right-binding level (spec
// §4.C). token.Kind's operator constants are ordered by precedence for
// exactly this reason: the comparison against lev IS the precedence
// climb.
func (c *Compiler) expr(lev token.Kind) error {
	if err := c.exprLeading(); err != nil {
		return err
	}
	for c.tok() >= lev {
		if err := c.exprInfix(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) exprLeading() error {
	switch tk := c.tok(); {
	case tk == 0:
		return c.errorf("unexpected eof in expression")

	case tk == token.Num:
		c.emitOpImm(vm.IMM, c.ival())
		c.next()
		c.ty = INT

	case tk == token.Kind('"'):
		c.emitOpImm(vm.LGB, c.ival())
		c.next()
		for c.tok() == token.Kind('"') {
			c.next()
		}
		c.ty = PTR

	case tk == token.Id:
		return c.exprIdent()

	case tk == token.Kind('('):
		return c.exprParen()

	case tk == token.Mul:
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		if c.ty <= INT {
			return c.errorf("bad dereference")
		}
		c.ty -= PTR
		c.emitDeref()

	case tk == token.And:
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		if op := vm.Op(c.code.Last()); op != vm.LC && op != vm.LI {
			return c.errorf("bad address-of")
		}
		c.code.Rewind()
		c.ty += PTR

	case tk == token.Kind('!'):
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		c.emitOp(vm.PSH)
		c.emitOpImm(vm.IMM, 0)
		c.emitOp(vm.EQ)
		c.ty = INT

	case tk == token.Kind('~'):
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		c.emitOp(vm.PSH)
		c.emitOpImm(vm.IMM, -1)
		c.emitOp(vm.XOR)
		c.ty = INT

	case tk == token.Add:
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		c.ty = INT

	case tk == token.Sub:
		c.next()
		if c.tok() == token.Num {
			c.emitOpImm(vm.IMM, -c.ival())
			c.next()
		} else {
			c.emitOpImm(vm.IMM, -1)
			c.emitOp(vm.PSH)
			if err := c.expr(token.Inc); err != nil {
				return err
			}
			c.emitOp(vm.MUL)
		}
		c.ty = INT

	case tk == token.Inc || tk == token.Dec:
		op := tk
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		if err := c.turnLoadIntoLoadAndPush(); err != nil {
			return err
		}
		c.emitOp(vm.PSH)
		c.emitOpImm(vm.IMM, c.scale())
		if op == token.Inc {
			c.emitOp(vm.ADD)
		} else {
			c.emitOp(vm.SUB)
		}
		c.emitStore()

	default:
		return c.errorf("bad expression %s", tk)
	}
	return nil
}

func (c *Compiler) exprIdent() error {
	d := c.sym()
	c.next()

	if c.tok() == token.Kind('(') {
		return c.exprCall(d)
	}

	if d.Class == token.Num {
		c.emitOpImm(vm.IMM, d.Val)
		c.ty = INT
		return nil
	}

	switch d.Class {
	case token.Loc:
		c.emitOpImm(vm.LEA, c.loc-d.Val)
	case token.Glo:
		c.emitOpImm(vm.LGB, d.Val)
	default:
		return c.errorf("undefined variable")
	}
	c.ty = Type(d.Type)
	c.emitDeref()
	return nil
}

func (c *Compiler) exprCall(d *symtab.Symbol) error {
	c.next() // (
	argc := int32(0)
	for c.tok() != 0 && c.tok() != token.Kind(')') {
		if err := c.expr(token.Assign); err != nil {
			return err
		}
		c.emitOp(vm.PSH)
		argc++
		if c.tok() == token.Kind(',') {
			c.next()
		}
	}
	c.next() // )

	switch d.Class {
	case token.Sys:
		c.emitOp(vm.SyscallOp(d.Val))
	case token.Fun:
		c.emitOpImm(vm.JSR, d.Val)
	default:
		return c.errorf("bad function call")
	}
	if argc != 0 {
		c.emitOpImm(vm.ADJ, argc)
	}
	c.ty = Type(d.Type)
	return nil
}

func (c *Compiler) exprParen() error {
	c.next() // (
	if c.tok() == token.Int || c.tok() == token.Char {
		t := INT
		if c.tok() == token.Char {
			t = CHAR
		}
		c.next()
		for c.tok() == token.Mul {
			c.next()
			t += PTR
		}
		if c.tok() != token.Kind(')') {
			return c.errorf("bad cast")
		}
		c.next()
		if err := c.expr(token.Inc); err != nil {
			return err
		}
		c.ty = t
		return nil
	}
	if err := c.expr(token.Assign); err != nil {
		return err
	}
	if c.tok() != token.Kind(')') {
		return c.errorf("close paren expected")
	}
	c.next()
	return nil
}

// exprInfix compiles one binary or postfix operator at the current token,
// assuming the caller already confirmed it's >= the active precedence
// level.
func (c *Compiler) exprInfix() error {
	t := c.ty
	switch tk := c.tok(); tk {
	case token.Assign:
		c.next()
		if op := vm.Op(c.code.Last()); op != vm.LC && op != vm.LI {
			return c.errorf("bad lvalue in assignment")
		}
		c.code.RewriteLast(int32(vm.PSH))
		if err := c.expr(token.Assign); err != nil {
			return err
		}
		c.ty = t
		c.emitStore()

	case token.Cond:
		c.next()
		bz := c.emitOpImm(vm.BZ, 0)
		if err := c.expr(token.Assign); err != nil {
			return err
		}
		if c.tok() != token.Kind(':') {
			return c.errorf("conditional missing colon")
		}
		c.next()
		jmp := c.emitOpImm(vm.JMP, 0)
		c.code.Patch(bz + 1)
		if err := c.expr(token.Cond); err != nil {
			return err
		}
		c.code.Patch(jmp + 1)

	case token.Lor:
		c.next()
		bnz := c.emitOpImm(vm.BNZ, 0)
		if err := c.expr(token.Lan); err != nil {
			return err
		}
		c.code.Patch(bnz + 1)
		c.ty = INT

	case token.Lan:
		c.next()
		bz := c.emitOpImm(vm.BZ, 0)
		if err := c.expr(token.Or); err != nil {
			return err
		}
		c.code.Patch(bz + 1)
		c.ty = INT

	case token.Or, token.Xor, token.And, token.Eq, token.Ne,
		token.Lt, token.Gt, token.Le, token.Ge, token.Shl, token.Shr,
		token.Mul, token.Div, token.Mod:
		return c.exprArith(tk)

	case token.Add, token.Sub:
		c.next()
		c.emitOp(vm.PSH)
		if err := c.expr(token.Mul); err != nil {
			return err
		}
		c.ty = t
		if c.ty > PTR {
			c.emitOp(vm.PSH)
			c.emitOpImm(vm.IMM, wordSize)
			c.emitOp(vm.MUL)
		}
		if tk == token.Add {
			c.emitOp(vm.ADD)
		} else {
			c.emitOp(vm.SUB)
		}

	case token.Inc, token.Dec:
		if err := c.turnLoadIntoLoadAndPush(); err != nil {
			return err
		}
		scale := c.scale()
		c.emitOp(vm.PSH)
		c.emitOpImm(vm.IMM, scale)
		if tk == token.Inc {
			c.emitOp(vm.ADD)
		} else {
			c.emitOp(vm.SUB)
		}
		c.emitStore()
		c.emitOp(vm.PSH)
		c.emitOpImm(vm.IMM, scale)
		if tk == token.Inc {
			c.emitOp(vm.SUB)
		} else {
			c.emitOp(vm.ADD)
		}
		c.next()

	case token.Brak:
		c.next()
		c.emitOp(vm.PSH)
		if err := c.expr(token.Assign); err != nil {
			return err
		}
		if c.tok() != token.Kind(']') {
			return c.errorf("close bracket expected")
		}
		c.next()
		if t > PTR {
			c.emitOp(vm.PSH)
			c.emitOpImm(vm.IMM, wordSize)
			c.emitOp(vm.MUL)
		} else if t < PTR {
			return c.errorf("pointer type expected")
		}
		c.emitOp(vm.ADD)
		c.ty = t - PTR
		c.emitDeref()

	default:
		return c.errorf("compiler error tk=%s", tk)
	}
	return nil
}

// exprArith compiles a left-associative binary arithmetic/comparison
// operator: push the LHS, compile the RHS at the next tighter level, emit
// the op.
func (c *Compiler) exprArith(tk token.Kind) error {
	next := map[token.Kind]token.Kind{
		token.Or: token.Xor, token.Xor: token.And, token.And: token.Eq,
		token.Eq: token.Lt, token.Ne: token.Lt,
		token.Lt: token.Shl, token.Gt: token.Shl, token.Le: token.Shl, token.Ge: token.Shl,
		token.Shl: token.Add, token.Shr: token.Add,
		token.Mul: token.Inc, token.Div: token.Inc, token.Mod: token.Inc,
	}[tk]
	c.next()
	c.emitOp(vm.PSH)
	if err := c.expr(next); err != nil {
		return err
	}
	switch tk {
	case token.Or:
		c.emitOp(vm.OR)
	case token.Xor:
		c.emitOp(vm.XOR)
	case token.And:
		c.emitOp(vm.AND)
	case token.Eq:
		c.emitOp(vm.EQ)
	case token.Ne:
		c.emitOp(vm.NE)
	case token.Lt:
		c.emitOp(vm.LT)
	case token.Gt:
		c.emitOp(vm.GT)
	case token.Le:
		c.emitOp(vm.LE)
	case token.Ge:
		c.emitOp(vm.GE)
	case token.Shl:
		c.emitOp(vm.SHL)
	case token.Shr:
		c.emitOp(vm.SHR)
	case token.Mul:
		c.emitOp(vm.MUL)
	case token.Div:
		c.emitOp(vm.DIV)
	case token.Mod:
		c.emitOp(vm.MOD)
	}
	c.ty = INT
	return nil
}

// emitDeref emits the load matching c.ty: LC for a char, LI otherwise.
func (c *Compiler) emitDeref() {
	if c.ty == CHAR {
		c.emitOp(vm.LC)
	} else {
		c.emitOp(vm.LI)
	}
}

// emitStore emits the store matching c.ty, the counterpart to emitDeref.
func (c *Compiler) emitStore() {
	if c.ty == CHAR {
		c.emitOp(vm.SC)
	} else {
		c.emitOp(vm.SI)
	}
}

// scale returns the step a ++/-- or pointer +/- on the current type takes:
// wordSize for anything above PTR (int pointers, and pointer-to-pointer and
// up, matching c4's "ty > PTR" test), 1 for char pointers and non-pointers.
func (c *Compiler) scale() int32 {
	if c.ty > PTR {
		return wordSize
	}
	return 1
}

// turnLoadIntoLoadAndPush rewrites the just-emitted LC/LI into PSH
// followed by the same load, so a ++/-- can push the lvalue's address,
// reload its value, then push a copy to operate on -- spec §9's "peek and
// rewrite the last emitted word" idiom.
func (c *Compiler) turnLoadIntoLoadAndPush() error {
	op := vm.Op(c.code.Last())
	if op != vm.LC && op != vm.LI {
		return c.errorf("bad lvalue in increment/decrement")
	}
	c.code.RewriteLast(int32(vm.PSH))
	c.emitOp(op)
	return nil
}
