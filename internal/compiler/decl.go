package compiler

import (
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
	"github.com/jcorbin/c4go/internal/vm"
)

// decl compiles one top-level declaration: an optional enum block, then
// zero or more comma-separated declarators sharing a base type (spec
// §4.B). A function declarator consumes its whole definition (params,
// locals, body) and ends the statement on its own -- there's no trailing
// ';' after a function body the way there is after a global variable
// list.
func (c *Compiler) decl() error {
	bt := INT
	switch c.tok() {
	case token.Int:
		c.next()
	case token.Char:
		c.next()
		bt = CHAR
	case token.Enum:
		if err := c.declEnum(); err != nil {
			return err
		}
	}

	for c.tok() != token.Kind(';') && c.tok() != token.Kind('}') {
		ty := bt
		for c.tok() == token.Mul {
			c.next()
			ty += PTR
		}
		if c.tok() != token.Id {
			return c.errorf("bad global declaration")
		}
		sym := c.sym()
		if sym.Class != 0 {
			return c.errorf("duplicate global definition")
		}
		c.next()
		sym.Type = int(ty)

		if c.tok() == token.Kind('(') {
			return c.declFunc(sym)
		}

		sym.Class = token.Glo
		sym.Val = c.data.ReserveGlobal()
		if c.tok() == token.Kind(',') {
			c.next()
		}
	}
	c.next()
	return nil
}

// declEnum compiles an optional "enum [name] { A [= v], B, ... }" block.
// Enumerators become Num-classed symbols whose Val is their constant
// value, not an address.
func (c *Compiler) declEnum() error {
	c.next()
	if c.tok() != token.Kind('{') {
		c.next() // skip the enum's own (unused) name
	}
	if c.tok() != token.Kind('{') {
		return nil
	}
	c.next()

	value := int32(0)
	for c.tok() != token.Kind('}') {
		if c.tok() != token.Id {
			return c.errorf("bad enum identifier")
		}
		sym := c.sym()
		c.next()
		if c.tok() == token.Assign {
			c.next()
			if c.tok() != token.Num {
				return c.errorf("bad enum initializer")
			}
			value = c.ival()
			c.next()
		}
		sym.Class = token.Num
		sym.Type = int(INT)
		sym.Val = value
		value++
		if c.tok() == token.Kind(',') {
			c.next()
		}
	}
	c.next()
	return nil
}

// declFunc compiles a function definition: parameters, then local
// declarations, then the body. Parameters and locals both shadow any
// outer binding of the same name for the duration of the body (spec §4.B,
// §4.E); UnshadowAll restores everything in one pass once the body's
// closing '}' is consumed.
//
// Parameter k (0-indexed in declaration order) is numbered k; loc is then
// set to paramCount+1, and each local is numbered by pre-incrementing
// that same counter. A reference's LEA offset is loc-val: positive (above
// bp) for a parameter, negative (below bp, into ENT's reserved locals)
// for a local: the parameters sit above the return address and saved bp
// that JSR and ENT push, so the last parameter is at bp+2 and the first
// at bp+loc, while the first local is at bp-1.
func (c *Compiler) declFunc(sym *symtab.Symbol) error {
	sym.Class = token.Fun
	sym.Val = c.code.Here()
	c.next() // (

	i := int32(0)
	for c.tok() != token.Kind(')') {
		ty := INT
		switch c.tok() {
		case token.Int:
			c.next()
		case token.Char:
			c.next()
			ty = CHAR
		}
		for c.tok() == token.Mul {
			c.next()
			ty += PTR
		}
		if c.tok() != token.Id {
			return c.errorf("bad parameter declaration")
		}
		psym := c.sym()
		if psym.Class == token.Loc {
			return c.errorf("duplicate parameter definition")
		}
		symtab.Shadow(psym, token.Loc, int(ty), i)
		i++
		c.next()
		if c.tok() == token.Kind(',') {
			c.next()
		}
	}
	c.next() // )

	if c.tok() != token.Kind('{') {
		return c.errorf("bad function definition")
	}
	c.loc = i + 1
	i = c.loc
	c.next() // {

	for c.tok() == token.Int || c.tok() == token.Char {
		bt := INT
		if c.tok() == token.Char {
			bt = CHAR
		}
		c.next()
		for c.tok() != token.Kind(';') {
			ty := bt
			for c.tok() == token.Mul {
				c.next()
				ty += PTR
			}
			if c.tok() != token.Id {
				return c.errorf("bad local declaration")
			}
			lsym := c.sym()
			if lsym.Class == token.Loc {
				return c.errorf("duplicate local definition")
			}
			i++
			symtab.Shadow(lsym, token.Loc, int(ty), i)
			c.next()
			if c.tok() == token.Kind(',') {
				c.next()
			}
		}
		c.next()
	}

	c.emitOpImm(vm.ENT, i-c.loc)
	for c.tok() != token.Kind('}') {
		if err := c.stmt(); err != nil {
			return err
		}
	}
	if c.code.Last() != int32(vm.LEV) {
		c.emitOp(vm.LEV)
	}
	c.next() // }

	c.syms.UnshadowAll()
	return nil
}
