// Package symtab implements c4's flat, append-only identifier table with
// one-deep shadowing for function parameters and locals.
package symtab

import "github.com/jcorbin/c4go/internal/token"

// Symbol is one identifier record (spec §3 "Identifier record"). Name is a
// slice into the original source buffer -- it is never copied.
type Symbol struct {
	Kind token.Kind // Id or a keyword (syscalls keep Id; their Class is Sys)
	Hash int32
	Name []byte

	Class token.Kind // Num, Fun, Sys, Glo, Loc, or 0 (unbound)
	Type  int
	Val   int32

	// shadow triple: the binding a Loc rebind temporarily displaced.
	HClass token.Kind
	HType  int
	HVal   int32
}

// Hash folds name the way c4's lexer does while scanning an identifier:
// each additional byte multiplies the running hash by 147 and adds the
// byte, then the result is shifted left 6 bits and the length added (spec
// §4.A). Lookup and Intern compute it over the whole name.
func Hash(name []byte) int32 {
	if len(name) == 0 {
		return 0
	}
	h := int32(name[0])
	for _, c := range name[1:] {
		h = h*147 + int32(c)
	}
	return (h << 6) + int32(len(name))
}

// Table is the append-only symbol table. Lookup is linear, matching the
// source: tables in real c4 programs are small enough that this never
// matters, and a linear scan is what lets shadowing restore in one pass.
type Table struct {
	syms []*Symbol
}

// New builds a table with the keywords and host syscalls pre-inserted, in
// the fixed order spec §4.B requires: keyword Kind values must equal their
// token.Kind, and syscall identifiers occupy sequential Val slots.
func New() *Table {
	t := &Table{}
	for _, kw := range token.Keywords {
		sym := t.Intern([]byte(kw.Name))
		sym.Kind = kw.Kind
	}
	for i, name := range SyscallNames {
		sym := t.Intern([]byte(name))
		sym.Class = token.Sys
		sym.Val = int32(i)
	}
	return t
}

// SyscallNames lists the host syscalls in the fixed order their opcodes
// occupy in the VM's opcode table (spec §4.F, §6).
var SyscallNames = []string{"fopen", "fread", "fclose", "printf", "malloc", "memset", "memcmp", "exit"}

// Lookup finds a pre-existing symbol by name, or returns nil.
func (t *Table) Lookup(name []byte) *Symbol {
	h := Hash(name)
	for _, sym := range t.syms {
		if sym.Hash == h && string(sym.Name) == string(name) {
			return sym
		}
	}
	return nil
}

// Intern finds or creates the symbol for name. A freshly created symbol
// has Kind token.Id and a zero Class (unbound).
func (t *Table) Intern(name []byte) *Symbol {
	if sym := t.Lookup(name); sym != nil {
		return sym
	}
	sym := &Symbol{Kind: token.Id, Hash: Hash(name), Name: name}
	t.syms = append(t.syms, sym)
	return sym
}

// All returns the live symbols, in insertion order.
func (t *Table) All() []*Symbol { return t.syms }

// FindMain locates the entry point by name, as spec §4.G's loader does.
func (t *Table) FindMain() *Symbol { return t.Lookup([]byte("main")) }

// Shadow saves sym's current (Class, Type, Val) into its shadow triple and
// installs the new binding. Used when a parameter or local rebinds an
// outer (or global) identifier for the duration of a function body.
func Shadow(sym *Symbol, class token.Kind, typ int, val int32) {
	sym.HClass, sym.HType, sym.HVal = sym.Class, sym.Type, sym.Val
	sym.Class, sym.Type, sym.Val = class, typ, val
}

// UnshadowAll restores every Loc-classed symbol's pre-shadow binding in a
// single pass, as spec §4.E requires at the end of a function body. This
// is the one point where "scope leakage" (testable property #2) is
// prevented: any identifier still marked Loc here was a parameter or
// local of the function that just finished.
func (t *Table) UnshadowAll() {
	for _, sym := range t.syms {
		if sym.Class == token.Loc {
			sym.Class, sym.Type, sym.Val = sym.HClass, sym.HType, sym.HVal
		}
	}
}
