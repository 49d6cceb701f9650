package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
)

func TestNewPreseedsKeywordsAndSyscalls(t *testing.T) {
	tab := symtab.New()

	ifSym := tab.Lookup([]byte("if"))
	require.NotNil(t, ifSym)
	assert.Equal(t, token.If, ifSym.Kind)

	for i, name := range symtab.SyscallNames {
		sym := tab.Lookup([]byte(name))
		require.NotNil(t, sym, name)
		assert.Equal(t, token.Sys, sym.Class)
		assert.Equal(t, int32(i), sym.Val)
	}
}

func TestInternIsIdempotent(t *testing.T) {
	tab := symtab.New()
	a := tab.Intern([]byte("foo"))
	b := tab.Intern([]byte("foo"))
	assert.Same(t, a, b)
	assert.Equal(t, token.Id, a.Kind)
}

func TestShadowAndUnshadowAll(t *testing.T) {
	tab := symtab.New()
	g := tab.Intern([]byte("x"))
	g.Class, g.Type, g.Val = token.Glo, 1, 40

	symtab.Shadow(g, token.Loc, 1, 0)
	assert.Equal(t, token.Loc, g.Class)
	assert.Equal(t, int32(0), g.Val)

	tab.UnshadowAll()
	assert.Equal(t, token.Glo, g.Class)
	assert.Equal(t, int32(40), g.Val)
}

func TestUnshadowAllLeavesNonLocBindingsAlone(t *testing.T) {
	tab := symtab.New()
	fn := tab.Intern([]byte("f"))
	fn.Class, fn.Val = token.Fun, 12

	tab.UnshadowAll()
	assert.Equal(t, token.Fun, fn.Class)
	assert.Equal(t, int32(12), fn.Val)
}

func TestFindMain(t *testing.T) {
	tab := symtab.New()
	assert.Nil(t, tab.FindMain())
	m := tab.Intern([]byte("main"))
	m.Class = token.Fun
	assert.Same(t, m, tab.FindMain())
}
