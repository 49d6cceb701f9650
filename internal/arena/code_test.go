package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/c4go/internal/arena"
)

func TestCodeStartsWithSentinel(t *testing.T) {
	c := arena.NewCode()
	assert.Equal(t, int32(1), c.Here())
	assert.Equal(t, []int32{0}, c.Words)
}

func TestEmitAndHere(t *testing.T) {
	c := arena.NewCode()
	addr := c.Emit(99)
	assert.Equal(t, int32(1), addr)
	assert.Equal(t, int32(2), c.Here())
	assert.Equal(t, int32(99), c.Last())
}

func TestRewriteLastAndRewind(t *testing.T) {
	c := arena.NewCode()
	c.Emit(1)
	c.RewriteLast(2)
	assert.Equal(t, int32(2), c.Last())
	c.Rewind()
	assert.Equal(t, int32(1), c.Here())
}

func TestPatchIsRelativeToSlot(t *testing.T) {
	c := arena.NewCode()
	c.Emit(0) // opcode
	slot := c.Emit(0)
	c.Emit(0)
	c.Emit(0)
	c.Patch(slot)
	// slot + value must equal the current head.
	assert.Equal(t, c.Here(), slot+c.Words[slot])
}

func TestPatchToBackwardTarget(t *testing.T) {
	c := arena.NewCode()
	top := c.Here()
	c.Emit(0)
	slot := c.Emit(0)
	c.PatchTo(slot, top)
	assert.Equal(t, top, slot+c.Words[slot])
}
