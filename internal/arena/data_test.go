package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/c4go/internal/arena"
)

func TestReserveGlobalZeroInitializes(t *testing.T) {
	d := arena.NewData()
	off := d.ReserveGlobal()
	assert.Equal(t, int32(0), off)
	assert.Equal(t, []byte{0, 0, 0, 0}, d.Bytes)
	assert.Equal(t, int32(4), d.Head())
}

func TestAlignTo4(t *testing.T) {
	d := arena.NewData()
	d.AppendByte('h')
	d.AppendByte('i')
	d.AppendByte('\n')
	d.AlignTo4()
	assert.Equal(t, int32(4), d.Head())
	assert.Equal(t, byte(0), d.Bytes[3])
}

func TestAlignTo4NoOpWhenAlreadyAligned(t *testing.T) {
	d := arena.NewData()
	d.ReserveGlobal()
	before := d.Head()
	d.AlignTo4()
	assert.Equal(t, before, d.Head())
}

func TestCStringStopsAtNulOrEnd(t *testing.T) {
	d := arena.NewData()
	off := d.Head()
	d.AppendByte('h')
	d.AppendByte('i')
	d.AppendByte(0)
	assert.Equal(t, []byte("hi"), d.CString(off))
}
