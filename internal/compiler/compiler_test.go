package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/c4go/internal/compiler"
	"github.com/jcorbin/c4go/internal/vm"
)

func TestCompileRejectsMissingMain(t *testing.T) {
	_, err := compiler.Compile([]byte("int x;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main() not defined")
}

func TestCompileEmptyFunctionBody(t *testing.T) {
	im, err := compiler.Compile([]byte("int main(){}"))
	require.NoError(t, err)
	// ENT 0 ; LEV, directly at main's recorded entry.
	assert.Equal(t, vm.Op(vm.ENT), vm.Op(im.Code[im.MainOffset]))
	assert.Equal(t, int32(0), im.Code[im.MainOffset+1])
	assert.Equal(t, vm.Op(vm.LEV), vm.Op(im.Code[im.MainOffset+2]))
}

func TestCompileDoesNotDoubleEmitLev(t *testing.T) {
	im, err := compiler.Compile([]byte("int main(){ return 1; }"))
	require.NoError(t, err)
	// IMM 1, LEV -- a second unconditional LEV must not follow.
	last := im.Code[len(im.Code)-1]
	assert.Equal(t, int32(vm.LEV), last)
	secondLast := im.Code[len(im.Code)-2]
	assert.NotEqual(t, int32(vm.LEV), secondLast)
}

func TestDuplicateGlobalDefinitionIsAnError(t *testing.T) {
	_, err := compiler.Compile([]byte("int x;\nint x;\nint main(){return 0;}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate global definition")

	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Line)
	assert.Equal(t, "int x;", string(cerr.Source))
	assert.Contains(t, cerr.Error(), "\nint x;")
}

func TestParameterScopeDoesNotLeak(t *testing.T) {
	im, err := compiler.Compile([]byte(`
int f(int x) { return x; }
int main() { return f(1) + x; }
`))
	// x is only bound inside f; referencing it in main is undefined.
	require.Error(t, err)
	require.Nil(t, im)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestBranchOperandsAreRelativeToTheirSlot(t *testing.T) {
	im, err := compiler.Compile([]byte(`
int main() {
	int i;
	i = 0;
	while (i < 3) i = i + 1;
	return i;
}
`))
	require.NoError(t, err)
	for i := 1; i < len(im.Code); {
		op := vm.Op(im.Code[i])
		if !op.HasOperand() {
			i++
			continue
		}
		slot := int32(i + 1)
		if op == vm.BZ || op == vm.BNZ || op == vm.JMP {
			target := slot + im.Code[slot]
			assert.GreaterOrEqual(t, target, int32(0))
			assert.LessOrEqual(t, target, int32(len(im.Code)))
		}
		i += 2
	}
}
