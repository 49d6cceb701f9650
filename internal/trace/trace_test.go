package trace_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/c4go/internal/compiler"
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/trace"
	"github.com/jcorbin/c4go/internal/vm"
)

func TestDisassemblerSourceEchoesLineThenWords(t *testing.T) {
	var lines []string
	dis := &trace.Disassembler{Logf: func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}

	_, err := compiler.Compile([]byte("int main(){ return 1; }\n"), compiler.WithSourceTrace(
		func(line int, text []byte, words []int32, startAddr int32, syms *symtab.Table, data []byte) {
			dis.Syms, dis.Data = syms, data
			dis.Source(line, text, words, startAddr)
		}))
	a := assert.New(t)
	a.NoError(err)
	a.NotEmpty(lines)
	a.Contains(lines[0], "int main")
}

func TestExecTraceRendersOperandWhenPresent(t *testing.T) {
	var got []string
	logf := func(format string, args ...interface{}) { got = append(got, fmt.Sprintf(format, args...)) }
	tr := trace.Exec(logf)

	tr(1, vm.IMM, 42, true)
	tr(3, vm.LEV, 0, false)

	assert.Contains(t, got[0], "IMM")
	assert.Contains(t, got[0], "42")
	assert.NotContains(t, got[1], "0")
}
