package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/c4go/internal/compiler"
	"github.com/jcorbin/c4go/internal/vm"
)

// wantExitCode is each fixture's expected main()/exit() result, asserted
// against machine.Run's own return value (and cross-checked against the
// code sysExit prints, via exitLineRE) directly in Go rather than in
// the testdata/*.out fixture -- the fixture only holds the fixture's own
// printf output, since sysExit's trailing "exit(%d) cycle = %d\n" line
// now always fires (Run's LEV/retSentinel path triggers it even when a
// program never calls exit() itself) and its cycle count isn't something
// a hand-authored fixture could predict.
var wantExitCode = map[string]int32{
	"return0.c":                   0,
	"precedence_mul_high.c":       14,
	"precedence_left_to_right.c":  10,
	"while_loop.c":                10,
	"global_var.c":                7,
	"printf_hello.c":              0,
	"enum_const.c":                21,
	"function_call.c":             37,
	"malloc_index.c":              123,
	"if_else.c":                   1,
	"short_circuit.c":             0,
	"pointer_scaling.c":           11,
}

var exitLineRE = regexp.MustCompile(`(?s)^(.*)exit\((-?\d+)\) cycle = \d+\n$`)

// TestGoldenFixtures compiles and runs every testdata/*.c program and
// compares its own captured output, and its exit code, against
// testdata/*.out (regenerated by scripts/gendata) and wantExitCode.
func TestGoldenFixtures(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.c")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, srcPath := range matches {
		srcPath := srcPath
		name := filepath.Base(srcPath)
		t.Run(name, func(t *testing.T) {
			want, ok := wantExitCode[name]
			require.True(t, ok, "no wantExitCode entry for %s", name)

			src, err := os.ReadFile(srcPath)
			require.NoError(t, err)

			im, err := compiler.Compile(src)
			require.NoError(t, err)

			var out bytes.Buffer
			machine := vm.New(im, vm.WithOutput(&out))
			code, err := machine.Run(im.MainOffset)
			require.NoError(t, err)
			assert.Equal(t, want, code)

			m := exitLineRE.FindStringSubmatch(out.String())
			require.NotNil(t, m, "missing trailing exit(...) line in %q", out.String())
			printedCode, err := strconv.ParseInt(m[2], 10, 32)
			require.NoError(t, err)
			assert.Equal(t, code, int32(printedCode))

			wantPath := srcPath[:len(srcPath)-len(filepath.Ext(srcPath))] + ".out"
			wantBody, err := os.ReadFile(wantPath)
			require.NoError(t, err)

			assert.Equal(t, string(wantBody), m[1])
		})
	}
}
