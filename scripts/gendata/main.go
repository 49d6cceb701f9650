// Command gendata regenerates testdata/*.out golden fixtures: for every
// testdata/*.c program it compiles and runs the program, then writes the
// program's own captured output (with the VM's trailing "exit(%d) cycle =
// %d\n" line stripped off, since the cycle count isn't a stable fixture
// value) to the matching .out file, logging the exit code it saw to the
// console for the developer to cross-check against c4go_test.go's
// wantExitCode table. Each program is compiled and run in its own
// goroutine (but each such run is itself single-threaded, same as any
// direct c4 invocation); a failure in any one cancels the rest.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/c4go/internal/compiler"
	"github.com/jcorbin/c4go/internal/vm"
)

var exitLineRE = regexp.MustCompile(`(?s)^(.*)exit\((-?\d+)\) cycle = \d+\n$`)

func main() {
	dir := flag.String("dir", "testdata", "directory of *.c fixtures")
	flag.Parse()

	if err := run(context.Background(), *dir); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.c"))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range matches {
		name := name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return generate(name)
		})
	}
	return eg.Wait()
}

func generate(srcPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	im, err := compiler.Compile(src)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", srcPath, err)
	}

	var stdout bytes.Buffer
	machine := vm.New(im, vm.WithOutput(&stdout))
	code, err := machine.Run(im.MainOffset)
	if err != nil {
		return fmt.Errorf("running %s: %w", srcPath, err)
	}

	m := exitLineRE.FindStringSubmatch(stdout.String())
	if m == nil {
		return fmt.Errorf("running %s: missing trailing exit(...) line in %q", srcPath, stdout.String())
	}
	log.Printf("%s: exit code %d (%s)", srcPath, code, m[2])

	outPath := srcPath[:len(srcPath)-len(filepath.Ext(srcPath))] + ".out"
	return os.WriteFile(outPath, []byte(m[1]), 0o644)
}
