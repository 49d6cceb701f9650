// Command c4 compiles and runs (or compiles-only, or disassembles, or
// loads a previously compiled image) a single c4 source file (spec §6).
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jcorbin/c4go/internal/compiler"
	"github.com/jcorbin/c4go/internal/flushio"
	"github.com/jcorbin/c4go/internal/image"
	"github.com/jcorbin/c4go/internal/logio"
	"github.com/jcorbin/c4go/internal/panicerr"
	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/trace"
	"github.com/jcorbin/c4go/internal/vm"
)

func main() {
	var (
		source  bool
		debug   bool
		compile bool
		binary  bool
	)
	flag.BoolVar(&source, "s", false, "print source lines and disassembled code during compilation (no run)")
	flag.BoolVar(&debug, "d", false, "print each executed instruction during run")
	flag.BoolVar(&compile, "c", false, "compile and write the image to <source>.bin; do not run")
	flag.BoolVar(&binary, "b", false, "treat the positional argument as a compiled image; load and run it")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stdout)

	args := flag.Args()
	if len(args) < 1 {
		log.Errorf("usage: c4 [-s -d -c -b] <file> [args...]")
		os.Exit(-1)
	}
	path, progArgs := args[0], args[1:]

	code, err := run(path, progArgs, source, debug, compile, binary, &log)
	if err != nil {
		log.Errorf("%s", diagnostic(err))
		os.Exit(-1)
	}
	// The process's exit status mirrors the compiled program's own
	// return/exit value (original_source/ci.c's `return run_c(...)`) --
	// -1 above is reserved for driver-level diagnostics, never for a
	// program's own result, however it terminated.
	os.Exit(int(code))
}

// diagnostic renders err the way spec §7 wants: "<line>: <message>" for a
// compiler.Error, or its plain message otherwise.
func diagnostic(err error) string {
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		return cerr.Error()
	}
	return err.Error()
}

func run(path string, progArgs []string, source, debug, compileOnly, fromBinary bool, log *logio.Logger) (int32, error) {
	if fromBinary {
		return runImage(path, progArgs, debug, log)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "reading source")
	}

	var opts []compiler.Option
	if source {
		dis := &trace.Disassembler{Logf: log.Leveledf("SRC")}
		opts = append(opts, compiler.WithSourceTrace(
			func(line int, text []byte, words []int32, startAddr int32, syms *symtab.Table, data []byte) {
				dis.Syms, dis.Data = syms, data
				dis.Source(line, text, words, startAddr)
			}))
	}

	var im *image.Image
	if rerr := panicerr.Recover("compile", func() error {
		var cerr error
		im, cerr = compiler.Compile(src, opts...)
		return cerr
	}); rerr != nil {
		return 0, rerr
	}

	if source {
		return 0, nil
	}

	if compileOnly {
		out := path + ".bin"
		if ext := filepath.Ext(path); ext != "" {
			out = path[:len(path)-len(ext)] + ".bin"
		}
		f, err := os.Create(out)
		if err != nil {
			return 0, errors.Wrap(err, "creating image file")
		}
		defer f.Close()
		return 0, errors.Wrap(image.Save(f, im), "writing image")
	}

	return execute(im, progArgs, debug, log)
}

func runImage(path string, progArgs []string, debug bool, log *logio.Logger) (int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "opening image")
	}
	defer f.Close()

	im, err := image.Load(f)
	if err != nil {
		return 0, errors.Wrap(err, "loading image")
	}
	return execute(im, progArgs, debug, log)
}

func execute(im *image.Image, progArgs []string, debug bool, log *logio.Logger) (int32, error) {
	out := flushio.NewWriteFlusher(os.Stdout)

	var opts []vm.Option
	opts = append(opts, vm.WithOutput(out), vm.WithArgs(progArgs))
	if debug {
		opts = append(opts, vm.WithTrace(trace.Exec(log.Leveledf("EXEC"))))
	}
	machine := vm.New(im, opts...)

	var code int32
	err := panicerr.Recover("run", func() error {
		var rerr error
		code, rerr = machine.Run(im.MainOffset)
		return rerr
	})
	if ferr := out.Flush(); err == nil {
		err = errors.Wrap(ferr, "flushing output")
	}
	return code, err
}
