package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// hostFile is the opaque handle OPEN hands back: a small negative integer
// indexing into vm.files, so it can never collide with a stack index or a
// dataBase-biased data address (spec §5, "host file handles ... opaque to
// the VM").
type hostFile struct {
	f *os.File
}

func (vm *VM) openFile(f *os.File) int32 {
	vm.files = append(vm.files, &hostFile{f: f})
	return -int32(len(vm.files))
}

func (vm *VM) file(handle int32) (*hostFile, error) {
	i := -handle - 1
	if i < 0 || int(i) >= len(vm.files) || vm.files[i] == nil {
		return nil, vm.fault("bad file handle %d", handle)
	}
	return vm.files[i], nil
}

// hostCall dispatches the 8 opcodes the compiler emits directly for
// Sys-classed identifiers (spec §4.E, §4.F): fopen/fread/fclose, printf,
// malloc/memset/memcmp, and exit. None of them touch sp themselves -- the
// ADJ that follows in the emitted code pops the arguments once the host
// call has read them, matching src/vm.c's ci_case bodies.
func (vm *VM) hostCall(op Op) (int32, error) {
	switch op {
	case OPEN:
		return vm.sysOpen()
	case READ:
		return vm.sysRead()
	case CLOS:
		return vm.sysClose()
	case PRTF:
		return vm.sysPrintf()
	case MALC:
		return vm.sysMalloc()
	case MSET:
		return vm.sysMemset()
	case MCMP:
		return vm.sysMemcmp()
	case EXIT:
		return vm.sysExit()
	default:
		return 0, vm.fault("not a host syscall opcode %s", op)
	}
}

func (vm *VM) sysOpen() (int32, error) {
	pathAddr, modeAddr := vm.arg(2, 1), vm.arg(2, 2)
	path, err := vm.cstring(pathAddr)
	if err != nil {
		return 0, err
	}
	mode, err := vm.cstring(modeAddr)
	if err != nil {
		return 0, err
	}
	flag := os.O_RDONLY
	switch strings.TrimSuffix(string(mode), "b") {
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+", "w+", "a+":
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(string(path), flag, 0644)
	if err != nil {
		return 0, nil // fopen semantics: NULL on failure, not a fault
	}
	return vm.openFile(f), nil
}

func (vm *VM) sysRead() (int32, error) {
	ptrAddr, size, nmemb, handle := vm.arg(4, 1), vm.arg(4, 2), vm.arg(4, 3), vm.arg(4, 4)
	hf, err := vm.file(handle)
	if err != nil {
		return 0, err
	}
	n := size * nmemb
	if n < 0 {
		return 0, vm.fault("negative fread length")
	}
	buf := make([]byte, n)
	read, _ := hf.f.Read(buf)
	if size > 0 {
		read = (read / int(size)) * int(size)
	}
	if read > 0 {
		off := ptrAddr - dataBase
		if ptrAddr < dataBase || int(off)+read > len(vm.data) {
			return 0, vm.fault("fread destination out of range")
		}
		copy(vm.data[off:int(off)+read], buf[:read])
	}
	if size == 0 {
		return 0, nil
	}
	return int32(read) / size, nil
}

func (vm *VM) sysClose() (int32, error) {
	handle := vm.arg(1, 1)
	hf, err := vm.file(handle)
	if err != nil {
		return 0, err
	}
	if err := hf.f.Close(); err != nil {
		return -1, nil
	}
	return 0, nil
}

// sysPrintf peeks at the ADJ instruction immediately following PRTF in the
// code stream to learn how many arguments were pushed, without consuming
// it -- PRTF itself carries no operand (spec §4.F, "PRTF's argument-count
// trick"). It then reads the format string plus up to 5 extra arguments
// directly off the stack, before the following ADJ pops them.
func (vm *VM) sysPrintf() (int32, error) {
	if int(vm.pc)+1 >= len(vm.code) {
		return 0, vm.fault("PRTF missing following ADJ")
	}
	argc := vm.code[vm.pc+1]
	if argc < 1 {
		return 0, vm.fault("printf called with no format argument")
	}
	if argc > 6 {
		return 0, vm.fault("too many printf arguments")
	}
	t := vm.sp + argc
	word := func(i int32) int32 { return vm.stack[t-i] }

	fmtAddr := word(1)
	format, err := vm.cstring(fmtAddr)
	if err != nil {
		return 0, err
	}

	var extra [5]int32
	for i := range extra {
		pos := int32(2 + i)
		if pos <= argc {
			extra[i] = word(pos)
		}
	}
	return vm.printf(format, extra)
}

// printf interprets the C-subset of format directives spec §4.F's host
// printf supports: %d, %s, %c and %%.
func (vm *VM) printf(format []byte, args [5]int32) (int32, error) {
	var out strings.Builder
	ai := 0
	next := func() (int32, error) {
		if ai >= len(args) {
			return 0, vm.fault("printf: too many format directives")
		}
		v := args[ai]
		ai++
		return v, nil
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			out.WriteByte('%')
			break
		}
		switch format[i] {
		case '%':
			out.WriteByte('%')
		case 'd':
			v, err := next()
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(&out, "%d", v)
		case 'c':
			v, err := next()
			if err != nil {
				return 0, err
			}
			out.WriteByte(byte(v))
		case 's':
			v, err := next()
			if err != nil {
				return 0, err
			}
			s, err := vm.cstring(v)
			if err != nil {
				return 0, err
			}
			out.Write(s)
		default:
			out.WriteByte('%')
			out.WriteByte(format[i])
		}
	}
	n, _ := io.WriteString(vm.out, out.String())
	return int32(n), nil
}

func (vm *VM) sysMalloc() (int32, error) {
	n := vm.arg(1, 1)
	if n < 0 {
		return 0, vm.fault("negative malloc size")
	}
	return vm.growData(n), nil
}

func (vm *VM) sysMemset() (int32, error) {
	ptrAddr, val, n := vm.arg(3, 1), vm.arg(3, 2), vm.arg(3, 3)
	if ptrAddr < dataBase || n < 0 || int(ptrAddr-dataBase)+int(n) > len(vm.data) {
		return 0, vm.fault("memset out of range")
	}
	off := ptrAddr - dataBase
	buf := vm.data[off : off+n]
	for i := range buf {
		buf[i] = byte(val)
	}
	return ptrAddr, nil
}

func (vm *VM) sysMemcmp() (int32, error) {
	aAddr, bAddr, n := vm.arg(3, 1), vm.arg(3, 2), vm.arg(3, 3)
	if aAddr < dataBase || bAddr < dataBase || n < 0 {
		return 0, vm.fault("memcmp out of range")
	}
	ao, bo := aAddr-dataBase, bAddr-dataBase
	if int(ao)+int(n) > len(vm.data) || int(bo)+int(n) > len(vm.data) {
		return 0, vm.fault("memcmp out of range")
	}
	cmp := 0
	for i := int32(0); i < n; i++ {
		d := int(vm.data[ao+i]) - int(vm.data[bo+i])
		if d != 0 {
			cmp = d
			break
		}
	}
	return int32(cmp), nil
}

func (vm *VM) sysExit() (int32, error) {
	code := vm.arg(1, 1)
	fmt.Fprintf(vm.out, "exit(%d) cycle = %d\n", code, vm.cycle)
	return code, nil
}

// pushArgv lays the program's command-line arguments out in the data
// segment as a NUL-terminated string per argument plus a pointer array,
// and returns the dataBase-biased address of that array -- main's argv,
// when main is declared to take one (spec supplement from original_source:
// the argc/argv contract).
func (vm *VM) pushArgv() int32 {
	all := append([]string{"c4"}, vm.args...)
	ptrs := make([]int32, len(all))
	for i, s := range all {
		addr := vm.growData(int32(len(s) + 1))
		off := addr - dataBase
		copy(vm.data[off:], s)
		vm.data[off+int32(len(s))] = 0
		ptrs[i] = addr
	}
	arr := vm.growData(int32(len(ptrs)) * 4)
	off := arr - dataBase
	for i, p := range ptrs {
		binary.LittleEndian.PutUint32(vm.data[off+int32(i)*4:], uint32(p))
	}
	return arr
}
