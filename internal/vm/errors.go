package vm

import "fmt"

// RuntimeError reports a fault raised while interpreting a compiled image:
// an unknown opcode, an out-of-range memory access, or a host syscall that
// failed in a way the VM can't recover from. pc and Cycle are captured at
// the point of the fault, so a caller tracing execution can correlate the
// error with the last few lines of trace output.
type RuntimeError struct {
	PC    int32
	Cycle int64
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("vm: %s (pc=%d cycle=%d)", e.Msg, e.PC, e.Cycle)
}

func (vm *VM) fault(format string, args ...interface{}) error {
	return &RuntimeError{PC: vm.pc, Cycle: vm.cycle, Msg: fmt.Sprintf(format, args...)}
}
