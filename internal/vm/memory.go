package vm

import "encoding/binary"

// loadWord and friends classify addr by magnitude: dataBase and above is
// the data segment (globals, string literals, malloc'd buffers), anything
// below it is a stack index (spec §9, see the vm package doc comment).

func (vm *VM) loadWord(addr int32) (int32, error) {
	if addr >= dataBase {
		off := addr - dataBase
		if off < 0 || int(off)+4 > len(vm.data) {
			return 0, vm.fault("LI out of range data address %d", addr)
		}
		return int32(binary.LittleEndian.Uint32(vm.data[off:])), nil
	}
	if addr < 0 || int(addr) >= len(vm.stack) {
		return 0, vm.fault("LI out of range stack address %d", addr)
	}
	return vm.stack[addr], nil
}

func (vm *VM) storeWord(addr, v int32) error {
	if addr >= dataBase {
		off := addr - dataBase
		if off < 0 || int(off)+4 > len(vm.data) {
			return vm.fault("SI out of range data address %d", addr)
		}
		binary.LittleEndian.PutUint32(vm.data[off:], uint32(v))
		return nil
	}
	if addr < 0 || int(addr) >= len(vm.stack) {
		return vm.fault("SI out of range stack address %d", addr)
	}
	vm.stack[addr] = v
	return nil
}

func (vm *VM) loadByte(addr int32) (int32, error) {
	if addr >= dataBase {
		off := addr - dataBase
		if off < 0 || int(off) >= len(vm.data) {
			return 0, vm.fault("LC out of range data address %d", addr)
		}
		return int32(int8(vm.data[off])), nil
	}
	if addr < 0 || int(addr) >= len(vm.stack) {
		return 0, vm.fault("LC out of range stack address %d", addr)
	}
	return int32(int8(vm.stack[addr])), nil
}

func (vm *VM) storeByte(addr, v int32) error {
	if addr >= dataBase {
		off := addr - dataBase
		if off < 0 || int(off) >= len(vm.data) {
			return vm.fault("SC out of range data address %d", addr)
		}
		vm.data[off] = byte(v)
		return nil
	}
	if addr < 0 || int(addr) >= len(vm.stack) {
		return vm.fault("SC out of range stack address %d", addr)
	}
	vm.stack[addr] = int32(int8(v))
	return nil
}

// cstring reads a NUL-terminated byte string out of the data segment at a
// dataBase-biased address, for host calls that take a char*.
func (vm *VM) cstring(addr int32) ([]byte, error) {
	if addr < dataBase {
		return nil, vm.fault("expected data address, got %d", addr)
	}
	off := int(addr - dataBase)
	if off < 0 || off > len(vm.data) {
		return nil, vm.fault("out of range data address %d", addr)
	}
	end := off
	for end < len(vm.data) && vm.data[end] != 0 {
		end++
	}
	return vm.data[off:end], nil
}

// growData appends n zero bytes to the data segment (used by malloc) and
// returns the biased address of the first one.
func (vm *VM) growData(n int32) int32 {
	off := int32(len(vm.data))
	vm.data = append(vm.data, make([]byte, n)...)
	return dataBase + off
}
