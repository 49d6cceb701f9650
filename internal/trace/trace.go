// Package trace renders c4go's two debug views (spec §4.H): the -s
// source+disassembly echo produced while compiling, and the -d
// per-instruction execution trace produced while running. Both write
// through an internal/logio.Logger rather than directly to a stream, so
// a single driver can redirect or suppress either one uniformly.
package trace

import (
	"bytes"
	"fmt"

	"github.com/jcorbin/c4go/internal/symtab"
	"github.com/jcorbin/c4go/internal/token"
	"github.com/jcorbin/c4go/internal/vm"
)

// Disassembler renders compiled code words for the -s trace: one line
// per source line (the raw source text), followed by one line per
// instruction emitted from it. LGB operands resolve to a global's name
// when one exists at that data offset, falling back to a C-escaped
// rendering of the string found there.
type Disassembler struct {
	Logf func(format string, args ...interface{})
	Syms *symtab.Table
	Data []byte
}

// Source is installed as a compiler.WithSourceTrace hook.
func (d *Disassembler) Source(line int, text []byte, words []int32, startAddr int32) {
	d.Logf("%d: %s", line, bytes.TrimRight(text, "\r\n"))
	addr := startAddr
	for i := 0; i < len(words); {
		op := vm.Op(words[i])
		if op.HasOperand() && i+1 < len(words) {
			operand := words[i+1]
			d.Logf("%d: %s %s", addr, op, d.operand(op, operand))
			i += 2
			addr += 2
		} else {
			d.Logf("%d: %s", addr, op)
			i++
			addr++
		}
	}
}

func (d *Disassembler) operand(op vm.Op, operand int32) string {
	if op != vm.LGB {
		return fmt.Sprintf("%d", operand)
	}
	if name := d.globalAt(operand); name != "" {
		return name
	}
	return cString(d.Data, operand)
}

func (d *Disassembler) globalAt(offset int32) string {
	if d.Syms == nil {
		return ""
	}
	for _, sym := range d.Syms.All() {
		if sym.Class == token.Glo && sym.Val == offset {
			return string(sym.Name)
		}
	}
	return ""
}

// cString renders the NUL-terminated byte run at offset into data as a
// C-escaped quoted string, for LGB operands that don't resolve to a
// known global (string literals).
func cString(data []byte, offset int32) string {
	if offset < 0 || int(offset) >= len(data) {
		return fmt.Sprintf("%d", offset)
	}
	end := int(offset)
	for end < len(data) && data[end] != 0 {
		end++
	}
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, b := range data[offset:end] {
		switch b {
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// Exec returns a vm.Trace that logs each dispatched instruction's
// address, mnemonic, and operand (if it has one) through logf.
func Exec(logf func(format string, args ...interface{})) vm.Trace {
	return func(pc int32, op vm.Op, operand int32, hasOperand bool) {
		if hasOperand {
			logf("%d: %s %d", pc, op, operand)
		} else {
			logf("%d: %s", pc, op)
		}
	}
}
