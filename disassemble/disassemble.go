// Package disassemble implements a disassembler for HuC6280 opcodes
// driven by the CPU opcode table.
package disassemble

import (
	"fmt"
	"strings"

	"github.com/jmchacon/pce/cpu"
)

// Peeker reads memory without side effects (no clock advance, no device access).
type Peeker interface {
	Peek(addr uint16) uint8
}

const kUNKNOWN = "???"

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
// Opcodes the CPU doesn't decode disassemble as a 1 byte "???".
func Step(pc uint16, r Peeker) (string, int) {
	o := r.Peek(pc)
	op, ok := cpu.Lookup(o)
	name := kUNKNOWN
	mode := cpu.MODE_IMPLIED
	if ok {
		name = op.Name
		mode = op.Mode
	}
	count := mode.Len()
	b := make([]uint8, count)
	var hex []string
	for i := range b {
		b[i] = r.Peek(pc + uint16(i))
		if i > 0 {
			hex = append(hex, fmt.Sprintf("%.2X", b[i]))
		}
	}
	w16 := func(i int) uint16 {
		return uint16(b[i+1])<<8 | uint16(b[i])
	}

	var arg string
	switch mode {
	case cpu.MODE_IMPLIED:
	case cpu.MODE_ACCUMULATOR:
		arg = "A"
	case cpu.MODE_IMMEDIATE:
		arg = fmt.Sprintf("#$%.2X", b[1])
	case cpu.MODE_ZP:
		arg = fmt.Sprintf("$%.2X", b[1])
	case cpu.MODE_ZPX:
		arg = fmt.Sprintf("$%.2X,X", b[1])
	case cpu.MODE_ZPY:
		arg = fmt.Sprintf("$%.2X,Y", b[1])
	case cpu.MODE_ZP_INDIRECT:
		arg = fmt.Sprintf("($%.2X)", b[1])
	case cpu.MODE_ZPX_INDIRECT:
		arg = fmt.Sprintf("($%.2X,X)", b[1])
	case cpu.MODE_ZP_INDIRECTY:
		arg = fmt.Sprintf("($%.2X),Y", b[1])
	case cpu.MODE_ABSOLUTE:
		arg = fmt.Sprintf("$%.4X", w16(1))
	case cpu.MODE_ABSOLUTEX:
		arg = fmt.Sprintf("$%.4X,X", w16(1))
	case cpu.MODE_ABSOLUTEY:
		arg = fmt.Sprintf("$%.4X,Y", w16(1))
	case cpu.MODE_ABS_INDIRECT:
		arg = fmt.Sprintf("($%.4X)", w16(1))
	case cpu.MODE_ABSX_INDIRECT:
		arg = fmt.Sprintf("($%.4X,X)", w16(1))
	case cpu.MODE_RELATIVE:
		arg = fmt.Sprintf("$%.2X ($%.4X)", b[1], pc+2+uint16(int16(int8(b[1]))))
	case cpu.MODE_ZP_RELATIVE:
		arg = fmt.Sprintf("$%.2X,$%.2X ($%.4X)", b[1], b[2], pc+3+uint16(int16(int8(b[2]))))
	case cpu.MODE_IMM_ZP:
		arg = fmt.Sprintf("#$%.2X,$%.2X", b[1], b[2])
	case cpu.MODE_IMM_ZPX:
		arg = fmt.Sprintf("#$%.2X,$%.2X,X", b[1], b[2])
	case cpu.MODE_IMM_ABS:
		arg = fmt.Sprintf("#$%.2X,$%.4X", b[1], w16(2))
	case cpu.MODE_IMM_ABSX:
		arg = fmt.Sprintf("#$%.2X,$%.4X,X", b[1], w16(2))
	case cpu.MODE_BLOCK:
		arg = fmt.Sprintf("$%.4X,$%.4X,$%.4X", w16(1), w16(3), w16(5))
	default:
		panic(fmt.Sprintf("Invalid mode: %d", mode))
	}
	out := fmt.Sprintf("%.4X %.2X %-18s %s %s", pc, o, strings.Join(hex, " "), name, arg)
	return strings.TrimRight(out, " "), count
}
