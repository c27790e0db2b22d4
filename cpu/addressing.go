package cpu

import "fmt"

// Mode is an addressing mode.
type Mode int

const (
	MODE_IMPLIED        Mode = iota // No operand (or a register operand).
	MODE_ACCUMULATOR                // A
	MODE_IMMEDIATE                  // #$nn
	MODE_ZP                         // $nn
	MODE_ZPX                        // $nn,x
	MODE_ZPY                        // $nn,y
	MODE_ZP_INDIRECT                // ($nn)
	MODE_ZPX_INDIRECT               // ($nn,x)
	MODE_ZP_INDIRECTY               // ($nn),y
	MODE_ABSOLUTE                   // $nnnn
	MODE_ABSOLUTEX                  // $nnnn,x
	MODE_ABSOLUTEY                  // $nnnn,y
	MODE_ABS_INDIRECT               // ($nnnn)
	MODE_ABSX_INDIRECT              // ($nnnn,x)
	MODE_RELATIVE                   // Branch offset
	MODE_ZP_RELATIVE                // $nn,offset (BBR/BBS)
	MODE_IMM_ZP                     // #$nn,$nn (TST)
	MODE_IMM_ZPX                    // #$nn,$nn,x
	MODE_IMM_ABS                    // #$nn,$nnnn
	MODE_IMM_ABSX                   // #$nn,$nnnn,x
	MODE_BLOCK                      // $ssss,$dddd,$llll (block transfers)
	kMODE_MAX
)

var modeNames = [kMODE_MAX]string{
	"IMP", "ACC", "IMM", "ZPG", "ZPX", "ZPY", "ZPI", "ZXI", "ZIY",
	"ABS", "ABX", "ABY", "ABI", "AXI", "REL", "ZRL", "IZP", "IZX",
	"IAB", "IAX", "BLK",
}

func (m Mode) String() string {
	if m < MODE_IMPLIED || m >= kMODE_MAX {
		return fmt.Sprintf("MODE(%d)", int(m))
	}
	return modeNames[m]
}

// Len returns the instruction length in bytes (including the opcode) for the mode.
func (m Mode) Len() int {
	switch m {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 1
	case MODE_IMMEDIATE, MODE_ZP, MODE_ZPX, MODE_ZPY, MODE_ZP_INDIRECT, MODE_ZPX_INDIRECT, MODE_ZP_INDIRECTY, MODE_RELATIVE:
		return 2
	case MODE_ABSOLUTE, MODE_ABSOLUTEX, MODE_ABSOLUTEY, MODE_ABS_INDIRECT, MODE_ABSX_INDIRECT, MODE_ZP_RELATIVE, MODE_IMM_ZP, MODE_IMM_ZPX:
		return 3
	case MODE_IMM_ABS, MODE_IMM_ABSX:
		return 4
	case MODE_BLOCK:
		return 7
	}
	return 1
}

// operand is a resolved addressing mode. Either an immediate value or
// an effective logical address.
type operand struct {
	imm  bool
	val  uint8
	addr uint16
}

// resolve fetches the operand bytes for o and computes the effective
// address, performing every access (and internal cycle) that involves.
func (p *Chip) resolve(o Opcode) (operand, error) {
	switch o.Mode {
	case MODE_IMMEDIATE:
		return operand{imm: true, val: p.fetch()}, nil
	case MODE_ZP:
		return operand{addr: ZP_START + uint16(p.fetch())}, nil
	case MODE_ZPX:
		return operand{addr: ZP_START + uint16(p.fetch()+p.X)}, nil
	case MODE_ZPY:
		return operand{addr: ZP_START + uint16(p.fetch()+p.Y)}, nil
	case MODE_ZP_INDIRECT:
		return operand{addr: p.zpPointer(p.fetch())}, nil
	case MODE_ZPX_INDIRECT:
		return operand{addr: p.zpPointer(p.fetch() + p.X)}, nil
	case MODE_ZP_INDIRECTY:
		return operand{addr: p.zpPointer(p.fetch()) + uint16(p.Y)}, nil
	case MODE_ABSOLUTE:
		return operand{addr: p.fetch16()}, nil
	case MODE_ABSOLUTEX:
		return operand{addr: p.fetch16() + uint16(p.X)}, nil
	case MODE_ABSOLUTEY:
		return operand{addr: p.fetch16() + uint16(p.Y)}, nil
	}
	return operand{}, InvalidMode{Mode: o.Mode, Opcode: o.Op, PC: p.InstrPC, Cycles: p.clk.Counter}
}

// zpPointer loads the little endian pointer at zp. The high byte
// wraps within the zero page.
func (p *Chip) zpPointer(zp uint8) uint16 {
	lo := p.bus.Read(ZP_START + uint16(zp))
	hi := p.bus.Read(ZP_START + uint16(zp+1))
	p.bus.Idle()
	return uint16(hi)<<8 | uint16(lo)
}

// readOperand returns the value of a resolved operand. Memory operands
// take an internal cycle before the access.
func (p *Chip) readOperand(o operand) uint8 {
	if o.imm {
		p.log.Info("AdrRead IMM %.2X", o.val)
		return o.val
	}
	p.bus.Idle()
	v := p.bus.Read(o.addr)
	p.log.Info("AdrRead %.4X = %.2X", o.addr, v)
	return v
}

// writeOperand stores val through a resolved operand. The chip reads the
// destination before writing it.
func (p *Chip) writeOperand(op Opcode, o operand, val uint8) error {
	if o.imm {
		return ImmediateWrite{Opcode: op.Op, PC: p.InstrPC}
	}
	p.bus.Dummy(o.addr)
	p.bus.Write(o.addr, val)
	p.log.Info("AdrWrite %.4X = %.2X", o.addr, val)
	return nil
}
