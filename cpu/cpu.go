// Package cpu defines the HuC6280 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation. The HuC6280 is a 65C02 derivative with an
// on chip MMU (the MPRs, owned by the bus), a selectable
// 7.16MHz/1.79MHz clock and block transfer instructions.
//
// Execution is instruction stepped. All timing comes from
// memory accesses through the bus so each opcode handler
// performs exactly the accesses (including dummy ones) the
// real chip does.
package cpu

import (
	"errors"
	"fmt"

	"github.com/jmchacon/pce/bus"
	"github.com/jmchacon/pce/clock"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/irq"
)

var _ = irq.Receiver(&Chip{})

const (
	IRQ2_VECTOR  = uint16(0xFFF6) // Also used by BRK.
	IRQ1_VECTOR  = uint16(0xFFF8)
	TIMER_VECTOR = uint16(0xFFFA)
	NMI_VECTOR   = uint16(0xFFFC)
	RESET_VECTOR = uint16(0xFFFE)

	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_MEMORY    = uint8(0x20) // T flag. Cleared before every instruction.
	P_BREAK     = uint8(0x10)
	P_DECIMAL   = uint8(0x08)
	P_INTERRUPT = uint8(0x04)
	P_ZERO      = uint8(0x02)
	P_CARRY     = uint8(0x01)

	// The zero page and stack live in the 2nd logical window (normally mapped to RAM).
	ZP_START    = uint16(0x2000)
	STACK_START = uint16(0x2100)

	// START_PC is the first PC on power on (the start of window 7).
	START_PC = uint16(7 << bus.BANK_SHIFT)

	// kSLOW_FACTOR is how many 7.16MHz cycles one 1.79MHz cycle takes.
	kSLOW_FACTOR = 4
)

// Bus is the view of the memory map the CPU needs. Addresses are logical.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	// Dummy is a read cycle without device side effects.
	Dummy(addr uint16)
	// Idle spends one cycle without a memory access.
	Idle()
	MPR(i int) uint8
	SetMPR(i int, val uint8)
	// SetFast changes the cycle length of every later access.
	SetFast(fast bool)
}

// Chip is the HuC6280 register state plus references to the machine it runs in.
type Chip struct {
	A       uint8  // Accumulator register
	X       uint8  // X register
	Y       uint8  // Y register
	SP      uint8  // Stack pointer (offset into STACK_START)
	P       uint8  // Processor status register
	PC      uint16 // Program counter
	InstrPC uint16 // PC of the instruction currently executing.

	fast bool // Mirrors the bus speed. Only changed through setFast.

	bus Bus
	clk *clock.Clock
	log dbg.Sink
	irq irq.Sender
}

// ChipDef defines everything the CPU is attached to.
type ChipDef struct {
	// Bus is the memory map. Required.
	Bus Bus
	// Clock is the master clock the bus ticks. Required.
	Clock *clock.Clock
	// Log receives diagnostics. Defaults to dbg.Discard.
	Log dbg.Sink
	// Irq if non-nil is polled at every instruction boundary.
	Irq irq.Sender
}

// A few custom error types to distinguish why the CPU stopped

// UnknownOpcode represents an opcode the emulator doesn't decode.
type UnknownOpcode struct {
	Opcode uint8
	PC     uint16
	Cycles uint64
}

// Error implements the interface for error types.
func (e UnknownOpcode) Error() string {
	return fmt.Sprintf("unk opcode %.2X PC=%.4X CYC=%.8X", e.Opcode, e.PC, e.Cycles)
}

// InvalidMode represents an addressing mode that can't produce an operand.
type InvalidMode struct {
	Mode   Mode
	Opcode uint8
	PC     uint16
	Cycles uint64
}

// Error implements the interface for error types.
func (e InvalidMode) Error() string {
	return fmt.Sprintf("operand for %s adr mode (opcode %.2X) PC=%.4X CYC=%.8X", e.Mode, e.Opcode, e.PC, e.Cycles)
}

// ImmediateWrite represents an attempt to store into an immediate operand.
type ImmediateWrite struct {
	Opcode uint8
	PC     uint16
}

// Error implements the interface for error types.
func (e ImmediateWrite) Error() string {
	return fmt.Sprintf("write to IMM adr mode (opcode %.2X) PC=%.4X", e.Opcode, e.PC)
}

// Init will create a new CPU attached as described and return it in powered on state.
func Init(d *ChipDef) (*Chip, error) {
	if d == nil || d.Bus == nil {
		return nil, errors.New("Bus must be non-nil in def")
	}
	if d.Clock == nil {
		return nil, errors.New("Clock must be non-nil in def")
	}
	p := &Chip{
		bus: d.Bus,
		clk: d.Clock,
		log: d.Log,
		irq: d.Irq,
	}
	if p.log == nil {
		p.log = dbg.Discard
	}
	p.PowerOn()
	return p, nil
}

// Install implements irq.Receiver.
func (p *Chip) Install(s irq.Sender) {
	p.irq = s
}

// PowerOn sets registers to their power on state. Interrupts are disabled,
// the CPU runs slow and execution starts at the beginning of window 7.
func (p *Chip) PowerOn() {
	p.A = 0
	p.X = 0
	p.Y = 0
	p.SP = 0
	p.P = P_INTERRUPT | P_BREAK
	p.PC = START_PC
	p.InstrPC = p.PC
	p.setFast(false)
}

// Reset maps bank 0 into window 7 and loads the PC from the reset vector.
// Registers other than P are untouched.
func (p *Chip) Reset() {
	p.P |= P_INTERRUPT
	p.P &^= P_DECIMAL | P_MEMORY
	p.setFast(false)
	p.bus.SetMPR(7, 0x00)
	p.PC = p.read16(RESET_VECTOR)
	p.InstrPC = p.PC
}

// MPR returns the bank selected for window i.
func (p *Chip) MPR(i int) uint8 {
	return p.bus.MPR(i)
}

// Fast returns true when the CPU runs at 7.16MHz and false at 1.79MHz.
// Only CSH, CSL, PowerOn and Reset change it.
func (p *Chip) Fast() bool {
	return p.fast
}

func (p *Chip) setFast(fast bool) {
	p.fast = fast
	p.bus.SetFast(fast)
}

// Run executes instructions until the clock is halted. If an instruction
// faults the clock is halted, the fault is reported once through the
// diagnostic sink and returned. Nothing further is executed.
func (p *Chip) Run() error {
	for p.clk.IsRunning() {
		if err := p.Step(); err != nil {
			p.clk.Halt()
			p.log.Fail("CPU: %v", err)
			return err
		}
	}
	return nil
}

// Step executes one instruction or, if one is raised and not masked,
// takes an interrupt instead.
func (p *Chip) Step() error {
	if p.irq != nil && p.P&P_INTERRUPT == 0 {
		if l, ok := p.irq.Raised(); ok {
			p.interrupt(l)
			return nil
		}
	}

	p.InstrPC = p.PC
	pre := p.clk.Counter
	preExtra := p.clk.Extra()

	opc := p.fetch()
	o, ok := Lookup(opc)
	if !ok {
		return UnknownOpcode{Opcode: opc, PC: p.InstrPC, Cycles: pre}
	}
	p.log.Info("CPU: %s", o.Name)
	p.P &^= P_MEMORY
	if err := o.Handler(p, o); err != nil {
		return err
	}

	extra := p.clk.Extra() - preExtra
	p.clk.ResetExtra()
	consumed := (p.clk.Counter - pre - extra) / bus.TicksFast
	if o.Cycles != 0 {
		want := uint64(o.Cycles)
		if !p.fast {
			want *= kSLOW_FACTOR
		}
		if consumed != want {
			p.log.Warn("CPU: cyc mismatch %s (exp:%d,got:%d) PC=%.4X CYC=%.8X", o.Name, want, consumed, p.InstrPC, p.clk.Counter)
		}
	}
	return nil
}

// interrupt pushes PC and P and vectors through the handler for l.
func (p *Chip) interrupt(l irq.Line) {
	vec := IRQ2_VECTOR
	switch l {
	case irq.Timer:
		vec = TIMER_VECTOR
	case irq.IRQ1:
		vec = IRQ1_VECTOR
	}
	p.InstrPC = p.PC
	p.bus.Idle()
	p.bus.Idle()
	p.pushStack(uint8(p.PC >> 8))
	p.pushStack(uint8(p.PC & 0xFF))
	p.pushStack(p.P &^ P_BREAK)
	p.P |= P_INTERRUPT
	p.P &^= P_DECIMAL | P_MEMORY
	p.PC = p.read16(vec)
	p.log.Info("CPU: %s -> %.4X", l, p.PC)
	p.clk.ResetExtra()
}

// fetch returns the byte at PC and advances it.
func (p *Chip) fetch() uint8 {
	v := p.bus.Read(p.PC)
	p.PC++
	return v
}

// fetch16 returns the little endian word at PC and advances past it.
func (p *Chip) fetch16() uint16 {
	lo := p.fetch()
	hi := p.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (p *Chip) read16(addr uint16) uint16 {
	lo := p.bus.Read(addr)
	hi := p.bus.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// dummy performs the throw away read of the next opcode byte that
// single byte instructions do.
func (p *Chip) dummy() {
	p.bus.Dummy(p.PC)
}

func (p *Chip) zeroCheck(reg uint8) {
	p.P &^= P_ZERO
	if reg == 0 {
		p.P |= P_ZERO
	}
}

func (p *Chip) negativeCheck(reg uint8) {
	p.P &^= P_NEGATIVE
	if reg&P_NEGATIVE != 0 {
		p.P |= P_NEGATIVE
	}
}

// loadRegister stores val in reg and sets Z/N based on it.
func (p *Chip) loadRegister(reg *uint8, val uint8) {
	*reg = val
	p.zeroCheck(val)
	p.negativeCheck(val)
}

// pushStack does the dummy read the chip performs and then stores val.
func (p *Chip) pushStack(val uint8) {
	p.bus.Dummy(STACK_START + uint16(p.SP))
	p.bus.Write(STACK_START+uint16(p.SP), val)
	p.SP--
}

// popStack does the dummy read the chip performs and then loads the next value.
func (p *Chip) popStack() uint8 {
	p.bus.Dummy(STACK_START + uint16(p.SP+1))
	p.SP++
	return p.bus.Read(STACK_START + uint16(p.SP))
}

// readStack reads the current stack slot without moving SP.
func (p *Chip) readStack() uint8 {
	return p.bus.Read(STACK_START + uint16(p.SP))
}

// writeStack writes the current stack slot without moving SP.
func (p *Chip) writeStack(val uint8) {
	p.bus.Write(STACK_START+uint16(p.SP), val)
}
