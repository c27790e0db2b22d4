// Package bus implements the HuC6280 memory map. The CPU sees a 16 bit
// logical address space split into 8 windows of 8k. Each window is mapped
// through a memory page register (MPR) onto a 21 bit physical bus made of
// 256 banks of 8k:
//
//   $00:$7F ROM
//   $80:$F7 Unused (ret $FF)
//   $F8:$FB RAM (only 1 bank, $2000 bytes, rest is mirrored)
//   $FC:$FE Unused (ret $FF)
//   $FF:$FF Hardware page (see hwpage)
//
// The bus is also the timing authority for memory accesses. Every access
// costs exactly one CPU cycle in clock ticks and accesses to the hardware
// page add one extra cycle of wait state.
package bus

import (
	"errors"

	"github.com/jmchacon/pce/clock"
	"github.com/jmchacon/pce/memory"
)

var _ = memory.Bank(&physical{})

const (
	BANK_SHIFT = 13
	BANK_MASK  = uint16(0x1FFF)

	ROM_START   = uint8(0x00)
	ROM_END     = uint8(0x7F)
	RAM_START   = uint8(0xF8)
	RAM_END     = uint8(0xFB)
	HWPAGE_BANK = uint8(0xFF)

	// RAMSize is the amount of work RAM.
	RAMSize = 0x2000

	// TicksFast is the number of master clock ticks per CPU cycle at 7.16MHz.
	TicksFast = 3
	// TicksSlow is the number of master clock ticks per CPU cycle at 1.79MHz.
	TicksSlow = 12

	// Fill is read from open bus.
	Fill = uint8(0xFF)

	kMASK_PHYS = uint32(0x1FFFFF)
)

// Page is the hardware page as seen from the bus. addr is the offset within the bank.
type Page interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Quieter is implemented by pages which can disable read side effects.
type Quieter interface {
	SetQuiet(bool)
}

// Bus ties the MPRs, ROM, RAM and the hardware page together.
type Bus struct {
	mpr  [8]uint8
	clk  *clock.Clock
	rom  memory.Image
	ram  [RAMSize]uint8
	hw   Page
	fast bool
	phys *physical
}

// BusDef defines the pieces attached to the bus.
type BusDef struct {
	// Clock is ticked on every access. Required.
	Clock *clock.Clock
	// Rom backs banks $00-$7F. A nil Rom reads as $FF.
	Rom memory.Image
	// HwPage is bank $FF. A nil page reads as open bus.
	HwPage Page
}

// Init returns a bus with all MPRs at bank 0 running at the slow speed.
func Init(d *BusDef) (*Bus, error) {
	if d == nil || d.Clock == nil {
		return nil, errors.New("Clock must be non-nil in def")
	}
	b := &Bus{
		clk: d.Clock,
		rom: d.Rom,
		hw:  d.HwPage,
	}
	b.phys = &physical{b}
	return b, nil
}

// MPR returns the bank selected for window i (0-7).
func (b *Bus) MPR(i int) uint8 {
	return b.mpr[i&7]
}

// SetMPR selects bank val for window i (0-7).
func (b *Bus) SetMPR(i int, val uint8) {
	b.mpr[i&7] = val
}

// SetFast selects the 7.16MHz (true) or 1.79MHz (false) cycle length.
func (b *Bus) SetFast(fast bool) {
	b.fast = fast
}

// Fast reports the current speed.
func (b *Bus) Fast() bool {
	return b.fast
}

// TicksPerCycle returns the clock ticks one CPU cycle takes at the current speed.
func (b *Bus) TicksPerCycle() int {
	if b.fast {
		return TicksFast
	}
	return TicksSlow
}

// MapAddress converts a logical address into a 21 bit physical one.
func (b *Bus) MapAddress(addr uint16) uint32 {
	return uint32(b.mpr[addr>>BANK_SHIFT])<<BANK_SHIFT | uint32(addr&BANK_MASK)
}

// Read returns the byte at the logical address and spends one cycle.
func (b *Bus) Read(addr uint16) uint8 {
	return b.readPhysical(b.MapAddress(addr))
}

// Write stores val at the logical address and spends one cycle.
func (b *Bus) Write(addr uint16, val uint8) {
	b.writePhysical(b.MapAddress(addr), val)
}

// Idle spends one cycle without accessing anything.
func (b *Bus) Idle() {
	b.clk.Run(b.TicksPerCycle())
}

// Dummy performs a read cycle at addr and discards the value. Timing
// (including wait states) is the same as Read but device side effects
// are suppressed.
func (b *Bus) Dummy(addr uint16) {
	if q, ok := b.hw.(Quieter); ok {
		q.SetQuiet(true)
		defer q.SetQuiet(false)
	}
	b.Read(addr)
}

// Peek returns the byte at the logical address without advancing the clock
// or triggering device side effects.
func (b *Bus) Peek(addr uint16) uint8 {
	var val uint8
	b.clk.Suppress(func() {
		if q, ok := b.hw.(Quieter); ok {
			q.SetQuiet(true)
			defer q.SetQuiet(false)
		}
		val = b.Read(addr)
	})
	return val
}

// Physical returns a memory.Bank addressing the 21 bit bus directly.
func (b *Bus) Physical() memory.Bank {
	return b.phys
}

func split(addr uint32) (uint8, uint16) {
	addr &= kMASK_PHYS
	return uint8(addr >> BANK_SHIFT), uint16(addr) & BANK_MASK
}

func (b *Bus) readPhysical(addr uint32) uint8 {
	bank, off := split(addr)
	val := Fill
	switch {
	case bank <= ROM_END:
		if b.rom != nil {
			val = b.rom.Get(addr & kMASK_PHYS)
		}
	case bank >= RAM_START && bank <= RAM_END:
		val = b.ram[off]
	case bank == HWPAGE_BANK:
		if b.hw != nil {
			b.clk.Stall(b.TicksPerCycle())
			val = b.hw.Read(off)
		}
	}
	b.clk.Run(b.TicksPerCycle())
	return val
}

func (b *Bus) writePhysical(addr uint32, val uint8) {
	bank, off := split(addr)
	switch {
	case bank <= ROM_END:
		// ROM. Writes are dropped.
	case bank >= RAM_START && bank <= RAM_END:
		b.ram[off] = val
	case bank == HWPAGE_BANK:
		if b.hw != nil {
			b.clk.Stall(b.TicksPerCycle())
			b.hw.Write(off, val)
		}
	}
	b.clk.Run(b.TicksPerCycle())
}

// physical is used as an abstraction for getting at the 21 bit bus
// through a memory.Bank interface.
type physical struct {
	b *Bus
}

// Read implements memory.Bank.
func (p *physical) Read(addr uint32) uint8 {
	return p.b.readPhysical(addr)
}

// Write implements memory.Bank.
func (p *physical) Write(addr uint32, val uint8) {
	p.b.writePhysical(addr, val)
}
