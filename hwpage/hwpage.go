// Package hwpage implements the HuC6280 hardware page which is mapped
// at physical bank 0xFF. The 8k page is split into 1k regions each with
// their own mirroring (n = unique bytes before repeating):
//
//   $0000:$03FF[4] VDC
//   $0400:$07FF[8] VCE
//   $0800:$0BFF[1] PSG
//   $0C00:$0FFF[2] Timer
//   $1000:$13FF[1] I/O port
//   $1400:$17FF[4] Interrupt control
//   $1800:$1BFF[1] CD-ROM (returns $FF)
//   $1C00:$1FFF[1] Returns $FF
//
// The last byte written anywhere in $0800:$17FF is held in an internal
// buffer and shows up in the undriven bits of timer/interrupt reads.
package hwpage

import (
	"errors"
	"fmt"

	"github.com/jmchacon/pce/clock"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/io"
	"github.com/jmchacon/pce/irq"
	"github.com/jmchacon/pce/memory"
	"github.com/jmchacon/pce/timer"
)

var (
	_ = clock.Observer(&Chip{})
	_ = io.PortOut8(&out{})
)

// Sub is a region of the hardware page.
type Sub int

const (
	SUB_VDC Sub = iota
	SUB_VCE
	SUB_PSG
	SUB_TIMER
	SUB_IO
	SUB_ICTL
	SUB_CDROM
	SUB_FF
	kSUB_MAX
)

var subNames = [kSUB_MAX]string{"VDC", "VCE", "PSG", "TIMER", "IO", "ICTL", "CDROM", "FF"}

func (s Sub) String() string {
	if s < SUB_VDC || s >= kSUB_MAX {
		return fmt.Sprintf("SUB(%d)", int(s))
	}
	return subNames[s]
}

// mirrorEvery is the number of unique addresses in each region.
var mirrorEvery = [kSUB_MAX]uint16{
	4, // VDC
	8, // VCE
	1, // PSG
	2, // TIMER
	1, // IO
	4, // ICTL
	1, // CDROM
	1, // FF
}

const (
	kSUB_SHIFT = 10

	kBUFFER_START = uint16(0x0800)
	kBUFFER_END   = uint16(0x17FF)

	kTIMER_COUNTER = uint16(0x00)
	kTIMER_CONTROL = uint16(0x01)
	kICTL_ENABLE   = uint16(0x02)
	kICTL_PENDING  = uint16(0x03)

	kMASK_TIMER_HIGH = uint8(0x80)
	kMASK_ICTL       = uint8(0x07)

	// Fill is read from anything that isn't decoded.
	Fill = uint8(0xFF)
)

// Halter is the part of the clock the page needs to stop emulation on a decode fault.
type Halter interface {
	Halt()
}

// out latches writes to the I/O port.
type out struct {
	data uint8
}

// Output implements io.PortOut8.
func (o *out) Output() uint8 {
	return o.data
}

// Chip is the hardware page and the devices it owns (timer and interrupt controller).
type Chip struct {
	log    dbg.Sink
	halter Halter
	vdc    memory.Register
	vce    memory.Register
	port   io.PortIn8
	output *out
	buffer uint8 // Last byte written to $0800:$17FF.
	ictl   *irq.Controller
	timer  *timer.Chip
	quiet  bool
}

// ChipDef defines the collaborators of the hardware page.
type ChipDef struct {
	// VDC and VCE are register targets for their regions. If nil the region
	// reads $FF and logs as unimplemented.
	VDC memory.Register
	VCE memory.Register
	// Port if non-nil supplies input for the I/O region and latches its output.
	Port io.PortIn8
	// Halter is stopped on an invalid region decode. Required.
	Halter Halter
	// Log receives diagnostics. Defaults to dbg.Discard.
	Log dbg.Sink
}

// Init returns a powered on hardware page.
func Init(d *ChipDef) (*Chip, error) {
	if d == nil || d.Halter == nil {
		return nil, errors.New("Halter must be non-nil in def")
	}
	c := &Chip{
		log:    d.Log,
		halter: d.Halter,
		vdc:    d.VDC,
		vce:    d.VCE,
		port:   d.Port,
		output: &out{},
		ictl:   &irq.Controller{},
		timer:  timer.New(),
	}
	if c.log == nil {
		c.log = dbg.Discard
	}
	return c, nil
}

// Interrupts returns the interrupt controller which the CPU polls.
func (c *Chip) Interrupts() *irq.Controller {
	return c.ictl
}

// Timer returns the timer.
func (c *Chip) Timer() *timer.Chip {
	return c.timer
}

// IO returns the I/O port output latch.
func (c *Chip) IO() io.PortOut8 {
	return c.output
}

// Buffer returns the last byte written to the I/O buffer range.
func (c *Chip) Buffer() uint8 {
	return c.buffer
}

// SetInterrupt raises l on the interrupt controller. Used by devices outside the page (VDC, external IRQ2).
func (c *Chip) SetInterrupt(l irq.Line) {
	c.ictl.Raise(l)
}

// SetQuiet disables all side effects (device access, diagnostics) for reads. Used for debugger style peeks.
func (c *Chip) SetQuiet(q bool) {
	c.quiet = q
}

func (c *Chip) decode(addr uint16, op string) (Sub, uint16, bool) {
	sub := Sub(addr >> kSUB_SHIFT)
	if sub >= kSUB_MAX {
		c.log.Fail("HwPage: %s on invalid subpage %d addr %.4X", op, int(sub), addr)
		c.halter.Halt()
		return sub, 0, false
	}
	return sub, addr % mirrorEvery[sub], true
}

// Read returns the value of the page at offset addr ($0000-$1FFF).
func (c *Chip) Read(addr uint16) uint8 {
	if c.quiet {
		return c.peek(addr)
	}
	sub, reg, ok := c.decode(addr, "Read")
	if !ok {
		return Fill
	}

	switch sub {
	case SUB_VDC:
		if c.vdc != nil {
			return c.vdc.Read(reg)
		}
	case SUB_VCE:
		if c.vce != nil {
			return c.vce.Read(reg)
		}
	case SUB_TIMER, SUB_ICTL:
		return c.register(sub, reg)
	case SUB_IO:
		if c.port != nil {
			return c.port.Input()
		}
	}
	c.log.Err("HwPage %s Read: not implemented (%.4X)", sub, addr)
	return Fill
}

// register decodes the timer and interrupt registers which have no read side effects.
func (c *Chip) register(sub Sub, reg uint16) uint8 {
	switch sub {
	case SUB_TIMER:
		if reg == kTIMER_COUNTER {
			return (c.timer.Current() &^ kMASK_TIMER_HIGH) | (c.buffer & kMASK_TIMER_HIGH)
		}
		var en uint8
		if c.timer.Enabled() {
			en = 1
		}
		return en | (c.buffer & kMASK_TIMER_HIGH)
	case SUB_ICTL:
		switch reg {
		case kICTL_ENABLE:
			return (c.ictl.Enabled() & kMASK_ICTL) | (c.buffer &^ kMASK_ICTL)
		case kICTL_PENDING:
			return (c.ictl.Pending() & kMASK_ICTL) | (c.buffer &^ kMASK_ICTL)
		}
		return c.buffer
	}
	return Fill
}

func (c *Chip) peek(addr uint16) uint8 {
	sub := Sub(addr >> kSUB_SHIFT)
	if sub == SUB_TIMER || sub == SUB_ICTL {
		return c.register(sub, addr%mirrorEvery[sub])
	}
	return Fill
}

// Write stores val at offset addr ($0000-$1FFF).
func (c *Chip) Write(addr uint16, val uint8) {
	sub, reg, ok := c.decode(addr, "Write")
	if !ok {
		return
	}
	if addr >= kBUFFER_START && addr <= kBUFFER_END {
		c.buffer = val
	}

	switch sub {
	case SUB_VDC:
		if c.vdc != nil {
			c.vdc.Write(reg, val)
			return
		}
	case SUB_VCE:
		if c.vce != nil {
			c.vce.Write(reg, val)
			return
		}
	case SUB_TIMER:
		switch reg {
		case kTIMER_COUNTER:
			c.timer.SetReload(val)
		case kTIMER_CONTROL:
			c.timer.SetEnabled(val&1 == 1)
		}
		return
	case SUB_ICTL:
		switch reg {
		case kICTL_ENABLE:
			c.ictl.SetEnabled(val)
		case kICTL_PENDING:
			c.ictl.Ack()
		}
		return
	case SUB_IO:
		if c.port != nil {
			c.output.data = val
			return
		}
	}
	c.log.Err("HwPage %s Write: not implemented (%.4X=%.2X)", sub, addr, val)
}

// OnTick implements clock.Observer and advances the timer.
func (c *Chip) OnTick(counter uint64) {
	tick, underflow := c.timer.Cycle(counter)
	if !tick {
		return
	}
	c.log.Info("Timer tick!")
	if underflow {
		c.ictl.Raise(irq.Timer)
	}
}
