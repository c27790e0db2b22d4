// Package vdc implements the register interface of the HuC6270 video display
// controller. Register selection, the register file and VRAM transfers through
// MAWR/MARR are modeled. Nothing is rendered.
package vdc

import (
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/memory"
)

var _ = memory.Register(&Chip{})

// Port addresses (already mirrored to 4).
const (
	REG_SEL = uint16(0x00)
	DATA_LO = uint16(0x02)
	DATA_HI = uint16(0x03)
)

// Internal registers selected through REG_SEL.
const (
	MAWR = uint8(0x00) // Memory address write.
	MARR = uint8(0x01) // Memory address read.
	VRW  = uint8(0x02) // VRAM read/write data.
	CR   = uint8(0x05) // Control.
	RCR  = uint8(0x06) // Raster compare.
	MWR  = uint8(0x09) // Memory width.

	kREGS      = 0x14
	kMASK_REG  = uint8(0x1F)
	kVRAM_SIZE = 0x8000
)

// Chip is the display controller state.
type Chip struct {
	log    dbg.Sink
	sel    uint8
	regs   [kREGS]uint16
	read   uint16 // Read latch loaded from VRAM[MARR].
	status uint8
	vram   [kVRAM_SIZE]uint16
}

// Init returns a display controller logging to log (which may be nil).
func Init(log dbg.Sink) *Chip {
	if log == nil {
		log = dbg.Discard
	}
	return &Chip{log: log}
}

// increment returns the VRAM address step selected by CR bits 11-12.
func (c *Chip) increment() uint16 {
	switch (c.regs[CR] >> 11) & 3 {
	case 1:
		return 32
	case 2:
		return 64
	case 3:
		return 128
	}
	return 1
}

// Read implements memory.Register.
func (c *Chip) Read(reg uint16) uint8 {
	switch reg {
	case REG_SEL:
		return c.status
	case DATA_LO:
		if c.sel == VRW {
			return uint8(c.read)
		}
	case DATA_HI:
		if c.sel == VRW {
			v := uint8(c.read >> 8)
			c.regs[MARR] += c.increment()
			c.read = c.vram[c.regs[MARR]%kVRAM_SIZE]
			return v
		}
	}
	c.log.Info("VDC: Read from unhandled %d (reg %.2X)", reg, c.sel)
	return 0xFF
}

// Write implements memory.Register.
func (c *Chip) Write(reg uint16, val uint8) {
	switch reg {
	case REG_SEL:
		c.log.Info("VDC: Write to REG_SEL: $%.2X", val)
		c.sel = val & kMASK_REG
		return
	case DATA_LO, DATA_HI:
		if int(c.sel) >= kREGS {
			c.log.Info("VDC: Write to unhandled reg %.2X", c.sel)
			return
		}
		r := &c.regs[c.sel]
		if reg == DATA_LO {
			*r = (*r & 0xFF00) | uint16(val)
			return
		}
		*r = (*r & 0x00FF) | (uint16(val) << 8)
		switch c.sel {
		case VRW:
			c.vram[c.regs[MAWR]%kVRAM_SIZE] = *r
			c.regs[MAWR] += c.increment()
		case MARR:
			c.read = c.vram[*r%kVRAM_SIZE]
		}
		return
	}
	c.log.Info("VDC: Write to unhandled %d", reg)
}

// Register returns the value of internal register r.
func (c *Chip) Register(r uint8) uint16 {
	if int(r) >= kREGS {
		return 0
	}
	return c.regs[r]
}

// VRAM returns the word at addr.
func (c *Chip) VRAM(addr uint16) uint16 {
	return c.vram[addr%kVRAM_SIZE]
}
