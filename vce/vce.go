// Package vce implements the register interface of the HuC6260 video color
// encoder. Only the color table is modeled. It holds 512 9 bit entries
// (GGGRRRBBB) addressed through an auto incrementing address register.
package vce

import (
	"image"
	"image/color"

	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/memory"
	"golang.org/x/image/draw"
)

var _ = memory.Register(&Chip{})

const (
	CTRL           = uint16(0x00)
	COLTBL_ADDR_LO = uint16(0x02)
	COLTBL_ADDR_HI = uint16(0x03)
	COLTBL_DATA_LO = uint16(0x04)
	COLTBL_DATA_HI = uint16(0x05)

	// Colors is the number of color table entries.
	Colors = 512

	kMASK_ADDR  = uint16(0x1FF)
	kMASK_COLOR = uint16(0x1FF)
)

// Chip is the color encoder state.
type Chip struct {
	log   dbg.Sink
	ctrl  uint8
	addr  uint16
	table [Colors]uint16
}

// Init returns a color encoder logging to log (which may be nil).
func Init(log dbg.Sink) *Chip {
	if log == nil {
		log = dbg.Discard
	}
	return &Chip{log: log}
}

// Read implements memory.Register.
func (c *Chip) Read(reg uint16) uint8 {
	switch reg {
	case COLTBL_DATA_LO:
		return uint8(c.table[c.addr])
	case COLTBL_DATA_HI:
		v := uint8(c.table[c.addr]>>8) | 0xFE
		c.addr = (c.addr + 1) & kMASK_ADDR
		return v
	}
	c.log.Info("VCE: Read from unhandled %d", reg)
	return 0xFF
}

// Write implements memory.Register.
func (c *Chip) Write(reg uint16, val uint8) {
	switch reg {
	case CTRL:
		c.log.Info("VCE: Write to CTRL: $%.2X", val)
		c.ctrl = val
	case COLTBL_ADDR_LO:
		c.addr = (c.addr & 0x100) | uint16(val)
	case COLTBL_ADDR_HI:
		c.addr = (c.addr & 0x0FF) | (uint16(val&1) << 8)
	case COLTBL_DATA_LO:
		c.table[c.addr] = (c.table[c.addr] & 0x100) | uint16(val)
	case COLTBL_DATA_HI:
		c.table[c.addr] = ((c.table[c.addr] & 0x0FF) | (uint16(val&1) << 8)) & kMASK_COLOR
		c.addr = (c.addr + 1) & kMASK_ADDR
	default:
		c.log.Info("VCE: Write to unhandled %d", reg)
	}
}

// Entry returns the raw 9 bit color table entry at i.
func (c *Chip) Entry(i int) uint16 {
	return c.table[i&int(kMASK_ADDR)]
}

// RGBA converts a GGGRRRBBB entry into a color by scaling each 3 bit channel.
func RGBA(e uint16) color.RGBA {
	scale := func(v uint16) uint8 {
		return uint8((v & 7) * 255 / 7)
	}
	return color.RGBA{
		R: scale(e >> 3),
		G: scale(e >> 6),
		B: scale(e),
		A: 0xFF,
	}
}

// Palette returns the color table converted to RGBA.
func (c *Chip) Palette() color.Palette {
	p := make(color.Palette, Colors)
	for i, e := range c.table {
		p[i] = RGBA(e)
	}
	return p
}

// Swatch returns a 32x16 image with one pixel per color table entry.
func (c *Chip) Swatch() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for i, e := range c.table {
		img.SetRGBA(i%32, i/32, RGBA(e))
	}
	return img
}

// ScaledSwatch returns Swatch scaled up by scale (nearest neighbor) so each
// entry is a scale x scale block.
func (c *Chip) ScaledSwatch(scale int) *image.RGBA {
	src := c.Swatch()
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
