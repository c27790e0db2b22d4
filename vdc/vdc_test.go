package vdc

import (
	"testing"

	"github.com/go-test/deep"
)

func setReg(c *Chip, r uint8, v uint16) {
	c.Write(REG_SEL, r)
	c.Write(DATA_LO, uint8(v))
	c.Write(DATA_HI, uint8(v>>8))
}

func TestVRAMWrite(t *testing.T) {
	tests := []struct {
		name string
		cr   uint16
		step uint16
	}{
		{"inc 1", 0x0000, 1},
		{"inc 32", 0x0800, 32},
		{"inc 64", 0x1000, 64},
		{"inc 128", 0x1800, 128},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Init(nil)
			setReg(c, CR, test.cr)
			setReg(c, MAWR, 0x0100)
			c.Write(REG_SEL, VRW)
			for i := uint16(0); i < 3; i++ {
				c.Write(DATA_LO, uint8(i))
				c.Write(DATA_HI, 0xA0)
			}
			var got []uint16
			for i := uint16(0); i < 3; i++ {
				got = append(got, c.VRAM(0x0100+i*test.step))
			}
			want := []uint16{0xA000, 0xA001, 0xA002}
			if diff := deep.Equal(got, want); diff != nil {
				t.Errorf("bad VRAM: %v", diff)
			}
			if got, want := c.Register(MAWR), 0x0100+3*test.step; got != want {
				t.Errorf("bad MAWR: got %.4X want %.4X", got, want)
			}
		})
	}
}

func TestVRAMRead(t *testing.T) {
	c := Init(nil)
	setReg(c, MAWR, 0x0010)
	setReg(c, VRW, 0x1234)
	setReg(c, VRW, 0x5678)
	setReg(c, MARR, 0x0010)
	c.Write(REG_SEL, VRW)
	got := []uint8{c.Read(DATA_LO), c.Read(DATA_HI), c.Read(DATA_LO), c.Read(DATA_HI)}
	want := []uint8{0x34, 0x12, 0x78, 0x56}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("bad VRAM reads: %v", diff)
	}
	if got, want := c.Register(MARR), uint16(0x0012); got != want {
		t.Errorf("bad MARR: got %.4X want %.4X", got, want)
	}
}

func TestUnhandled(t *testing.T) {
	c := Init(nil)
	c.Write(REG_SEL, 0x1F)
	c.Write(DATA_LO, 0x55)
	if got, want := c.Read(0x01), uint8(0xFF); got != want {
		t.Errorf("unused port: got %.2X want %.2X", got, want)
	}
	if got := c.Register(0x1F); got != 0 {
		t.Errorf("out of range register returned %.4X", got)
	}
}
