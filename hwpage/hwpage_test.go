package hwpage

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/irq"
	"github.com/jmchacon/pce/timer"
)

type halter struct {
	halted bool
}

func (h *halter) Halt() { h.halted = true }

// regs records register traffic for a VDC/VCE stand-in.
type regs struct {
	writes map[uint16]uint8
	reads  []uint16
}

func (r *regs) Read(reg uint16) uint8 {
	r.reads = append(r.reads, reg)
	return uint8(0x10 + reg)
}

func (r *regs) Write(reg uint16, val uint8) {
	r.writes[reg] = val
}

type port struct {
	val uint8
}

func (p *port) Input() uint8 { return p.val }

func setup(t *testing.T, d *ChipDef) (*Chip, *halter, *dbg.Recorder) {
	h := &halter{}
	r := dbg.NewRecorder(0)
	if d == nil {
		d = &ChipDef{}
	}
	d.Halter = h
	d.Log = r
	c, err := Init(d)
	if err != nil {
		t.Fatalf("can't init: %v", err)
	}
	return c, h, r
}

func TestInit(t *testing.T) {
	if _, err := Init(&ChipDef{}); err == nil {
		t.Error("no error without a Halter")
	}
	if _, err := Init(nil); err == nil {
		t.Error("no error with nil def")
	}
}

func TestMirroring(t *testing.T) {
	vdc := &regs{writes: make(map[uint16]uint8)}
	vce := &regs{writes: make(map[uint16]uint8)}
	c, _, _ := setup(t, &ChipDef{VDC: vdc, VCE: vce})

	// Every VDC address lands on one of 4 registers and every VCE address on one of 8.
	for a := uint16(0x0000); a < 0x0400; a++ {
		if got, want := c.Read(a), uint8(0x10+a%4); got != want {
			t.Fatalf("VDC read %.4X: got %.2X want %.2X", a, got, want)
		}
	}
	for a := uint16(0x0400); a < 0x0800; a++ {
		if got, want := c.Read(a), uint8(0x10+a%8); got != want {
			t.Fatalf("VCE read %.4X: got %.2X want %.2X", a, got, want)
		}
	}
	c.Write(0x03FE, 0xAB)
	c.Write(0x07FD, 0xCD)
	if diff := deep.Equal(vdc.writes, map[uint16]uint8{2: 0xAB}); diff != nil {
		t.Errorf("bad VDC writes: %v", diff)
	}
	if diff := deep.Equal(vce.writes, map[uint16]uint8{5: 0xCD}); diff != nil {
		t.Errorf("bad VCE writes: %v", diff)
	}
	if got, want := c.Buffer(), uint8(0x00); got != want {
		t.Errorf("VDC/VCE writes touched the buffer: got %.2X want %.2X", got, want)
	}
}

func TestTimerRegisters(t *testing.T) {
	c, _, _ := setup(t, nil)
	// Mirrored through the whole region.
	c.Write(0x0FFE, 0x85)
	if got, want := c.Timer().Reload(), uint8(0x06); got != want {
		t.Fatalf("bad reload: got %.2X want %.2X - %s", got, want, spew.Sdump(c.Timer()))
	}
	c.Write(0x0C01, 0x01)
	if !c.Timer().Enabled() {
		t.Fatal("timer not enabled")
	}
	// Buffer holds the last write ($01) so bit 7 is clear.
	if got, want := c.Read(0x0C00), uint8(0x06); got != want {
		t.Errorf("bad counter read: got %.2X want %.2X", got, want)
	}
	if got, want := c.Read(0x0C03), uint8(0x01); got != want {
		t.Errorf("bad control read: got %.2X want %.2X", got, want)
	}
	// Any write to the buffer range (here the PSG) sets the high bit source.
	c.Write(0x0800, 0xF0)
	if got, want := c.Read(0x0C00), uint8(0x86); got != want {
		t.Errorf("bad counter read with buffer: got %.2X want %.2X", got, want)
	}
	if got, want := c.Read(0x0C01), uint8(0x81); got != want {
		t.Errorf("bad control read with buffer: got %.2X want %.2X", got, want)
	}
}

func TestInterruptRegisters(t *testing.T) {
	c, _, _ := setup(t, nil)
	c.Write(0x1402, 0xFD)
	if got, want := c.Interrupts().Enabled(), uint8(0x05); got != want {
		t.Errorf("bad enabled: got %.2X want %.2X", got, want)
	}
	c.SetInterrupt(irq.IRQ2)
	c.SetInterrupt(irq.IRQ1)
	// Buffer is $FD from the write above.
	got := []uint8{c.Read(0x1402), c.Read(0x1403), c.Read(0x1400), c.Read(0x17FF)}
	want := []uint8{0xFD, 0xFB, 0xFD, 0xFB}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("bad interrupt reads: %v", diff)
	}
	if _, ok := c.Interrupts().Raised(); !ok {
		t.Errorf("IRQ2 should be raised: %s", spew.Sdump(c.Interrupts()))
	}
	c.Write(0x1403, 0x00)
	if got := c.Interrupts().Pending(); got != 0 {
		t.Errorf("ack didn't clear pending: %.2X", got)
	}
}

func TestBufferRange(t *testing.T) {
	tests := []struct {
		addr   uint16
		change bool
	}{
		{0x07FF, false},
		{0x0800, true},
		{0x1000, true},
		{0x17FF, true},
		{0x1800, false},
		{0x1FFF, false},
	}
	for _, test := range tests {
		c, _, _ := setup(t, nil)
		c.Write(test.addr, 0x5A)
		if got := c.Buffer() == 0x5A; got != test.change {
			t.Errorf("%.4X: buffer changed %t want %t", test.addr, got, test.change)
		}
	}
}

func TestUnimplemented(t *testing.T) {
	c, h, r := setup(t, nil)
	for _, a := range []uint16{0x0000, 0x0400, 0x0800, 0x1000, 0x1800, 0x1C00} {
		if got, want := c.Read(a), Fill; got != want {
			t.Errorf("%.4X: got %.2X want %.2X", a, got, want)
		}
		c.Write(a, 0x00)
	}
	if h.halted {
		t.Fatal("unimplemented region halted the clock")
	}
	if got, want := r.Count(dbg.LevelErr), 12; got != want {
		t.Errorf("bad not implemented count: got %d want %d - %v", got, want, r.Entries())
	}
	if got := r.Count(dbg.LevelFail); got != 0 {
		t.Errorf("unimplemented access was fatal: %v", r.Entries())
	}
}

func TestInvalidSubpage(t *testing.T) {
	c, h, r := setup(t, nil)
	if got, want := c.Read(0x2000), Fill; got != want {
		t.Errorf("got %.2X want %.2X", got, want)
	}
	if !h.halted {
		t.Fatal("invalid decode didn't halt")
	}
	c.Write(0xFFFF, 0x12)
	if got, want := r.Count(dbg.LevelFail), 2; got != want {
		t.Errorf("bad fail count: got %d want %d", got, want)
	}
	if got := c.Buffer(); got != 0 {
		t.Errorf("invalid write changed buffer: %.2X", got)
	}
}

func TestPort(t *testing.T) {
	p := &port{val: 0xB1}
	c, _, r := setup(t, &ChipDef{Port: p})
	if got, want := c.Read(0x13FF), uint8(0xB1); got != want {
		t.Errorf("bad port read: got %.2X want %.2X", got, want)
	}
	c.Write(0x1000, 0x03)
	if got, want := c.IO().Output(), uint8(0x03); got != want {
		t.Errorf("bad port output: got %.2X want %.2X", got, want)
	}
	if got, want := c.Buffer(), uint8(0x03); got != want {
		t.Errorf("port write not buffered: got %.2X want %.2X", got, want)
	}
	if n := r.Count(dbg.LevelErr); n != 0 {
		t.Errorf("port access logged errors: %v", r.Entries())
	}
}

func TestQuiet(t *testing.T) {
	vdc := &regs{writes: make(map[uint16]uint8)}
	c, _, r := setup(t, &ChipDef{VDC: vdc})
	c.Write(0x0C00, 0x10)
	c.SetQuiet(true)
	if got, want := c.Read(0x0000), Fill; got != want {
		t.Errorf("quiet VDC read: got %.2X want %.2X", got, want)
	}
	if got, want := c.Read(0x1800), Fill; got != want {
		t.Errorf("quiet CD read: got %.2X want %.2X", got, want)
	}
	if got, want := c.Read(0x0C01), uint8(0x00); got != want {
		t.Errorf("quiet timer read: got %.2X want %.2X", got, want)
	}
	c.SetQuiet(false)
	if len(vdc.reads) != 0 {
		t.Errorf("quiet read reached the VDC: %v", vdc.reads)
	}
	if len(r.Entries()) != 0 {
		t.Errorf("quiet read logged: %v", r.Entries())
	}
}

func TestOnTick(t *testing.T) {
	c, _, r := setup(t, nil)
	c.Write(0x1402, 0x04)
	c.Write(0x0C00, 0x00)
	c.Write(0x0C01, 0x01)
	var counter uint64
	step := func() {
		for i := 0; i < timer.Quantum*timer.Divider; i++ {
			counter++
			c.OnTick(counter)
		}
	}
	step()
	if got, want := c.Timer().Current(), uint8(0); got != want {
		t.Fatalf("bad count: got %d want %d", got, want)
	}
	if _, ok := c.Interrupts().Raised(); ok {
		t.Fatal("raised before underflow")
	}
	step()
	if got, want := c.Timer().Current(), uint8(1); got != want {
		t.Fatalf("bad count after wrap: got %d want %d", got, want)
	}
	l, ok := c.Interrupts().Raised()
	if !ok || l != irq.Timer {
		t.Errorf("timer line not raised: %v %t", l, ok)
	}
	if got, want := r.Count(dbg.LevelInfo), 2; got != want {
		t.Errorf("bad tick observations: got %d want %d", got, want)
	}
}
