// Package functionality does basic end-end verification
// of the HuC6280 core running in a full machine
package functionality

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmchacon/pce/bin"
	"github.com/jmchacon/pce/bus"
	"github.com/jmchacon/pce/cpu"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/pce"
)

// sled returns a bank of fill with halt at the given offset.
func sled(fill uint8, halt uint8, at int) *bin.Image {
	img := bin.New(bin.BankSize)
	for i := range img.Bytes() {
		img.Bytes()[i] = fill
	}
	img.Set(uint32(at), halt)
	return img
}

func TestNOP(t *testing.T) {
	tests := []struct {
		name  string
		setup []uint8
		fast  bool
		at    int
	}{
		{
			name: "slow NOP - 0xFF halt",
			at:   0x100,
		},
		{
			name:  "fast NOP - 0xFF halt",
			setup: []uint8{0xD4}, // CSH
			fast:  true,
			at:    0x1000,
		},
		{
			name: "slow NOP - end of bank",
			at:   0x1FF0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			img := sled(0xEA, 0xFF, test.at)
			copy(img.Bytes(), test.setup)
			r := dbg.NewRecorder(0)
			p, err := pce.Init(&pce.PCEDef{Rom: img, Log: r})
			if err != nil {
				t.Fatalf("can't init: %v", err)
			}
			err = p.Run()
			var unk cpu.UnknownOpcode
			if !errors.As(err, &unk) {
				t.Fatalf("didn't halt on unknown opcode: %v", err)
			}
			if got, want := unk.PC, cpu.START_PC+uint16(test.at); got != want {
				t.Errorf("halted at wrong PC: got %.4X want %.4X - %s", got, want, spew.Sdump(p.CPU()))
			}
			// Every NOP is 2 cycles. Setup opcodes run in slow mode.
			nops := uint64(test.at - len(test.setup))
			per := uint64(bus.TicksSlow)
			if test.fast {
				per = bus.TicksFast
			}
			// CSH is 2 slow cycles and the faulting fetch is 1.
			want := uint64(len(test.setup))*2*bus.TicksSlow + nops*2*per + per
			if got := p.Clock().Counter; got != want {
				t.Errorf("bad ticks: got %d want %d", got, want)
			}
			if got := r.Count(dbg.LevelWarn); got != 0 {
				t.Errorf("cycle mismatches: %v", r.Entries())
			}
			if got, want := r.Count(dbg.LevelFail), 1; got != want {
				t.Errorf("bad fail count: got %d want %d", got, want)
			}
		})
	}
}
