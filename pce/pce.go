// Package pce is the main logic for pulling together a PC Engine emulator.
// The actual chips are implemented in other packages and most the logic here is
// simply to wire them to the clock and the bus.
package pce

import (
	"errors"
	"fmt"

	"github.com/jmchacon/pce/bus"
	"github.com/jmchacon/pce/clock"
	"github.com/jmchacon/pce/cpu"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/disassemble"
	"github.com/jmchacon/pce/hwpage"
	"github.com/jmchacon/pce/io"
	"github.com/jmchacon/pce/memory"
	"github.com/jmchacon/pce/vce"
	"github.com/jmchacon/pce/vdc"
)

// PCE is a complete machine. It owns every component.
type PCE struct {
	clk    *clock.Clock
	bus    *bus.Bus
	cpu    *cpu.Chip
	hwpage *hwpage.Chip
	vce    *vce.Chip
	vdc    *vdc.Chip
	log    dbg.Sink
	trace  bool
}

// PCEDef defines the pieces needed to setup a PC Engine.
type PCEDef struct {
	// Rom is the HuCard image backing banks $00-$7F. Required.
	Rom memory.Image
	// Log receives every diagnostic. Defaults to dbg.Discard.
	Log dbg.Sink
	// Port if non-nil drives the I/O port (joypad).
	Port io.PortIn8
	// Trace emits a disassembly of each instruction before it executes.
	Trace bool
	// ResetVector starts execution from the reset vector instead of the
	// start of window 7.
	ResetVector bool
}

// Init returns an initialized and powered on PC Engine.
func Init(def *PCEDef) (*PCE, error) {
	if def == nil || def.Rom == nil {
		return nil, errors.New("Rom must be non-nil in def")
	}
	p := &PCE{
		clk:   clock.New(),
		log:   def.Log,
		trace: def.Trace,
	}
	if p.log == nil {
		p.log = dbg.Discard
	}
	p.vce = vce.Init(p.log)
	p.vdc = vdc.Init(p.log)

	var err error
	p.hwpage, err = hwpage.Init(&hwpage.ChipDef{
		VDC:    p.vdc,
		VCE:    p.vce,
		Port:   def.Port,
		Halter: p.clk,
		Log:    p.log,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize hardware page: %v", err)
	}
	p.clk.Attach(p.hwpage)

	p.bus, err = bus.Init(&bus.BusDef{
		Clock:  p.clk,
		Rom:    def.Rom,
		HwPage: p.hwpage,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize bus: %v", err)
	}

	p.cpu, err = cpu.Init(&cpu.ChipDef{
		Bus:   p.bus,
		Clock: p.clk,
		Log:   p.log,
		Irq:   p.hwpage.Interrupts(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize cpu: %v", err)
	}
	if def.ResetVector {
		p.cpu.Reset()
	}
	return p, nil
}

// Step executes one instruction (or interrupt entry).
func (p *PCE) Step() error {
	if p.trace {
		d, _ := disassemble.Step(p.cpu.PC, p.bus)
		p.log.Info("%s", d)
	}
	return p.cpu.Step()
}

// Run executes until the clock halts or the CPU faults.
func (p *PCE) Run() error {
	p.log.Info("PCE: run")
	if !p.trace {
		return p.cpu.Run()
	}
	return p.RunFor(0)
}

// RunFor executes for at least ticks master clock ticks (0 is forever) and
// stops at the first instruction boundary after. A CPU fault halts the
// clock, is reported once and returned.
func (p *PCE) RunFor(ticks uint64) error {
	limit := p.clk.Counter + ticks
	for p.clk.IsRunning() {
		if ticks != 0 && p.clk.Counter >= limit {
			return nil
		}
		if err := p.Step(); err != nil {
			p.clk.Halt()
			p.log.Fail("CPU: %v", err)
			return err
		}
	}
	return nil
}

// Clock returns the master clock.
func (p *PCE) Clock() *clock.Clock {
	return p.clk
}

// Bus returns the memory bus.
func (p *PCE) Bus() *bus.Bus {
	return p.bus
}

// CPU returns the HuC6280 core.
func (p *PCE) CPU() *cpu.Chip {
	return p.cpu
}

// HwPage returns the hardware page (timer and interrupt controller).
func (p *PCE) HwPage() *hwpage.Chip {
	return p.hwpage
}

// VCE returns the color encoder.
func (p *PCE) VCE() *vce.Chip {
	return p.vce
}

// VDC returns the video controller.
func (p *PCE) VDC() *vdc.Chip {
	return p.vdc
}
