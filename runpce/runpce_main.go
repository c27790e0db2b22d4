// runpce loads a HuCard image and runs it headless. Diagnostics go to
// stderr filtered by --log_level. When the run ends (clock budget, halt
// or fault) a summary of the CPU state is printed.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"github.com/jmchacon/pce/bin"
	"github.com/jmchacon/pce/dbg"
	"github.com/jmchacon/pce/pce"
	"github.com/jmchacon/pce/statsview"
)

var (
	rom          = flag.String("rom", "", "Path to HuCard image to load")
	logLevel     = flag.String("log_level", "warn", "Lowest diagnostic level to print (info, warn, err, fail)")
	trace        = flag.Bool("trace", false, "If true will emit a disassembly of every instruction (needs --log_level=info)")
	maxCycles    = flag.Uint64("max_cycles", 0, "Master clock ticks to run for. 0 runs until halted")
	resetVector  = flag.Bool("reset_vector", false, "If true start at the reset vector instead of $E000")
	palettePNG   = flag.String("palette_png", "", "If set the VCE color table is written here as a PNG when the run ends")
	paletteScale = flag.Int("palette_scale", 8, "Pixels per color table entry in --palette_png")
	stats        = flag.Bool("statsview", false, "If true serve runtime statistics over HTTP while running")
	statsAddr    = flag.String("statsview_addr", statsview.DefaultAddress, "Address for the --statsview server")
)

func main() {
	flag.Parse()
	if *rom == "" {
		log.Fatalf("Invalid command: %s --rom=<image> [flags]", os.Args[0])
	}
	lvl, err := dbg.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Bad --log_level: %v", err)
	}
	img, err := bin.Load(*rom)
	if err != nil {
		log.Fatalf("Can't load rom: %v", err)
	}

	// Faults are reported (and the exit code set) after the summary.
	exit := 0
	con := dbg.NewConsole(&dbg.ConsoleDef{
		Out:  os.Stderr,
		Min:  lvl,
		Exit: func(code int) { exit = code },
	})
	p, err := pce.Init(&pce.PCEDef{
		Rom:         img,
		Log:         con,
		Trace:       *trace,
		ResetVector: *resetVector,
	})
	if err != nil {
		log.Fatalf("Can't init PCE: %v", err)
	}

	if *stats {
		log.Printf("Runtime stats at %s", statsview.Launch(*statsAddr))
	}
	if err := p.RunFor(*maxCycles); err != nil {
		log.Printf("Run error: %v", err)
	}
	c := p.CPU()
	log.Printf("Stopped at PC=%.4X A=%.2X X=%.2X Y=%.2X SP=%.2X P=%.2X after %d ticks", c.PC, c.A, c.X, c.Y, c.SP, c.P, p.Clock().Counter)

	if *palettePNG != "" {
		o, err := os.Create(*palettePNG)
		if err != nil {
			log.Fatalf("Can't create %q: %v", *palettePNG, err)
		}
		if err := png.Encode(o, p.VCE().ScaledSwatch(*paletteScale)); err != nil {
			log.Fatalf("Can't write %q: %v", *palettePNG, err)
		}
		if err := o.Close(); err != nil {
			log.Fatalf("Error closing %q: %v", *palettePNG, err)
		}
	}
	os.Exit(exit)
}
