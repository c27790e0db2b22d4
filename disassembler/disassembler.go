// disassembler takes a HuCard image and disassembles one bank of it
// to stdout. The bank is mapped into a logical window the same way
// the MPRs would map it so addresses (and branch targets) print as
// the CPU would see them. Copier headers are stripped.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmchacon/pce/bin"
	"github.com/jmchacon/pce/bus"
	"github.com/jmchacon/pce/clock"
	"github.com/jmchacon/pce/disassemble"
)

var (
	bank    = flag.Int("bank", 0x00, "Physical bank to disassemble")
	window  = flag.Int("window", 7, "Logical window (0-7) to map the bank into")
	startPC = flag.Int("start_pc", -1, "PC value to start disassembling. Defaults to the start of the window")
	count   = flag.Int("count", 0, "Number of instructions to disassemble. 0 disassembles to the end of the bank")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [--bank <bank> --window <window> --start_pc <PC> --count <N>] <filename>", os.Args[0])
	}
	if *bank < 0 || *bank > 0xFF {
		log.Fatal("--bank out of range. Must be between 0-255")
	}
	if *window < 0 || *window > 7 {
		log.Fatal("--window out of range. Must be between 0-7")
	}
	fn := flag.Args()[0]
	img, err := bin.Load(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}

	// Peeks through the bus never advance the clock so it's only here to satisfy Init.
	b, err := bus.Init(&bus.BusDef{
		Clock: clock.New(),
		Rom:   img,
	})
	if err != nil {
		log.Fatalf("Can't init bus: %v", err)
	}
	b.SetMPR(*window, uint8(*bank))

	start := uint16(*window) << bus.BANK_SHIFT
	pc := start
	if *startPC >= 0 {
		pc = uint16(*startPC)
	}
	if int(pc>>bus.BANK_SHIFT) != *window {
		log.Fatalf("--start_pc %.4X isn't in window %d", pc, *window)
	}
	fmt.Printf("0x%.2X bytes in bank %.2X at pc: %.4X\n", img.Len(), *bank, pc)

	// Can't base it on PC since it may rollover so count bytes instead.
	remain := int(bus.BANK_MASK) + 1 - int(pc-start)
	for n := 0; remain > 0 && (*count == 0 || n < *count); n++ {
		dis, off := disassemble.Step(pc, b)
		pc += uint16(off)
		remain -= off
		fmt.Printf("%s\n", dis)
	}
}
