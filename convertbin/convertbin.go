// convertbin takes a raw binary and converts it into a
// HuCard image for running as a test cart.
// The binary is copied to --offset in the image. A boot
// stub at the end of bank 0 ($FF00 when bank 0 sits in
// window 7) sets up the hardware page in window 0, RAM
// in window 1 and the stack, then JSRs to --start_pc and
// infinite loops when that returns. All interrupt vectors
// point at an RTI.
//
// The output file is named after the input with .pce
// appended onto the end.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/jmchacon/pce/bin"
	"github.com/jmchacon/pce/cpu"
)

var (
	startPC = flag.Int("start_pc", 0xE000, "PC value to start execution")
	offset  = flag.Int("offset", 0x0000, "Offset into the image to load the binary")
)

const (
	kSTUB = 0x1F00 // Offset of the boot stub in bank 0.
	kRTI  = 0x1F20 // Offset of the shared interrupt handler in bank 0.
)

// convert returns a bank padded image holding b at off with the boot stub installed.
// The binary may not overlap the stub, handler or vectors at the end of bank 0.
func convert(b []byte, off int, start uint16) (*bin.Image, error) {
	if end := off + len(b); off < bin.BankSize && end > kSTUB {
		return nil, fmt.Errorf("binary at 0x%.6X-0x%.6X overlaps the boot stub at 0x%.4X", off, end-1, kSTUB)
	}
	sz := off + len(b)
	if sz < bin.BankSize {
		sz = bin.BankSize
	}
	if r := sz % bin.BankSize; r != 0 {
		sz += bin.BankSize - r
	}
	img := bin.New(sz)
	copy(img.Bytes()[off:], b)

	stub := []uint8{
		0x78,             // SEI
		0xD4,             // CSH
		0xA9, 0xFF,       // LDA #$FF
		0x53, 0x01,       // TAM #$01
		0xA9, 0xF8,       // LDA #$F8
		0x53, 0x02,       // TAM #$02
		0xA2, 0xFF,       // LDX #$FF
		0x9A,             // TXS
		0x20, 0x00, 0x00, // JSR <start>
		0x80, 0xFE,       // BRA *
	}
	stub[14], stub[15] = uint8(start&0xFF), uint8(start>>8)
	copy(img.Bytes()[kSTUB:], stub)
	img.Set(kRTI, 0x40) // RTI

	window := cpu.START_PC
	vec := func(v uint16, addr uint16) {
		o := uint32(v & 0x1FFF)
		img.Set(o, uint8(addr&0xFF))
		img.Set(o+1, uint8(addr>>8))
	}
	for _, v := range []uint16{cpu.IRQ2_VECTOR, cpu.IRQ1_VECTOR, cpu.TIMER_VECTOR, cpu.NMI_VECTOR} {
		vec(v, window+kRTI)
	}
	vec(cpu.RESET_VECTOR, window+kSTUB)
	return img, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s --start_pc=XXXX <filename>", os.Args[0])
	}
	if *startPC < 0 || *startPC > 65535 {
		log.Fatal("--start_pc out of range. Must be between 0-65535")
	}
	if *offset < 0 {
		log.Fatal("--offset must be positive")
	}
	fn := flag.Args()[0]
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	img, err := convert(b, *offset, uint16(*startPC))
	if err != nil {
		log.Fatalf("Can't convert %s - %v", fn, err)
	}
	fmt.Printf("0x%.4X bytes at offset 0x%.6X, start 0x%.4X\n", len(b), *offset, *startPC)

	outfn := fn + ".pce"
	if err := img.Save(outfn); err != nil {
		log.Fatalf("Can't write %q: %v", outfn, err)
	}
}
