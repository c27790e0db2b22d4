// hand_asm takes a filename and produces a HuCard image
// from parsing the output as a hand assembled file
// of the form:
//
// XXXX OP A1 A2 A3 ....
//
// Where XXXX is the address field and OP is the opcode
// A1,A2,A3 are then optional params as needed (up to 6
// for block transfers). Anything after a tab or a (*) is
// a comment. Lines not starting with an address are ignored.
//
// The image is padded out to a whole number of banks and
// can optionally have the reset vector (at the end of bank 0)
// pointed at a given PC.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmchacon/pce/bin"
)

var (
	offset  = flag.Int("offset", 0x0000, "Offset to start writing assembled data. Everything prior is zero filled.")
	resetPC = flag.Int("reset_pc", -1, "If set the reset vector is pointed at this PC")
)

const kMAX_TOKENS = 7

var addrLine = regexp.MustCompile(`^[0-9A-F]{4}`)

// assemble returns the bytes from every address line in r.
func assemble(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var output []byte
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		if !addrLine.MatchString(t) {
			continue
		}
		if i := strings.Index(t, "\t"); i >= 0 {
			t = t[:i]
		}
		if i := strings.Index(t, "(*)"); i >= 0 {
			t = t[:i]
		}
		toks := strings.Fields(t)[1:]
		if len(toks) == 0 || len(toks) > kMAX_TOKENS {
			return nil, fmt.Errorf("invalid line %d - %q", l, scanner.Text())
		}
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("can't process input line %d %q - %v", l, scanner.Text(), err)
			}
			output = append(output, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return output, nil
}

// build lays code out at off in a bank padded image.
func build(code []byte, off int, reset int) *bin.Image {
	sz := off + len(code)
	if sz%bin.BankSize != 0 || sz == 0 {
		sz += bin.BankSize - sz%bin.BankSize
	}
	img := bin.New(sz)
	copy(img.Bytes()[off:], code)
	if reset >= 0 {
		img.Set(bin.BankSize-2, uint8(reset&0xFF))
		img.Set(bin.BankSize-1, uint8((reset>>8)&0xFF))
	}
	return img
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	if *resetPC > 0xFFFF {
		log.Fatal("--reset_pc out of range. Must be between 0-65535")
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer f.Close()
	code, err := assemble(f)
	if err != nil {
		log.Fatalf("Can't process %q - %v", fn, err)
	}
	if err := build(code, *offset, *resetPC).Save(out); err != nil {
		log.Fatalf("Can't write output: %v", err)
	}
}
