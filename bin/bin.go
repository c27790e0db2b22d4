// Package bin implements a flat binary image used to back ROM and RAM.
// All accesses are bounds checked. Reads past the end return 0xFF
// (the value an undriven bus floats to) and writes past the end are dropped.
package bin

import (
	"fmt"
	"io/ioutil"

	"github.com/jmchacon/pce/memory"
)

var _ = memory.Image(&Image{})

const (
	// Fill is returned for out of range reads.
	Fill = uint8(0xFF)
	// BankSize is the size of one 8k bank.
	BankSize = 0x2000
	// HeaderSize is the size of the copier header some dumps carry.
	HeaderSize = 0x200
)

// Image is a bounds checked byte container.
type Image struct {
	dat []uint8
}

// New returns a zero filled image of sz bytes.
func New(sz int) *Image {
	return &Image{dat: make([]uint8, sz)}
}

// FromBytes wraps b (not copied).
func FromBytes(b []uint8) *Image {
	return &Image{dat: b}
}

// Load reads the file at path. If the size is a whole number of banks plus a 512 byte
// copier header the header is stripped.
func Load(path string) (*Image, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read image %q: %v", path, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("image %q is empty", path)
	}
	if len(b)%BankSize == HeaderSize {
		b = b[HeaderSize:]
	}
	return FromBytes(b), nil
}

// Save writes the image to path.
func (i *Image) Save(path string) error {
	if err := ioutil.WriteFile(path, i.dat, 0644); err != nil {
		return fmt.Errorf("can't write image %q: %v", path, err)
	}
	return nil
}

// Get implements memory.Image.
func (i *Image) Get(offset uint32) uint8 {
	if int64(offset) >= int64(len(i.dat)) {
		return Fill
	}
	return i.dat[offset]
}

// Set implements memory.Image.
func (i *Image) Set(offset uint32, val uint8) {
	if int64(offset) >= int64(len(i.dat)) {
		return
	}
	i.dat[offset] = val
}

// Len implements memory.Image.
func (i *Image) Len() int {
	return len(i.dat)
}

// Bytes returns the backing slice.
func (i *Image) Bytes() []uint8 {
	return i.dat
}
