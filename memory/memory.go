// Package memory defines the basic interfaces for working
// with the HuC6280 physical address space. Each region of the
// 21 bit bus (ROM, RAM, hardware page) has its own mirroring
// rules so devices are only seen through these interfaces.
package memory

// Bank is anything attached to the physical bus.
type Bank interface {
	// Read returns the data byte stored at addr. Implementations must accept any
	// address and clamp or mirror as the hardware does.
	Read(addr uint32) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint32, val uint8)
}

// Image is a flat byte container backing ROM (and optionally RAM).
type Image interface {
	// Get returns the byte at offset or 0xFF past the end.
	Get(offset uint32) uint8
	// Set stores val at offset. Writes past the end are ignored.
	Set(offset uint32, val uint8)
	// Len is the size of the image in bytes.
	Len() int
}

// Register is a register indexed device such as the video or color controllers.
// The register index is already mirrored by the caller.
type Register interface {
	Read(reg uint16) uint8
	Write(reg uint16, val uint8)
}
