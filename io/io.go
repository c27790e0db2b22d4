// Package io defines the basic interfaces for working with the HuC6280
// 8 bit I/O port (the one the joypad multiplexer hangs off). Input is
// sampled on every read of the port. Output is latched on writes and the
// host polls the latch through PortOut8.
package io

// PortIn8 defines an 8 bit input port.
type PortIn8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

// PortOut8 defines an 8 bit output port.
type PortOut8 interface {
	// Output returns the most recently latched output value.
	Output() uint8
}
