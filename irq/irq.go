// Package irq implements the HuC6280 interrupt controller and the basic
// interfaces for moving interrupt state between chips. A receiver of
// interrupts (the CPU) installs a Sender and polls it at instruction
// boundaries so chips which raise lines don't need to know about each other.
// NOTE: All lines are level triggered. A line stays pending until acknowledged.
package irq

import "fmt"

// Line is an interrupt line on the controller.
type Line int

const (
	IRQ2  Line = iota // External IRQ2 (also shared with BRK).
	IRQ1              // IRQ1, driven by the video controller.
	Timer             // Timer underflow.
	kLINE_MAX         // End of line enumerations.
)

const kMASK_LINES = uint8(0x07)

func (l Line) String() string {
	switch l {
	case IRQ2:
		return "IRQ2"
	case IRQ1:
		return "IRQ1"
	case Timer:
		return "TIMER"
	}
	return fmt.Sprintf("LINE(%d)", int(l))
}

type Sender interface {
	// Raised returns the highest priority line which is both pending and enabled.
	// The bool is false if nothing is raised.
	Raised() (Line, bool)
}

type Receiver interface {
	// Install takes the given sender and stores it for later checks in appropriate logic.
	Install(s Sender)
}

var _ = Sender(&Controller{})

// Controller tracks the enabled and pending state of the 3 lines.
type Controller struct {
	enabled uint8
	pending uint8
}

// Enabled returns the enabled line bitset.
func (c *Controller) Enabled() uint8 {
	return c.enabled
}

// SetEnabled overwrites the enabled bitset. Only the low 3 bits are kept.
func (c *Controller) SetEnabled(val uint8) {
	c.enabled = val & kMASK_LINES
}

// Pending returns the pending line bitset.
func (c *Controller) Pending() uint8 {
	return c.pending
}

// Raise marks l as pending.
func (c *Controller) Raise(l Line) {
	if l < IRQ2 || l >= kLINE_MAX {
		return
	}
	c.pending |= 1 << uint(l)
}

// Ack acknowledges every pending line. The real chip acknowledges
// per source but only the all-lines form is modeled.
func (c *Controller) Ack() {
	c.pending = 0
}

// Has returns true if l is both pending and enabled.
func (c *Controller) Has(l Line) bool {
	if l < IRQ2 || l >= kLINE_MAX {
		return false
	}
	return (c.enabled>>uint(l))&(c.pending>>uint(l))&1 == 1
}

// Raised implements Sender. Timer has the highest priority, then IRQ1, then IRQ2.
func (c *Controller) Raised() (Line, bool) {
	for l := kLINE_MAX - 1; l >= IRQ2; l-- {
		if c.Has(l) {
			return l, true
		}
	}
	return IRQ2, false
}
