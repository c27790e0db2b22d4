// Package timer implements the HuC6280 free running timer.
// The timer counts down from a 7 bit reload value once per
// tick quantum (1024 cycles of the 7.16MHz clock) and reloads
// when it reaches zero.
package timer

const (
	// Divider is the number of master clock ticks per timer clock.
	Divider = 3
	// Quantum is the number of timer clocks per count.
	Quantum = 1024

	kMASK_RELOAD = uint8(0x7F)
)

// Chip is the timer state.
type Chip struct {
	clocks  uint64 // Timer clocks (master ticks / Divider) seen so far.
	current uint8  // Current count.
	reload  uint8  // Value loaded on enable and underflow. Always 1-128.
	enabled bool
	ticks   uint64 // Number of quanta elapsed.
}

// New returns a disabled timer with a reload of 1.
func New() *Chip {
	return &Chip{reload: 1}
}

// Current returns the current count.
func (c *Chip) Current() uint8 {
	return c.current
}

// Reload returns the reload value (including the +1 bias).
func (c *Chip) Reload() uint8 {
	return c.reload
}

// Enabled reports whether the timer is counting.
func (c *Chip) Enabled() bool {
	return c.enabled
}

// Ticks returns how many quanta have elapsed since power on.
func (c *Chip) Ticks() uint64 {
	return c.ticks
}

// SetReload stores the 7 bit reload value. The hardware counts reload+1.
func (c *Chip) SetReload(val uint8) {
	c.reload = (val & kMASK_RELOAD) + 1
}

// SetEnabled starts or stops counting. Either way the counter is reloaded.
func (c *Chip) SetEnabled(on bool) {
	c.enabled = on
	c.current = c.reload
}

// Cycle processes one master clock tick given the new clock counter. It
// returns true on the tick that finishes a quantum along with whether the
// counter wrapped on that quantum.
func (c *Chip) Cycle(counter uint64) (tick bool, underflow bool) {
	if counter%Divider != 0 {
		return false, false
	}
	c.clocks++
	if c.clocks%Quantum != 0 {
		return false, false
	}
	c.ticks++
	return true, c.Step()
}

// Step runs one quantum. Returns true if the counter was at zero and reloaded.
func (c *Chip) Step() bool {
	if !c.enabled {
		return false
	}
	if c.current == 0 {
		c.current = c.reload
		return true
	}
	c.current--
	return false
}
