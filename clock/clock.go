// Package clock implements the master clock every other chip is synchronized to.
// The clock owns no devices. A single Observer may be attached and it's
// notified on every tick so time driven devices can advance themselves.
package clock

// Observer is notified once per tick with the new counter value.
type Observer interface {
	OnTick(counter uint64)
}

// Clock is the master clock.
type Clock struct {
	Counter    uint64 // Total ticks since power on.
	extra      uint64 // Ticks spent in wait states since the last ResetExtra.
	halted     bool
	suppressed int
	observer   Observer
}

// New returns a running clock with nothing attached.
func New() *Clock {
	return &Clock{}
}

// Attach installs o as the tick observer. Only one observer is kept.
func (c *Clock) Attach(o Observer) {
	c.observer = o
}

// Tick advances the clock once and notifies the observer. While suppressed it does nothing.
func (c *Clock) Tick() {
	if c.suppressed > 0 {
		return
	}
	c.Counter++
	if c.observer != nil {
		c.observer.OnTick(c.Counter)
	}
}

// Run ticks n times.
func (c *Clock) Run(n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// Stall ticks n times for a bus wait state. These ticks are also accumulated
// in Extra so instruction timing checks can remove them.
func (c *Clock) Stall(n int) {
	if c.suppressed > 0 {
		return
	}
	c.Run(n)
	c.extra += uint64(n)
}

// Extra returns the wait state ticks accumulated since the last ResetExtra.
func (c *Clock) Extra() uint64 {
	return c.extra
}

// ResetExtra zeros the wait state accumulator.
func (c *Clock) ResetExtra() {
	c.extra = 0
}

// Halt stops the clock. This is terminal.
func (c *Clock) Halt() {
	c.halted = true
}

// IsRunning returns true until Halt is called.
func (c *Clock) IsRunning() bool {
	return !c.halted
}

// Suppressed reports whether ticking is currently disabled.
func (c *Clock) Suppressed() bool {
	return c.suppressed > 0
}

// Suppress runs action with ticking disabled. Ticking is restored when action
// returns, including when it panics.
func (c *Clock) Suppress(action func()) {
	c.suppressed++
	defer func() { c.suppressed-- }()
	action()
}
