package clock

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type counter struct {
	calls int
	last  uint64
}

func (c *counter) OnTick(n uint64) {
	c.calls++
	c.last = n
}

func TestTick(t *testing.T) {
	c := New()
	o := &counter{}
	c.Attach(o)
	c.Run(10)
	if got, want := c.Counter, uint64(10); got != want {
		t.Errorf("bad counter: got %d want %d", got, want)
	}
	if got, want := o.calls, 10; got != want {
		t.Errorf("bad observer calls: got %d want %d", got, want)
	}
	if got, want := o.last, uint64(10); got != want {
		t.Errorf("observer saw %d want %d", got, want)
	}
	if c.Extra() != 0 {
		t.Errorf("extra ticks without a stall: %s", spew.Sdump(c))
	}
}

func TestNoObserver(t *testing.T) {
	c := New()
	c.Tick()
	if got, want := c.Counter, uint64(1); got != want {
		t.Errorf("bad counter: got %d want %d", got, want)
	}
}

func TestStall(t *testing.T) {
	c := New()
	o := &counter{}
	c.Attach(o)
	c.Run(3)
	c.Stall(12)
	if got, want := c.Counter, uint64(15); got != want {
		t.Errorf("bad counter: got %d want %d", got, want)
	}
	if got, want := c.Extra(), uint64(12); got != want {
		t.Errorf("bad extra: got %d want %d", got, want)
	}
	if got, want := o.calls, 15; got != want {
		t.Errorf("stall must notify the observer: got %d want %d", got, want)
	}
	c.ResetExtra()
	if got := c.Extra(); got != 0 {
		t.Errorf("extra not reset: %d", got)
	}
}

func TestHalt(t *testing.T) {
	c := New()
	if !c.IsRunning() {
		t.Fatal("new clock isn't running")
	}
	c.Halt()
	if c.IsRunning() {
		t.Fatal("halted clock still running")
	}
}

func TestSuppress(t *testing.T) {
	c := New()
	o := &counter{}
	c.Attach(o)
	c.Suppress(func() {
		c.Run(5)
		c.Stall(3)
		c.Suppress(func() { c.Tick() })
		if !c.Suppressed() {
			t.Error("nested suppress released early")
		}
	})
	if c.Counter != 0 || o.calls != 0 || c.Extra() != 0 {
		t.Errorf("suppressed ticks leaked: %s", spew.Sdump(c))
	}
	if c.Suppressed() {
		t.Fatal("still suppressed after action returned")
	}
	c.Tick()
	if got, want := c.Counter, uint64(1); got != want {
		t.Errorf("bad counter after suppress: got %d want %d", got, want)
	}
}

func TestSuppressPanic(t *testing.T) {
	c := New()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("panic didn't propagate")
			}
		}()
		c.Suppress(func() { panic("fault") })
	}()
	if c.Suppressed() {
		t.Fatal("suppression not restored after panic")
	}
	c.Tick()
	if got, want := c.Counter, uint64(1); got != want {
		t.Errorf("bad counter: got %d want %d", got, want)
	}
}
