// Package dbg implements the diagnostic sink shared by all chips.
// Messages carry one of four levels. Only Fail is allowed to
// change control flow and it's up to the sink to decide what that
// means (the console sink exits the process).
package dbg

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Level is an enumeration of diagnostic severities.
type Level int

const (
	LevelInfo Level = iota // Normal trace output.
	LevelWarn              // Emulation fidelity gaps (cycle drift, etc).
	LevelErr               // Recoverable errors such as unimplemented hardware.
	LevelFail              // Unrecoverable. CPU state can no longer be trusted.
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelErr:
		return "ERR "
	case LevelFail:
		return "FAIL"
	}
	return "????"
}

// ParseLevel converts a flag value such as "warn" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "err", "error":
		return LevelErr, nil
	case "fail", "fatal":
		return LevelFail, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level %q", s)
}

// Sink accepts leveled, formatted messages.
type Sink interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Err(format string, args ...interface{})
	// Fail reports an unrecoverable fault. Callers must stop advancing
	// emulated state after calling it even if the sink returns.
	Fail(format string, args ...interface{})
}

var pens = map[Level]string{
	LevelInfo: "\x1b[34m",
	LevelWarn: "\x1b[33m",
	LevelErr:  "\x1b[31m",
	LevelFail: "\x1b[31m",
}

const (
	bodyPen   = "\x1b[37m"
	normalPen = "\x1b[0m"
)

// Console writes one line per message to an io.Writer.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	min   Level
	color bool
	exit  func(int)
}

// ConsoleDef configures a Console.
type ConsoleDef struct {
	// Out is where lines go. Defaults to os.Stderr.
	Out io.Writer
	// Min is the lowest level written. Fail is always written.
	Min Level
	// Exit is called with 1 after a Fail message. Defaults to os.Exit.
	Exit func(int)
}

// NewConsole returns a Console sink. Output is colorized only when Out is a terminal.
func NewConsole(d *ConsoleDef) *Console {
	c := &Console{
		out:  d.Out,
		min:  d.Min,
		exit: d.Exit,
	}
	if c.out == nil {
		c.out = os.Stderr
	}
	if c.exit == nil {
		c.exit = os.Exit
	}
	if f, ok := c.out.(*os.File); ok {
		c.color = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *Console) write(l Level, format string, args ...interface{}) {
	if l < c.min && l != LevelFail {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color {
		fmt.Fprintf(c.out, "%s%s %s%s%s\n", pens[l], l, bodyPen, msg, normalPen)
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", l, msg)
}

// Info implements Sink.
func (c *Console) Info(format string, args ...interface{}) { c.write(LevelInfo, format, args...) }

// Warn implements Sink.
func (c *Console) Warn(format string, args ...interface{}) { c.write(LevelWarn, format, args...) }

// Err implements Sink.
func (c *Console) Err(format string, args ...interface{}) { c.write(LevelErr, format, args...) }

// Fail implements Sink. The message is written and then the exit function is called.
func (c *Console) Fail(format string, args ...interface{}) {
	c.write(LevelFail, format, args...)
	c.exit(1)
}

// Entry is a single recorded message.
type Entry struct {
	Level    Level
	Message  string
	Repeated int
}

func (e Entry) String() string {
	if e.Repeated > 0 {
		return fmt.Sprintf("%s %s (repeat x%d)", e.Level, e.Message, e.Repeated+1)
	}
	return fmt.Sprintf("%s %s", e.Level, e.Message)
}

// Recorder keeps messages in memory. Identical consecutive messages are
// folded into one entry. Fail never exits.
type Recorder struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewRecorder returns a Recorder holding at most max entries (0 is unbounded).
func NewRecorder(max int) *Recorder {
	return &Recorder{max: max}
}

func (r *Recorder) add(l Level, format string, args ...interface{}) {
	msg := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", "")
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.entries); n > 0 {
		if e := &r.entries[n-1]; e.Level == l && e.Message == msg {
			e.Repeated++
			return
		}
	}
	r.entries = append(r.entries, Entry{Level: l, Message: msg})
	if r.max > 0 && len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Info implements Sink.
func (r *Recorder) Info(format string, args ...interface{}) { r.add(LevelInfo, format, args...) }

// Warn implements Sink.
func (r *Recorder) Warn(format string, args ...interface{}) { r.add(LevelWarn, format, args...) }

// Err implements Sink.
func (r *Recorder) Err(format string, args ...interface{}) { r.add(LevelErr, format, args...) }

// Fail implements Sink.
func (r *Recorder) Fail(format string, args ...interface{}) { r.add(LevelFail, format, args...) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := make([]Entry, len(r.entries))
	copy(c, r.entries)
	return c
}

// Count returns how many messages (including folded repeats) were recorded at level l.
func (r *Recorder) Count(l Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == l {
			n += e.Repeated + 1
		}
	}
	return n
}

// Tail writes the last n entries to w.
func (r *Recorder) Tail(w io.Writer, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case n < 0:
		n = 0
	case n > len(r.entries):
		n = len(r.entries)
	}
	for _, e := range r.entries[len(r.entries)-n:] {
		fmt.Fprintln(w, e.String())
	}
}

// Clear drops all entries.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}

type discard struct{}

func (discard) Info(string, ...interface{}) {}
func (discard) Warn(string, ...interface{}) {}
func (discard) Err(string, ...interface{})  {}
func (discard) Fail(string, ...interface{}) {}

// Discard drops every message, including Fail.
var Discard Sink = discard{}
