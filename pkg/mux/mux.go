// Package mux time-slices the display buffer onto a digit bank.
package mux

import (
	"time"

	"github.com/robotalks/scoreboard.go/pkg/board"
)

// DefaultPeriod is the reference tick period. With the 6-slot wired
// layout a full cycle takes 6ms, refreshing each digit at ~166Hz,
// comfortably above the ~50Hz flicker threshold.
const DefaultPeriod = time.Millisecond

// Sink is the physical digit output: a shared 7-line segment bus and
// one select line per slot. Drive latches the segment pattern and
// enables exactly the given slot, disabling all others first, so at
// most one slot is ever enabled. Implementations must not block.
type Sink interface {
	Drive(slot int, segments byte)
}

// DriveFunc is the func form of Sink.
type DriveFunc func(slot int, segments byte)

// Drive implements Sink.
func (f DriveFunc) Drive(slot int, segments byte) {
	f(slot, segments)
}

// Discard is a Sink connected to nothing.
var Discard Sink = DriveFunc(func(int, byte) {})

// Recorder is an in-memory Sink for tests and dry runs. It retains
// the last pattern driven onto each slot and which slot is selected.
type Recorder struct {
	Patterns [board.MaxSlots]byte
	Active   int
}

// Drive implements Sink.
func (r *Recorder) Drive(slot int, segments byte) {
	r.Patterns[slot] = segments
	r.Active = slot
}

// Source supplies the published display buffer.
type Source interface {
	Buffer() *board.Buffer
}

// Multiplexer activates one digit slot per tick, cycling through the
// buffer's wired slots in strictly increasing order. The tick path
// performs no allocation and no locking: it loads the published
// buffer pointer and drives the sink.
type Multiplexer struct {
	Source Source
	Sink   Sink

	slot int
}

// New creates a Multiplexer.
func New(src Source, sink Sink) *Multiplexer {
	return &Multiplexer{Source: src, Sink: sink}
}

// Tick implements framework.TickHandler.
func (m *Multiplexer) Tick(now time.Time) {
	buf := m.Source.Buffer()
	n := buf.Slots
	if n <= 0 || n > board.MaxSlots {
		return
	}
	if m.slot >= n {
		// layout shrank under us; restart the cycle
		m.slot = 0
	}
	m.Sink.Drive(m.slot, buf.Segments[m.slot])
	m.slot++
	if m.slot >= n {
		m.slot = 0
	}
}
