package mux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard.go/pkg/board"
)

type fixedSource struct {
	buf *board.Buffer
}

func (s *fixedSource) Buffer() *board.Buffer {
	return s.buf
}

type driveRecord struct {
	slot     int
	segments byte
}

func TestMultiplexerCycle(t *testing.T) {
	src := &fixedSource{buf: board.BuildBuffer(board.State{
		TimerMinutes: 2, TimerSeconds: 30, RedScore: 12,
	}, board.WiredLayout)}

	var drives []driveRecord
	m := New(src, DriveFunc(func(slot int, segments byte) {
		drives = append(drives, driveRecord{slot, segments})
	}))

	now := time.Now()
	for i := 0; i < 12; i++ {
		m.Tick(now)
	}

	require.Len(t, drives, 12)
	for i, d := range drives {
		require.Equal(t, i%6, d.slot)
		require.Equal(t, src.buf.Segments[d.slot], d.segments)
	}
}

func TestMultiplexerFollowsPublishedBuffer(t *testing.T) {
	src := &fixedSource{buf: board.BuildBuffer(board.DefaultState(), board.FullLayout)}
	rec := &Recorder{}
	m := New(src, rec)

	now := time.Now()
	m.Tick(now)
	require.Equal(t, board.SlotMinutesTens, rec.Active)
	require.Equal(t, board.SegmentsForDigit(0), rec.Patterns[rec.Active])

	src.buf = board.BuildBuffer(board.State{RedScore: 9, TimerMinutes: 11}, board.FullLayout)
	m.Tick(now)
	require.Equal(t, board.SlotMinutesOnes, rec.Active)
	require.Equal(t, board.SegmentsForDigit(1), rec.Patterns[rec.Active])
}

func TestMultiplexerLayoutShrink(t *testing.T) {
	src := &fixedSource{buf: board.BuildBuffer(board.DefaultState(), board.FullLayout)}
	var slots []int
	m := New(src, DriveFunc(func(slot int, _ byte) {
		slots = append(slots, slot)
	}))

	now := time.Now()
	for i := 0; i < 7; i++ {
		m.Tick(now)
	}
	src.buf = board.BuildBuffer(board.DefaultState(), board.WiredLayout)
	m.Tick(now)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 0}, slots)
}

func TestMultiplexerTickDoesNotAllocate(t *testing.T) {
	src := &fixedSource{buf: board.BuildBuffer(board.DefaultState(), board.FullLayout)}
	rec := &Recorder{}
	m := New(src, rec)
	now := time.Now()
	allocs := testing.AllocsPerRun(1000, func() {
		m.Tick(now)
	})
	require.Equal(t, float64(0), allocs)
}

func TestMultiplexerZeroSlots(t *testing.T) {
	src := &fixedSource{buf: &board.Buffer{}}
	m := New(src, DriveFunc(func(int, byte) {
		t.Fatal("drive on empty layout")
	}))
	m.Tick(time.Now())
}
