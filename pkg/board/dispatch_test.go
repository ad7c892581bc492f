package board

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard.go/pkg/wire"
)

type lampRecorder struct {
	red, blue bool
	calls     int
}

func (r *lampRecorder) SetLamps(red, blue bool) {
	r.red, r.blue = red, blue
	r.calls++
}

func apply(d *Dispatcher, f *wire.Frame) {
	d.HandleFrame(context.Background(), f, nil)
}

func TestDispatcherUpdateScore(t *testing.T) {
	d := NewDispatcher(FullLayout)
	apply(d, wire.ScoreFrame(12, 34))
	require.Equal(t, byte(12), d.State().RedScore)
	require.Equal(t, byte(34), d.State().BlueScore)
	buf := d.Buffer()
	require.Equal(t, SegmentsForDigit(1), buf.Segments[SlotRedTens])
	require.Equal(t, SegmentsForDigit(2), buf.Segments[SlotRedOnes])
	require.Equal(t, SegmentsForDigit(3), buf.Segments[SlotBlueTens])
	require.Equal(t, SegmentsForDigit(4), buf.Segments[SlotBlueOnes])
}

func TestDispatcherUpdateTimer(t *testing.T) {
	d := NewDispatcher(FullLayout)
	apply(d, wire.TimerFrame(1, 45))
	require.Equal(t, byte(1), d.State().TimerMinutes)
	require.Equal(t, byte(45), d.State().TimerSeconds)
	buf := d.Buffer()
	require.Equal(t, SegmentsForDigit(0), buf.Segments[SlotMinutesTens])
	require.Equal(t, SegmentsForDigit(1), buf.Segments[SlotMinutesOnes])
	require.Equal(t, SegmentsForDigit(4), buf.Segments[SlotSecondsTens])
	require.Equal(t, SegmentsForDigit(5), buf.Segments[SlotSecondsOnes])
}

func TestDispatcherShortPayloadIgnored(t *testing.T) {
	d := NewDispatcher(FullLayout)
	before := d.Buffer()
	apply(d, &wire.Frame{Opcode: wire.OpUpdateScore, Payload: []byte{7}})
	apply(d, &wire.Frame{Opcode: wire.OpUpdateTimer})
	require.Equal(t, DefaultState(), d.State())
	require.True(t, before == d.Buffer(), "buffer republished")
}

func TestDispatcherMatchLifecycle(t *testing.T) {
	lamps := &lampRecorder{}
	d := NewDispatcher(FullLayout)
	d.Lamps = lamps

	apply(d, wire.StartFrame())
	require.True(t, d.State().MatchActive)
	require.True(t, lamps.red)
	require.True(t, lamps.blue)

	apply(d, wire.StopFrame())
	require.False(t, d.State().MatchActive)
	require.False(t, lamps.red)
	require.False(t, lamps.blue)
}

func TestDispatcherReset(t *testing.T) {
	lamps := &lampRecorder{}
	d := NewDispatcher(FullLayout)
	d.Lamps = lamps
	apply(d, wire.ScoreFrame(50, 60))
	apply(d, wire.TimerFrame(0, 10))
	apply(d, wire.StartFrame())

	apply(d, wire.ResetFrame())
	require.Equal(t, DefaultState(), d.State())
	require.False(t, lamps.red)
	require.False(t, lamps.blue)
	buf := d.Buffer()
	require.Equal(t, SegmentsForDigit(2), buf.Segments[SlotMinutesOnes])
	require.Equal(t, SegmentsForDigit(3), buf.Segments[SlotSecondsTens])
	require.Equal(t, SegmentsForDigit(0), buf.Segments[SlotRedOnes])
}

func TestDispatcherPing(t *testing.T) {
	d := NewDispatcher(FullLayout)
	apply(d, wire.ScoreFrame(5, 6))
	before := d.State()

	var reply bytes.Buffer
	d.HandleFrame(context.Background(), wire.PingFrame(), &reply)
	require.Equal(t, wire.PingAck, reply.Bytes())
	require.Equal(t, before, d.State())
}

func TestDispatcherSetIndicator(t *testing.T) {
	lamps := &lampRecorder{}
	d := NewDispatcher(FullLayout)
	d.Lamps = lamps
	apply(d, wire.StartFrame())

	apply(d, wire.IndicatorFrame(wire.AllianceRed, false))
	require.False(t, lamps.red)
	require.True(t, lamps.blue)

	apply(d, wire.IndicatorFrame(wire.AllianceBlue, false))
	require.False(t, lamps.blue)

	apply(d, wire.IndicatorFrame(wire.AllianceRed, true))
	require.True(t, lamps.red)
}

func TestDispatcherSetIndicatorUnknownSelector(t *testing.T) {
	lamps := &lampRecorder{}
	d := NewDispatcher(FullLayout)
	d.Lamps = lamps
	apply(d, wire.StartFrame())
	calls := lamps.calls

	apply(d, &wire.Frame{Opcode: wire.OpSetIndicator, Payload: []byte{3, 1}})
	require.Equal(t, calls, lamps.calls)
	require.True(t, d.State().RedIndicator)
	require.True(t, d.State().BlueIndicator)
}

func TestDispatcherUnknownOpcode(t *testing.T) {
	d := NewDispatcher(FullLayout)
	before := d.Buffer()
	apply(d, &wire.Frame{Opcode: 0x7E, Payload: []byte{1, 2, 3}})
	require.Equal(t, DefaultState(), d.State())
	require.True(t, before == d.Buffer(), "buffer republished")
}
