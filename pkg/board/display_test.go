package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentsForDigit(t *testing.T) {
	require.Equal(t, byte(0x3F), SegmentsForDigit(0))
	require.Equal(t, byte(0x06), SegmentsForDigit(1))
	require.Equal(t, byte(0x6F), SegmentsForDigit(9))
	require.Equal(t, SegmentsBlank, SegmentsForDigit(10))
	require.Equal(t, SegmentsBlank, SegmentsForDigit(0xFF))
}

func TestBuildBuffer(t *testing.T) {
	buf := BuildBuffer(State{
		TimerMinutes: 2, TimerSeconds: 30,
		RedScore: 12, BlueScore: 7,
	}, FullLayout)
	require.Equal(t, 8, buf.Slots)
	require.Equal(t, SegmentsForDigit(0), buf.Segments[SlotMinutesTens])
	require.Equal(t, SegmentsForDigit(2), buf.Segments[SlotMinutesOnes])
	require.Equal(t, SegmentsForDigit(3), buf.Segments[SlotSecondsTens])
	require.Equal(t, SegmentsForDigit(0), buf.Segments[SlotSecondsOnes])
	require.Equal(t, SegmentsForDigit(1), buf.Segments[SlotRedTens])
	require.Equal(t, SegmentsForDigit(2), buf.Segments[SlotRedOnes])
	require.Equal(t, SegmentsForDigit(0), buf.Segments[SlotBlueTens])
	require.Equal(t, SegmentsForDigit(7), buf.Segments[SlotBlueOnes])
}

func TestBuildBufferClamps(t *testing.T) {
	buf := BuildBuffer(State{
		TimerMinutes: 250, TimerSeconds: 100,
		RedScore: 200, BlueScore: 99,
	}, WiredLayout)
	require.Equal(t, 6, buf.Slots)
	for _, slot := range []int{
		SlotMinutesTens, SlotMinutesOnes,
		SlotSecondsTens, SlotSecondsOnes,
		SlotRedTens, SlotRedOnes,
		SlotBlueTens, SlotBlueOnes,
	} {
		require.Equal(t, SegmentsForDigit(9), buf.Segments[slot])
	}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	require.Equal(t, byte(2), s.TimerMinutes)
	require.Equal(t, byte(30), s.TimerSeconds)
	require.Equal(t, byte(0), s.RedScore)
	require.Equal(t, byte(0), s.BlueScore)
	require.False(t, s.MatchActive)
	require.False(t, s.RedLamp())
	require.False(t, s.BlueLamp())
}

func TestLampsGatedByMatch(t *testing.T) {
	s := State{RedIndicator: true, BlueIndicator: true}
	require.False(t, s.RedLamp())
	require.False(t, s.BlueLamp())
	s.MatchActive = true
	require.True(t, s.RedLamp())
	require.True(t, s.BlueLamp())
	s.BlueIndicator = false
	require.True(t, s.RedLamp())
	require.False(t, s.BlueLamp())
}
