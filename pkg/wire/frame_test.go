package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, OpPing, Checksum(OpPing, nil))
	require.Equal(t, byte(0x01^0x02^12^34), Checksum(OpUpdateScore, []byte{12, 34}))
}

func TestFrameBytes(t *testing.T) {
	require.Equal(t,
		[]byte{StartByte, OpUpdateScore, 2, 12, 34, 0x01 ^ 0x02 ^ 12 ^ 34, EndByte},
		ScoreFrame(12, 34).Bytes())
	require.Equal(t,
		[]byte{StartByte, OpPing, 0, OpPing, EndByte},
		PingFrame().Bytes())
}

func TestFrameConstructorsRoundTrip(t *testing.T) {
	frames := []*Frame{
		ScoreFrame(99, 0),
		TimerFrame(2, 30),
		StartFrame(),
		StopFrame(),
		ResetFrame(),
		PingFrame(),
		IndicatorFrame(AllianceBlue, true),
		IndicatorFrame(AllianceRed, false),
	}
	for _, f := range frames {
		var parser Parser
		var got *Frame
		for _, b := range f.Bytes() {
			pr := parser.Parse(b)
			require.Equal(t, DropNone, pr.Drop)
			require.False(t, pr.Discarded)
			if pr.Frame != nil {
				got = pr.Frame
			}
		}
		require.Equal(t, f, got)
	}
}
