package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type parserTestStep struct {
	in    []byte
	each  ParseResult
	final ParseResult
}

type parserTestBuilder struct {
	steps []parserTestStep
}

func parserTest() *parserTestBuilder {
	return &parserTestBuilder{}
}

// feed consumes bytes mid-frame, expecting no result on any of them.
func (b *parserTestBuilder) feed(in ...byte) *parserTestBuilder {
	b.steps = append(b.steps, parserTestStep{in: in})
	return b
}

// hunt consumes bytes while no frame is open, each one discarded.
func (b *parserTestBuilder) hunt(in ...byte) *parserTestBuilder {
	b.steps = append(b.steps, parserTestStep{
		in:    in,
		each:  ParseResult{Discarded: true},
		final: ParseResult{Discarded: true},
	})
	return b
}

// frame expects the previous feed to complete a validated frame.
func (b *parserTestBuilder) frame(opcode byte, payload ...byte) *parserTestBuilder {
	b.steps[len(b.steps)-1].final = ParseResult{Frame: &Frame{Opcode: opcode, Payload: payload}}
	return b
}

// drop expects the previous feed to abandon the frame attempt.
func (b *parserTestBuilder) drop(reason DropReason) *parserTestBuilder {
	b.steps[len(b.steps)-1].final = ParseResult{Drop: reason}
	return b
}

func (b *parserTestBuilder) build() []parserTestStep {
	return b.steps
}

// wellFormed encodes a frame the way a correct sender would.
func wellFormed(opcode byte, payload ...byte) []byte {
	return (&Frame{Opcode: opcode, Payload: payload}).Bytes()
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		steps []parserTestStep
	}{
		{
			name: "well-formed frames",
			steps: parserTest().
				feed(wellFormed(OpStartMatch)...).frame(OpStartMatch).
				feed(wellFormed(OpUpdateScore, 12, 34)...).frame(OpUpdateScore, 12, 34).
				feed(wellFormed(OpSetIndicator, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)...).
				frame(OpSetIndicator, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10).
				build(),
		},
		{
			name: "resync across garbage",
			steps: parserTest().
				hunt(0x00, 0x55, 0xFF, 0x12).
				feed(wellFormed(OpPing)...).frame(OpPing).
				build(),
		},
		{
			name: "checksum mismatch",
			steps: parserTest().
				feed(StartByte, OpUpdateScore, 2, 12, 34).
				feed(0x00).drop(DropChecksum).
				// the end marker of the corrupt frame is hunted over
				hunt(EndByte).
				feed(wellFormed(OpUpdateScore, 12, 34)...).frame(OpUpdateScore, 12, 34).
				build(),
		},
		{
			name: "missing end marker",
			steps: parserTest().
				feed(StartByte, OpPing, 0, Checksum(OpPing, nil)).
				feed(0x99).drop(DropEnd).
				feed(wellFormed(OpPing)...).frame(OpPing).
				build(),
		},
		{
			name: "length out of bound",
			steps: parserTest().
				feed(StartByte, OpUpdateScore).
				feed(11).drop(DropLength).
				// the sender's 11 payload bytes were never consumed:
				// the decoder hunts through them byte by byte
				hunt(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11).
				feed(wellFormed(OpResetMatch)...).frame(OpResetMatch).
				build(),
		},
		{
			name: "length out of bound with embedded start marker",
			steps: parserTest().
				feed(StartByte, OpUpdateScore).
				feed(11).drop(DropLength).
				// a stale payload byte equal to the start marker opens
				// a bogus frame attempt, which fails validation in turn
				feed(StartByte, 1, 2, 3, 4).
				feed(0x00).drop(DropChecksum).
				feed(wellFormed(OpResetMatch)...).frame(OpResetMatch).
				build(),
		},
		{
			name: "zero length frame",
			steps: parserTest().
				feed(StartByte, OpStopMatch, 0, Checksum(OpStopMatch, nil)).
				feed(EndByte).frame(OpStopMatch).
				build(),
		},
		{
			name: "unknown opcode still frames",
			steps: parserTest().
				feed(wellFormed(0x7F, 0xAB)...).frame(0x7F, 0xAB).
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var parser Parser
			for n, step := range tc.steps {
				for i, b := range step.in {
					pr := parser.Parse(b)
					if i+1 < len(step.in) {
						require.Equalf(t, step.each, pr, "step[%d][%d] expect mismatch", n, i)
					} else {
						require.Equalf(t, step.final, pr, "step[%d] final mismatch", n)
					}
				}
			}
		})
	}
}

func TestParserSingleByteChecksumCorruption(t *testing.T) {
	good := wellFormed(OpUpdateScore, 12, 34)
	for delta := byte(1); delta != 0; delta++ {
		bad := make([]byte, len(good))
		copy(bad, good)
		bad[len(bad)-2] ^= delta
		var parser Parser
		for _, b := range bad {
			require.Nil(t, parser.Parse(b).Frame)
		}
	}
}

func TestParserReset(t *testing.T) {
	var parser Parser
	parser.Parse(StartByte)
	parser.Parse(OpPing)
	parser.Reset()
	pr := parser.Parse(0x12)
	require.Equal(t, ParseResult{Discarded: true}, pr)
}
