// Package wire implements the scoreboard control protocol.
package wire

// The protocol is communicated between the control console and the
// scoreboard over a point-to-point byte channel (e.g. serial port).
// Each frame is delimited and verified:
//
//	[START=0xAA][OPCODE:1][LEN:1][PAYLOAD:LEN, LEN<=10][CHECKSUM:1][END=0x55]
//	CHECKSUM = OPCODE ^ LEN ^ PAYLOAD[0] ^ ... ^ PAYLOAD[LEN-1]
//
// There is no acknowledgement or retry layer. Every malformed frame
// attempt is dropped silently and the receiver resynchronizes by
// hunting for the next start marker. The only reply the board ever
// sends is the fixed 3-byte ping acknowledgement 0xAA 0xCC 0x55,
// which is raw bytes, not a frame.
//
// Producer: control console
// Consumer: scoreboard
