package wire

import "io"

// Frame delimiters and limits.
const (
	StartByte byte = 0xAA
	EndByte   byte = 0x55
	AckByte   byte = 0xCC

	// MaxPayload is the payload bound declared by the LEN field.
	MaxPayload = 10
)

// Opcodes understood by the scoreboard.
const (
	OpUpdateScore  byte = 0x01
	OpUpdateTimer  byte = 0x02
	OpStartMatch   byte = 0x03
	OpStopMatch    byte = 0x04
	OpResetMatch   byte = 0x05
	OpPing         byte = 0x06
	OpSetIndicator byte = 0x07
)

// Alliance selectors for OpSetIndicator.
const (
	AllianceRed  byte = 0x01
	AllianceBlue byte = 0x02
)

// PingAck is the raw reply to OpPing. It is not a frame.
var PingAck = []byte{StartByte, AckByte, EndByte}

// Frame contains the information of a validated frame.
type Frame struct {
	Opcode  byte
	Payload []byte
}

// Checksum computes the XOR checksum over opcode, length and payload.
func Checksum(opcode byte, payload []byte) byte {
	sum := opcode ^ byte(len(payload))
	for _, b := range payload {
		sum ^= b
	}
	return sum
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() []byte {
	b := make([]byte, len(f.Payload)+5)
	b[0], b[1], b[2] = StartByte, f.Opcode, byte(len(f.Payload))
	copy(b[3:], f.Payload)
	b[len(b)-2] = Checksum(f.Opcode, f.Payload)
	b[len(b)-1] = EndByte
	return b
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer) (int, error) {
	return w.Write(f.Bytes())
}

// ScoreFrame builds an OpUpdateScore frame.
func ScoreFrame(red, blue byte) *Frame {
	return &Frame{Opcode: OpUpdateScore, Payload: []byte{red, blue}}
}

// TimerFrame builds an OpUpdateTimer frame.
func TimerFrame(minutes, seconds byte) *Frame {
	return &Frame{Opcode: OpUpdateTimer, Payload: []byte{minutes, seconds}}
}

// StartFrame builds an OpStartMatch frame.
func StartFrame() *Frame {
	return &Frame{Opcode: OpStartMatch}
}

// StopFrame builds an OpStopMatch frame.
func StopFrame() *Frame {
	return &Frame{Opcode: OpStopMatch}
}

// ResetFrame builds an OpResetMatch frame.
func ResetFrame() *Frame {
	return &Frame{Opcode: OpResetMatch}
}

// PingFrame builds an OpPing frame.
func PingFrame() *Frame {
	return &Frame{Opcode: OpPing}
}

// IndicatorFrame builds an OpSetIndicator frame.
func IndicatorFrame(alliance byte, on bool) *Frame {
	level := byte(0)
	if on {
		level = 1
	}
	return &Frame{Opcode: OpSetIndicator, Payload: []byte{alliance, level}}
}
