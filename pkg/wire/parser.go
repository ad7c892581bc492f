package wire

// Parser parses bytes received.
//
// Resynchronization policy: after any aborted frame attempt the parser
// returns to hunting for the start marker beginning at the very next
// byte. Bytes already consumed by the aborted attempt are never
// re-examined for an embedded start marker. In particular an
// out-of-bound LEN aborts the attempt without consuming the payload
// the sender is still transmitting, so those bytes may be misread as
// a new frame attempt; such an attempt fails validation in turn and
// the stream re-converges.
type Parser struct {
	state   parseState
	opcode  byte
	length  byte
	recvLen byte
	payload [MaxPayload]byte
}

type parseState int

const (
	stateStart    parseState = iota // hunting for the start marker
	stateOpcode                     // waiting for opcode
	stateLen                        // waiting for payload length
	statePayload                    // receiving payload bytes
	stateChecksum                   // waiting for checksum
	stateEnd                        // waiting for the end marker
)

// DropReason tells why a frame attempt was abandoned.
type DropReason int

const (
	// DropNone means nothing was dropped on this byte.
	DropNone DropReason = iota
	// DropLength means the declared length exceeded MaxPayload.
	DropLength
	// DropChecksum means the received checksum mismatched.
	DropChecksum
	// DropEnd means the end marker was missing.
	DropEnd
)

// ParseResult indicates the result after consuming one byte.
type ParseResult struct {
	// Frame is the validated frame, if one completed on this byte.
	Frame *Frame
	// Drop is set when a frame attempt was abandoned on this byte.
	Drop DropReason
	// Discarded is set when the byte was skipped while hunting
	// for the start marker.
	Discarded bool
}

// Reset restores the parser to hunting for a start marker.
func (p *Parser) Reset() {
	p.state = stateStart
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateStart:
		if b == StartByte {
			p.state = stateOpcode
		} else {
			pr.Discarded = true
		}
	case stateOpcode:
		p.opcode = b
		p.state = stateLen
	case stateLen:
		if b > MaxPayload {
			// The would-be payload is not consumed or skipped.
			p.state = stateStart
			pr.Drop = DropLength
			return
		}
		p.length, p.recvLen = b, 0
		if b == 0 {
			p.state = stateChecksum
		} else {
			p.state = statePayload
		}
	case statePayload:
		p.payload[p.recvLen] = b
		p.recvLen++
		if p.recvLen >= p.length {
			p.state = stateChecksum
		}
	case stateChecksum:
		if b != Checksum(p.opcode, p.payload[:p.length]) {
			p.state = stateStart
			pr.Drop = DropChecksum
			return
		}
		p.state = stateEnd
	case stateEnd:
		p.state = stateStart
		if b != EndByte {
			pr.Drop = DropEnd
			return
		}
		frame := &Frame{Opcode: p.opcode}
		if p.length > 0 {
			frame.Payload = make([]byte, p.length)
			copy(frame.Payload, p.payload[:p.length])
		}
		pr.Frame = frame
	}
	return
}
