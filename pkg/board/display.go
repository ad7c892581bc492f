package board

// Seven-segment patterns for digits 0-9, common cathode, bit 0 = a
// through bit 6 = g.
var segmentPatterns = [10]byte{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

// SegmentsBlank drives no segments.
const SegmentsBlank byte = 0x00

// SegmentsForDigit maps a decimal digit to its segment pattern.
// Values outside 0-9 render blank instead of indexing out of range.
func SegmentsForDigit(d byte) byte {
	if d > 9 {
		return SegmentsBlank
	}
	return segmentPatterns[d]
}

// Digit slot positions in a Buffer.
const (
	SlotMinutesTens = iota
	SlotMinutesOnes
	SlotSecondsTens
	SlotSecondsOnes
	SlotRedTens
	SlotRedOnes
	SlotBlueTens
	SlotBlueOnes

	// MaxSlots is the size of a fully populated digit bank.
	MaxSlots = 8
)

// Layout describes how many digit slots are physically wired.
type Layout struct {
	Slots int
}

// WiredLayout matches the installed hardware: timer and red score
// only. The blue score digits are computed but have no slot to land
// on until the bank is extended.
var WiredLayout = Layout{Slots: 6}

// FullLayout drives all eight digits including the blue score.
var FullLayout = Layout{Slots: 8}

// Buffer is one immutable rendering of a State. It is built off to
// the side and published in a single atomic swap, so a render tick
// always observes a consistent set of digits. All eight digits are
// always computed; Slots bounds how many the multiplexer drives.
type Buffer struct {
	Segments [MaxSlots]byte
	Slots    int
}

// clamp2 bounds a value to two decimal digits.
func clamp2(v byte) byte {
	if v > 99 {
		return 99
	}
	return v
}

// BuildBuffer renders a State into a fresh Buffer.
func BuildBuffer(s State, layout Layout) *Buffer {
	minutes, seconds := clamp2(s.TimerMinutes), clamp2(s.TimerSeconds)
	red, blue := clamp2(s.RedScore), clamp2(s.BlueScore)
	buf := &Buffer{Slots: layout.Slots}
	buf.Segments[SlotMinutesTens] = SegmentsForDigit(minutes / 10)
	buf.Segments[SlotMinutesOnes] = SegmentsForDigit(minutes % 10)
	buf.Segments[SlotSecondsTens] = SegmentsForDigit(seconds / 10)
	buf.Segments[SlotSecondsOnes] = SegmentsForDigit(seconds % 10)
	buf.Segments[SlotRedTens] = SegmentsForDigit(red / 10)
	buf.Segments[SlotRedOnes] = SegmentsForDigit(red % 10)
	buf.Segments[SlotBlueTens] = SegmentsForDigit(blue / 10)
	buf.Segments[SlotBlueOnes] = SegmentsForDigit(blue % 10)
	return buf
}
