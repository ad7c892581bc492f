//go:build !linux

// Package gpio drives the digit bank through the GPIO character device.
package gpio

import "errors"

// Config selects the chip and line offsets for the digit bank.
type Config struct {
	Chip            string
	SegmentPins     [7]int
	SelectPins      []int
	RedLampPin      int
	BlueLampPin     int
	ActiveLowSelect bool
}

// Sink is unavailable on this platform.
type Sink struct{}

// Open is unsupported on this platform.
func Open(conf Config) (*Sink, error) {
	return nil, errors.New("gpio is only supported on linux")
}

// Slots is the number of wired digit select lines.
func (s *Sink) Slots() int { return 0 }

// Drive implements mux.Sink.
func (s *Sink) Drive(slot int, segments byte) {}

// SetLamps implements board.LampSink.
func (s *Sink) SetLamps(red, blue bool) {}

// Close implements io.Closer.
func (s *Sink) Close() error { return nil }
