//go:build linux

// Package gpio drives the digit bank through the GPIO character device.
package gpio

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/warthog618/go-gpiocdev"

	"github.com/robotalks/scoreboard.go/pkg/framework"
)

// Config selects the chip and line offsets for the digit bank.
type Config struct {
	// Chip is the gpiochip device name, e.g. "gpiochip0".
	Chip string
	// SegmentPins are the 7 shared segment bus lines, a through g.
	SegmentPins [7]int
	// SelectPins are the digit select lines, one per wired slot.
	SelectPins []int
	// RedLampPin/BlueLampPin drive the alliance indicator lamps.
	// Negative values leave the lamp unwired.
	RedLampPin  int
	BlueLampPin int
	// ActiveLowSelect inverts the select lines (common for PNP
	// digit drivers).
	ActiveLowSelect bool
}

// Sink implements mux.Sink and board.LampSink on physical pins.
type Sink struct {
	conf     Config
	segments [7]*gpiocdev.Line
	selects  []*gpiocdev.Line
	redLamp  *gpiocdev.Line
	blueLamp *gpiocdev.Line
}

// Open requests all configured lines as outputs, initially inactive.
func Open(conf Config) (*Sink, error) {
	if conf.Chip == "" {
		conf.Chip = "gpiochip0"
	}
	if len(conf.SelectPins) == 0 {
		return nil, fmt.Errorf("at least one select pin is required")
	}
	s := &Sink{conf: conf}
	request := func(offset int) (*gpiocdev.Line, error) {
		line, err := gpiocdev.RequestLine(conf.Chip, offset, gpiocdev.AsOutput(0))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("request line %d: %v", offset, err)
		}
		return line, nil
	}
	var err error
	for i, pin := range conf.SegmentPins {
		if s.segments[i], err = request(pin); err != nil {
			return nil, err
		}
	}
	s.selects = make([]*gpiocdev.Line, len(conf.SelectPins))
	for i, pin := range conf.SelectPins {
		if s.selects[i], err = request(pin); err != nil {
			return nil, err
		}
		s.setSelect(i, false)
	}
	if conf.RedLampPin >= 0 {
		if s.redLamp, err = request(conf.RedLampPin); err != nil {
			return nil, err
		}
	}
	if conf.BlueLampPin >= 0 {
		if s.blueLamp, err = request(conf.BlueLampPin); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Slots is the number of wired digit select lines.
func (s *Sink) Slots() int {
	return len(s.selects)
}

// Drive implements mux.Sink: all selects off, latch the segment bus,
// then enable the one slot. Ordering matters to avoid ghosting the
// new pattern onto the previously selected digit.
func (s *Sink) Drive(slot int, segments byte) {
	if slot < 0 || slot >= len(s.selects) {
		return
	}
	for i := range s.selects {
		s.setSelect(i, false)
	}
	for i, line := range s.segments {
		s.set(line, segments&(1<<uint(i)) != 0)
	}
	s.setSelect(slot, true)
}

// SetLamps implements board.LampSink.
func (s *Sink) SetLamps(red, blue bool) {
	s.set(s.redLamp, red)
	s.set(s.blueLamp, blue)
}

func (s *Sink) setSelect(i int, on bool) {
	if s.conf.ActiveLowSelect {
		on = !on
	}
	s.set(s.selects[i], on)
}

func (s *Sink) set(line *gpiocdev.Line, on bool) {
	if line == nil {
		return
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		glog.V(4).Infof("set line: %v", err)
	}
}

// Close releases all requested lines.
func (s *Sink) Close() error {
	var errs framework.AggregatedError
	closeLine := func(line *gpiocdev.Line) {
		if line != nil {
			errs.Add(line.Close())
		}
	}
	for _, line := range s.segments {
		closeLine(line)
	}
	for _, line := range s.selects {
		closeLine(line)
	}
	closeLine(s.redLamp)
	closeLine(s.blueLamp)
	return errs.Aggregate()
}
