//go:build !linux

package serial

import "errors"

// Config selects the device and line rate.
type Config struct {
	Device string
	Baud   int
}

// DefaultBaud matches the board firmware's UART rate.
const DefaultBaud = 9600

// Port is an open serial device.
type Port struct{}

// Open is unsupported on this platform.
func Open(conf Config) (*Port, error) {
	return nil, errors.New("serial is only supported on linux")
}

// Read implements io.Reader.
func (p *Port) Read(b []byte) (int, error) {
	return 0, errors.New("not open")
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	return 0, errors.New("not open")
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return nil
}
