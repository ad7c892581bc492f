//go:build linux

// Package serial opens a tty configured for the scoreboard link.
package serial

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Config selects the device and line rate. The line discipline is
// fixed at raw 8N1, matching the board's UART.
type Config struct {
	Device string
	Baud   int
}

// DefaultBaud matches the board firmware's UART rate.
const DefaultBaud = 9600

var baudFlags = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

// Port is an open serial device.
type Port struct {
	file *os.File
}

// Open opens the device and applies raw 8N1 termios settings.
func Open(conf Config) (*Port, error) {
	baud := conf.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	speed, ok := baudFlags[baud]
	if !ok {
		return nil, fmt.Errorf("unsupported baud rate %d", baud)
	}
	file, err := os.OpenFile(conf.Device, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	fd := int(file.Fd())
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("get termios: %v", err)
	}

	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CBAUD
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	termios.Ispeed = speed
	termios.Ospeed = speed

	// block for one byte at a time, no read timeout
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		file.Close()
		return nil, fmt.Errorf("set termios: %v", err)
	}
	return &Port{file: file}, nil
}

// Read implements io.Reader.
func (p *Port) Read(b []byte) (int, error) {
	return p.file.Read(b)
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.file.Close()
}
