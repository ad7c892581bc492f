package sh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robotalks/scoreboard.go/pkg/wire"
)

// ErrPingTimeout indicates the board did not acknowledge in time.
var ErrPingTimeout = errors.New("ping timeout")

// Conn is an open link to a board. Replies (there is only the ping
// ack) are drained into a byte channel by a background reader.
type Conn struct {
	name     string
	rwc      io.ReadWriteCloser
	recvCh   chan byte
	sendLock sync.Mutex
}

func newConn(name string, rwc io.ReadWriteCloser) *Conn {
	c := &Conn{name: name, rwc: rwc, recvCh: make(chan byte, 64)}
	go c.readLoop()
	return c
}

// Name retrieves the link name for the prompt.
func (c *Conn) Name() string {
	return c.name
}

// Send encodes and writes a frame.
func (c *Conn) Send(f *wire.Frame) error {
	c.sendLock.Lock()
	defer c.sendLock.Unlock()
	_, err := f.WriteTo(c.rwc)
	return err
}

// Ping sends OpPing and waits for the raw 3-byte acknowledgement.
// Stale reply bytes from earlier probes are discarded first.
func (c *Conn) Ping(timeout time.Duration) error {
	for {
		select {
		case <-c.recvCh:
			continue
		default:
		}
		break
	}
	if err := c.Send(wire.PingFrame()); err != nil {
		return err
	}
	deadline := time.After(timeout)
	var ack [3]byte
	for i := range ack {
		select {
		case b := <-c.recvCh:
			ack[i] = b
		case <-deadline:
			return ErrPingTimeout
		}
	}
	if !bytes.Equal(ack[:], wire.PingAck) {
		return fmt.Errorf("unexpected ack % x", ack)
	}
	return nil
}

// Close implements io.Closer.
func (c *Conn) Close() error {
	return c.rwc.Close()
}

func (c *Conn) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := c.rwc.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case c.recvCh <- buf[0]:
		default:
			// nobody waiting for replies, drop
		}
	}
}
