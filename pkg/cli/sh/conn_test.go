package sh

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard.go/pkg/wire"
)

func TestConnPing(t *testing.T) {
	console, board := net.Pipe()
	defer board.Close()

	c := newConn("test", console)
	defer c.Close()

	go func() {
		buf := make([]byte, 16)
		n, err := board.Read(buf)
		if err != nil {
			return
		}
		parser := &wire.Parser{}
		for _, b := range buf[:n] {
			if pr := parser.Parse(b); pr.Frame != nil && pr.Frame.Opcode == wire.OpPing {
				board.Write(wire.PingAck)
			}
		}
	}()

	require.NoError(t, c.Ping(time.Second))
}

func TestConnPingTimeout(t *testing.T) {
	console, board := net.Pipe()
	defer board.Close()

	c := newConn("test", console)
	defer c.Close()

	go func() {
		buf := make([]byte, 16)
		board.Read(buf)
	}()

	require.Equal(t, ErrPingTimeout, c.Ping(50*time.Millisecond))
}

func TestConnPingBadAck(t *testing.T) {
	console, board := net.Pipe()
	defer board.Close()

	c := newConn("test", console)
	defer c.Close()

	go func() {
		buf := make([]byte, 16)
		if _, err := board.Read(buf); err == nil {
			board.Write([]byte{0xAA, 0xDD, 0x55})
		}
	}()

	require.Error(t, c.Ping(time.Second))
}
