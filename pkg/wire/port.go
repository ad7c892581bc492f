package wire

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"
)

// FrameHandler is called when a validated frame is received.
// reply writes raw bytes back to the sending transport.
type FrameHandler interface {
	HandleFrame(ctx context.Context, f *Frame, reply io.Writer)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(ctx context.Context, f *Frame, reply io.Writer)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, frame *Frame, reply io.Writer) {
	f(ctx, frame, reply)
}

// Stats counts link activity since the port started.
type Stats struct {
	Frames    uint64 // validated frames delivered
	Drops     uint64 // frame attempts abandoned
	Discarded uint64 // bytes skipped hunting for a start marker
}

// Port decodes frames from a byte transport.
//
// The read of each byte blocks until the transport delivers it. A
// frame whose terminating bytes never arrive therefore blocks the
// port indefinitely; there is deliberately no inter-byte timeout.
// Canceling the context closes the transport to unblock the read.
type Port struct {
	ReadWriter io.ReadWriter
	Handler    FrameHandler

	parser    Parser
	stats     Stats
	statsLock sync.Mutex
	sendLock  sync.Mutex
}

// NewPort creates a Port over a byte transport.
func NewPort(rw io.ReadWriter) *Port {
	return &Port{ReadWriter: rw}
}

// Name implements Named.
func (p *Port) Name() string {
	return "port"
}

// Stats returns a copy of the link counters.
func (p *Port) Stats() Stats {
	p.statsLock.Lock()
	defer p.statsLock.Unlock()
	return p.stats
}

// Send encodes and writes a frame. Safe for concurrent use.
func (p *Port) Send(f *Frame) error {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	_, err := f.WriteTo(p.ReadWriter)
	return err
}

// Run implements Runnable. It reads the transport byte by byte,
// feeding the parser and dispatching validated frames. It returns
// when the transport fails or the context is canceled.
func (p *Port) Run(ctx context.Context) error {
	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go p.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			p.apply(ctx, p.parser.Parse(b))
		case err := <-errCh:
			return err
		case <-ctx.Done():
			if closer, ok := p.ReadWriter.(io.Closer); ok {
				closer.Close()
			}
			return ctx.Err()
		}
	}
}

func (p *Port) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := p.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Port) apply(ctx context.Context, pr ParseResult) {
	p.statsLock.Lock()
	if pr.Discarded {
		p.stats.Discarded++
	}
	if pr.Drop != DropNone {
		p.stats.Drops++
	}
	if pr.Frame != nil {
		p.stats.Frames++
	}
	p.statsLock.Unlock()

	if pr.Drop != DropNone {
		glog.V(4).Infof("frame dropped (reason=%d)", pr.Drop)
	}
	if pr.Frame != nil {
		glog.V(4).Infof("frame opcode=%#02x len=%d", pr.Frame.Opcode, len(pr.Frame.Payload))
		if h := p.Handler; h != nil {
			h.HandleFrame(ctx, pr.Frame, p)
		}
	}
}

// Write implements io.Writer for replies, serialized with Send.
func (p *Port) Write(b []byte) (int, error) {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.Write(b)
}
