package mqtt

import (
	"io"
	"sync"

	"github.com/golang/glog"
)

// Topic suffixes under boards/<id>/.
const (
	cmdTopic  = "cmd"  // console -> board, raw frame bytes
	respTopic = "resp" // board -> console, raw ping acks
	metaTopic = "meta" // retained board metadata
)

func boardTopic(boardID, suffix string) string {
	return "boards/" + boardID + "/" + suffix
}

// ReadWriter adapts a pair of topics into the byte stream the frame
// decoder consumes. Payloads arrive whole but are handed out byte by
// byte; frame boundaries need not align with message boundaries.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	recvCh    chan []byte
	pending   []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// NewReadWriter creates a ReadWriter on the Queue.
func NewReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:  q,
		recvCh: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (rw *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	rw.SubTopic, rw.PubTopic = sub, pub
	return rw
}

// ForBoard sets topics using the board-side convention:
// commands in, responses out.
func (rw *ReadWriter) ForBoard(boardID string) *ReadWriter {
	return rw.WithTopics(boardTopic(boardID, cmdTopic), boardTopic(boardID, respTopic))
}

// ForConsole sets topics using the console-side convention:
// responses in, commands out.
func (rw *ReadWriter) ForConsole(boardID string) *ReadWriter {
	return rw.WithTopics(boardTopic(boardID, respTopic), boardTopic(boardID, cmdTopic))
}

// Open subscribes the inbound topic.
func (rw *ReadWriter) Open() error {
	return rw.Queue.Sub(rw.SubTopic, rw.handleMsg)
}

// Read implements io.Reader, blocking until bytes arrive.
func (rw *ReadWriter) Read(p []byte) (int, error) {
	for len(rw.pending) == 0 {
		select {
		case payload := <-rw.recvCh:
			rw.pending = payload
		case <-rw.closed:
			return 0, io.EOF
		}
	}
	n := copy(p, rw.pending)
	rw.pending = rw.pending[n:]
	return n, nil
}

// Write implements io.Writer.
func (rw *ReadWriter) Write(p []byte) (int, error) {
	if err := rw.Queue.Pub(rw.PubTopic, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close implements io.Closer, unblocking Read.
func (rw *ReadWriter) Close() error {
	rw.closeOnce.Do(func() { close(rw.closed) })
	return nil
}

func (rw *ReadWriter) handleMsg(_ string, payload []byte) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	select {
	case rw.recvCh <- buf:
	case <-rw.closed:
	default:
		glog.V(4).Info("inbound queue full, payload dropped")
	}
}
