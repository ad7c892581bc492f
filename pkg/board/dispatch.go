package board

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/scoreboard.go/pkg/wire"
)

// LampSink drives the two alliance indicator lamps.
type LampSink interface {
	SetLamps(red, blue bool)
}

// LampFunc is the func form of LampSink.
type LampFunc func(red, blue bool)

// SetLamps implements LampSink.
func (f LampFunc) SetLamps(red, blue bool) {
	f(red, blue)
}

// Dispatcher applies validated frames to the scoreboard state.
//
// State is mutated only by HandleFrame, which runs on the port's
// foreground goroutine. The render side never sees the state itself:
// it reads the last published Buffer, swapped in whole. A command
// landing between two render ticks is therefore visible either
// entirely or not at all, never as a torn mix of digits.
type Dispatcher struct {
	Layout Layout
	Lamps  LampSink

	state State
	buf   atomic.Pointer[Buffer]
}

// NewDispatcher creates a Dispatcher with the power-on state published.
func NewDispatcher(layout Layout) *Dispatcher {
	d := &Dispatcher{Layout: layout, state: DefaultState()}
	d.publish()
	return d
}

// Buffer returns the last published display buffer.
func (d *Dispatcher) Buffer() *Buffer {
	return d.buf.Load()
}

// State returns the current state. Foreground use only: it is not
// synchronized against HandleFrame.
func (d *Dispatcher) State() State {
	return d.state
}

// HandleFrame implements wire.FrameHandler.
func (d *Dispatcher) HandleFrame(ctx context.Context, f *wire.Frame, reply io.Writer) {
	switch f.Opcode {
	case wire.OpUpdateScore:
		if len(f.Payload) >= 2 {
			d.state.RedScore = f.Payload[0]
			d.state.BlueScore = f.Payload[1]
			d.publish()
		}
	case wire.OpUpdateTimer:
		if len(f.Payload) >= 2 {
			d.state.TimerMinutes = f.Payload[0]
			d.state.TimerSeconds = f.Payload[1]
			d.publish()
		}
	case wire.OpStartMatch:
		d.state.MatchActive = true
		d.state.RedIndicator = true
		d.state.BlueIndicator = true
		d.refreshLamps()
	case wire.OpStopMatch:
		d.state.MatchActive = false
		d.state.RedIndicator = false
		d.state.BlueIndicator = false
		d.refreshLamps()
	case wire.OpResetMatch:
		d.state = DefaultState()
		d.publish()
		d.refreshLamps()
	case wire.OpPing:
		if reply != nil {
			if _, err := reply.Write(wire.PingAck); err != nil {
				glog.Warningf("ping ack write: %v", err)
			}
		}
	case wire.OpSetIndicator:
		if len(f.Payload) >= 2 {
			switch f.Payload[0] {
			case wire.AllianceRed:
				d.state.RedIndicator = f.Payload[1] != 0
			case wire.AllianceBlue:
				d.state.BlueIndicator = f.Payload[1] != 0
			default:
				// unknown selector, no-op
				return
			}
			d.refreshLamps()
		}
	default:
		glog.V(4).Infof("unknown opcode %#02x", f.Opcode)
	}
}

func (d *Dispatcher) publish() {
	d.buf.Store(BuildBuffer(d.state, d.Layout))
}

func (d *Dispatcher) refreshLamps() {
	if d.Lamps != nil {
		d.Lamps.SetLamps(d.state.RedLamp(), d.state.BlueLamp())
	}
}
