package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// TickHandler is invoked on every tick of a Ticker.
// Handlers share the ticker goroutine and must complete well within
// one period: they must never block and never allocate.
type TickHandler interface {
	Tick(now time.Time)
}

// TickFunc is the func form of TickHandler.
type TickFunc func(now time.Time)

// Tick implements TickHandler.
func (f TickFunc) Tick(now time.Time) {
	f(now)
}
