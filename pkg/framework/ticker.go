package framework

import (
	"context"
	"time"
)

// Ticker drives TickHandlers at a fixed period. It replaces a hardware
// timer interrupt on hosted targets: handlers run on the ticker
// goroutine, preempting nothing and owned by nobody else, so they must
// observe shared state only through atomically published snapshots.
type Ticker struct {
	Period   time.Duration
	handlers []TickHandler
}

// DefaultTickPeriod is used when Period is unset.
const DefaultTickPeriod = time.Millisecond

// NewTicker creates a Ticker with the given period.
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{Period: period}
}

// Add registers handlers. It must not be called after Run starts.
func (t *Ticker) Add(handlers ...TickHandler) *Ticker {
	t.handlers = append(t.handlers, handlers...)
	return t
}

// Name implements Named.
func (t *Ticker) Name() string {
	return "ticker"
}

// Run implements Runnable. Missed ticks are dropped, not replayed.
func (t *Ticker) Run(ctx context.Context) error {
	period := t.Period
	if period == 0 {
		period = DefaultTickPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			for _, h := range t.handlers {
				h.Tick(now)
			}
		}
	}
}
