package mailtm

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// pacer is a serialized minimum-interval gate shared by every outbound call.
// It holds a single last-request watermark so the client as a whole never
// exceeds the provider's tolerated request rate, regardless of how many
// callers are in flight.
type pacer struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	interval time.Duration
	last     time.Time
}

func newPacer(clock clockwork.Clock, interval time.Duration) *pacer {
	return &pacer{clock: clock, interval: interval}
}

// wait blocks until at least the configured interval has passed since the
// previous request was admitted, then claims the watermark. A zero interval
// admits immediately.
func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	next := p.last.Add(p.interval)
	if now.Before(next) {
		timer := p.clock.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
		}
	}

	p.last = p.clock.Now()
	return nil
}
