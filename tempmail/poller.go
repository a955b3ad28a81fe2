package tempmail

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/suaib92/tempmailr/mailtm"
)

// DefaultPollInterval is how often an active session's inbox is re-listed.
const DefaultPollInterval = 10 * time.Second

// Poller keeps a message-summary snapshot reasonably fresh for one session.
// There is no push channel from the provider, so it lists the inbox
// immediately on Start and then on a fixed interval until Stop. Each
// successful poll replaces the snapshot wholesale - the provider is the
// source of truth for current inbox state.
type Poller struct {
	client   MailClient
	session  Session
	interval time.Duration
	clock    clockwork.Clock

	mu           sync.Mutex
	summaries    []mailtm.MessageSummary
	seen         map[string]bool
	lastErr      error
	nextSeq      int
	completedSeq int
	started      bool

	cancel context.CancelFunc
	done   chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithPollInterval overrides the polling interval.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithPollerClock replaces the clock driving the interval.
func WithPollerClock(clock clockwork.Clock) PollerOption {
	return func(p *Poller) { p.clock = clock }
}

// NewPoller returns a poller for the given session. It does nothing until
// Start is called.
func NewPoller(client MailClient, session Session, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		session:  session,
		interval: DefaultPollInterval,
		clock:    clockwork.NewRealClock(),
		seen:     make(map[string]bool),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start polls once immediately and then keeps polling on the configured
// interval until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go p.loop(ctx)
}

// Stop cancels the polling loop and waits for it to exit. After Stop returns
// no further requests are issued with the session's token.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	started := p.started
	p.mu.Unlock()

	if !started || cancel == nil {
		return
	}

	cancel()
	<-p.done
}

// Refresh forces an immediate poll, for a user-driven "refresh now".
func (p *Poller) Refresh(ctx context.Context) error {
	return p.pollOnce(ctx)
}

// Snapshot returns the last completed poll's summaries, newest first, with
// locally tracked seen flags applied.
func (p *Poller) Snapshot() []mailtm.MessageSummary {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]mailtm.MessageSummary, len(p.summaries))
	copy(out, p.summaries)
	for i := range out {
		if p.seen[out[i].ID] {
			out[i].Seen = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// Err returns the most recent poll failure, or nil if the last completed poll
// succeeded. A failed poll never clears the existing snapshot.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// OpenMessage fetches the full message and marks its summary seen. The seen
// flag is cosmetic and local only - it is never written back to the provider.
func (p *Poller) OpenMessage(ctx context.Context, id string) (mailtm.MessageDetail, error) {
	detail, err := p.client.GetMessage(ctx, p.session.Token, id)
	if err != nil {
		return mailtm.MessageDetail{}, err
	}

	p.mu.Lock()
	p.seen[id] = true
	p.mu.Unlock()

	return detail, nil
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	if err := p.pollOnce(ctx); err != nil {
		log.Printf("Poller.loop: initial poll failed: %v", err)
	}

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := p.pollOnce(ctx); err != nil {
				log.Printf("Poller.loop: poll failed: %v", err)
			}
		}
	}
}

// pollOnce lists the inbox and installs the result if no later-started poll
// has completed in the meantime. Polls can overlap via Refresh, and only the
// last completed one is authoritative.
func (p *Poller) pollOnce(ctx context.Context) error {
	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.mu.Unlock()

	summaries, err := p.client.ListMessages(ctx, p.session.Token)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.completedSeq {
		return err
	}
	p.completedSeq = seq

	if err != nil {
		p.lastErr = err
		return err
	}

	p.lastErr = nil
	p.summaries = summaries
	return nil
}
