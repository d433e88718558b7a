// Package poller implements the caller-owned polling loop used to simulate
// realtime message delivery. The domain services expose plain queries; the
// repeat-and-fetch policy lives here, on the consumer side.
package poller

import (
	"context"
	"sync"
	"time"
)

// FetchFunc performs one poll. The returned value is handed to the
// consumer's apply callback unless the poller was stopped in the meantime.
type FetchFunc func(ctx context.Context) (interface{}, error)

// ApplyFunc consumes the result of a successful fetch.
type ApplyFunc func(result interface{})

// Poller repeatedly invokes a fetch function on a fixed interval until
// stopped. Fetches that complete after Stop are discarded, never applied.
type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// New creates a poller. interval must be positive.
func New(interval time.Duration, fetch FetchFunc, apply ApplyFunc) *Poller {
	return &Poller{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
	}
}

// Start begins polling. The first fetch fires immediately, then once per
// interval. Start is a no-op on an already started or stopped poller.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || p.stopped {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	result, err := p.fetch(ctx)
	if err != nil {
		// Failures surface once per poll and are not retried early.
		return
	}

	// A fetch may have been in flight while Stop was called; its result
	// must be discarded rather than applied to a torn-down view.
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped || ctx.Err() != nil {
		return
	}

	p.apply(result)
}

// Stop cancels the loop and waits for the current iteration to finish. No
// further fetch results are applied after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
