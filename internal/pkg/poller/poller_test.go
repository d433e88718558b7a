package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoller_FetchesImmediatelyAndOnInterval(t *testing.T) {
	var fetches int64
	applied := make(chan interface{}, 16)

	p := New(10*time.Millisecond,
		func(ctx context.Context) (interface{}, error) {
			return atomic.AddInt64(&fetches, 1), nil
		},
		func(result interface{}) {
			applied <- result
		},
	)

	p.Start(context.Background())
	defer p.Stop()

	// First poll fires without waiting for a full interval.
	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("first poll did not fire")
	}

	// At least one more poll arrives on the ticker.
	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("no subsequent poll fired")
	}
}

func TestPoller_StopDiscardsInFlightResult(t *testing.T) {
	fetchStarted := make(chan struct{})
	release := make(chan struct{})
	var appliedCount int64

	p := New(time.Hour,
		func(ctx context.Context) (interface{}, error) {
			close(fetchStarted)
			<-release
			return "late", nil
		},
		func(result interface{}) {
			atomic.AddInt64(&appliedCount, 1)
		},
	)

	p.Start(context.Background())
	<-fetchStarted

	// Stop while the first fetch is still in flight, then let it finish.
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	p.Stop()

	assert.Zero(t, atomic.LoadInt64(&appliedCount), "in-flight result must be discarded after Stop")
}

func TestPoller_FetchErrorsAreNotApplied(t *testing.T) {
	var appliedCount int64

	p := New(5*time.Millisecond,
		func(ctx context.Context) (interface{}, error) {
			return nil, context.DeadlineExceeded
		},
		func(result interface{}) {
			atomic.AddInt64(&appliedCount, 1)
		},
	)

	p.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	assert.Zero(t, atomic.LoadInt64(&appliedCount))
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	p := New(time.Millisecond,
		func(ctx context.Context) (interface{}, error) { return nil, nil },
		func(interface{}) {},
	)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	// Restarting a stopped poller is a no-op.
	p.Start(context.Background())
	p.Stop()
}
