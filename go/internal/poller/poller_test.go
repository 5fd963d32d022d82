package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
)

const (
	interval = time.Second
	waitFor  = 2 * time.Second
	tick     = 5 * time.Millisecond
)

type fakeFetcher struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	state   models.BoardState
}

func (f *fakeFetcher) GetBoard(ctx context.Context) (models.BoardState, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return models.BoardState{}, ctx.Err()
		}
	}
	if f.err != nil {
		return models.BoardState{}, f.err
	}
	return f.state, nil
}

type harness struct {
	poller   *Poller
	clock    *clockwork.FakeClock
	fetcher  *fakeFetcher
	counters *Counters
	boards   chan models.BoardState
}

func newHarness(t *testing.T, fetcher *fakeFetcher) *harness {
	t.Helper()
	h := &harness{
		clock:    clockwork.NewFakeClock(),
		fetcher:  fetcher,
		counters: NewCounters(),
		boards:   make(chan models.BoardState, 16),
	}
	h.poller = NewPoller(fetcher, func(b models.BoardState) { h.boards <- b },
		Config{Interval: interval, RequestTimeout: time.Minute},
		WithClock(h.clock), WithMetrics(h.counters))
	return h
}

func (h *harness) nextBoard(t *testing.T) models.BoardState {
	t.Helper()
	select {
	case b := <-h.boards:
		return b
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for a board")
		return models.BoardState{}
	}
}

func (h *harness) waitIdle(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return !h.poller.Pending() }, waitFor, tick)
}

func TestPollsImmediatelyAndOnEveryTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{state: models.BoardState{SelectedNumber: 8}}
	h := newHarness(t, fetcher)
	require.NoError(t, h.poller.Start(ctx))
	t.Cleanup(func() { _ = h.poller.Stop() })

	assert.Equal(t, 8, h.nextBoard(t).SelectedNumber)

	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
	for i := 0; i < 3; i++ {
		h.waitIdle(t)
		h.clock.Advance(interval)
		h.nextBoard(t)
	}

	assert.EqualValues(t, 4, fetcher.calls.Load())
	assert.EqualValues(t, 4, h.counters.Snapshot().Succeeded)
	assert.Zero(t, h.counters.Snapshot().Skipped)
}

func TestSkipsTickWhilePollPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{release: make(chan struct{})}
	h := newHarness(t, fetcher)
	require.NoError(t, h.poller.Start(ctx))
	t.Cleanup(func() { _ = h.poller.Stop() })

	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, waitFor, tick)
	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))

	h.clock.Advance(interval)
	require.Eventually(t, func() bool { return h.counters.Snapshot().Skipped == 1 }, waitFor, tick)
	assert.EqualValues(t, 1, fetcher.calls.Load())
	assert.True(t, h.poller.Pending())

	close(fetcher.release)
	h.nextBoard(t)
	h.waitIdle(t)

	h.clock.Advance(interval)
	h.nextBoard(t)
	assert.EqualValues(t, 2, fetcher.calls.Load())
	assert.EqualValues(t, 1, h.counters.Snapshot().Skipped)
}

func TestFailedPollLeavesSinkUntouched(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	h := newHarness(t, fetcher)
	require.NoError(t, h.poller.Start(ctx))
	t.Cleanup(func() { _ = h.poller.Stop() })

	require.Eventually(t, func() bool { return h.counters.Snapshot().Failed == 1 }, waitFor, tick)
	assert.Empty(t, h.boards)
	assert.Zero(t, h.counters.Snapshot().Succeeded)
	assert.True(t, h.counters.Snapshot().LastSuccess.IsZero())
}

func TestStartStopLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, &fakeFetcher{})

	assert.ErrorIs(t, h.poller.Stop(), ErrNotRunning)

	require.NoError(t, h.poller.Start(ctx))
	assert.ErrorIs(t, h.poller.Start(ctx), ErrAlreadyRunning)
	require.NoError(t, h.poller.Stop())
	assert.ErrorIs(t, h.poller.Stop(), ErrNotRunning)

	require.NoError(t, h.poller.Start(ctx))
	require.NoError(t, h.poller.Stop())
}

func TestContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	h := newHarness(t, &fakeFetcher{})
	require.NoError(t, h.poller.Start(ctx))
	h.nextBoard(t)

	cancel()

	done := make(chan struct{})
	go func() {
		h.poller.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("poll loop did not exit after cancel")
	}
}

func TestStopDiscardsInFlightResult(t *testing.T) {
	fetcher := &fakeFetcher{release: make(chan struct{})}
	h := newHarness(t, fetcher)
	require.NoError(t, h.poller.Start(context.Background()))
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, waitFor, tick)

	stopped := make(chan error, 1)
	go func() { stopped <- h.poller.Stop() }()
	require.Eventually(t, func() bool {
		h.poller.mu.Lock()
		defer h.poller.mu.Unlock()
		return !h.poller.running
	}, waitFor, tick)

	close(fetcher.release)
	require.NoError(t, <-stopped)
	assert.Empty(t, h.boards)
}

func TestNewPollerDefaults(t *testing.T) {
	p := NewPoller(&fakeFetcher{}, func(models.BoardState) {}, Config{})
	assert.Equal(t, DefaultConfig(), p.config)
	assert.IsType(t, &NoOpMetricsCollector{}, p.metrics)
}
