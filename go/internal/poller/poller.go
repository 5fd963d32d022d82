// Package poller keeps the local board mirror in sync with the game server by
// fetching the board on a fixed interval.
package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
)

var (
	ErrAlreadyRunning = errors.New("poller already running")
	ErrNotRunning     = errors.New("poller not running")
)

// BoardFetcher is the slice of the game server client the poller needs.
type BoardFetcher interface {
	GetBoard(ctx context.Context) (models.BoardState, error)
}

// Sink receives every successfully fetched board.
type Sink func(models.BoardState)

type Config struct {
	Interval       time.Duration
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		RequestTimeout: 5 * time.Second,
	}
}

type Option func(*Poller)

// WithClock replaces the real clock, used by tests to drive ticks by hand.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Poller) {
		p.clock = clock
	}
}

func WithMetrics(metrics MetricsCollector) Option {
	return func(p *Poller) {
		p.metrics = metrics
	}
}

// Poller fetches the board once on start and then once per interval. A tick
// that finds the previous fetch still in flight is skipped.
type Poller struct {
	fetcher BoardFetcher
	sink    Sink
	config  Config
	clock   clockwork.Clock
	metrics MetricsCollector

	inFlight atomic.Bool

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPoller(fetcher BoardFetcher, sink Sink, cfg Config, opts ...Option) *Poller {
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}

	p := &Poller{
		fetcher: fetcher,
		sink:    sink,
		config:  cfg,
		clock:   clockwork.NewRealClock(),
		metrics: &NoOpMetricsCollector{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.running = true
	p.stopChan = make(chan struct{})
	stop := p.stopChan
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx, stop)

	log.Info().
		Dur("interval", p.config.Interval).
		Dur("request_timeout", p.config.RequestTimeout).
		Msg("board poller started")

	return nil
}

// Stop ends the loop and waits for any in-flight fetch to return.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()

	log.Info().Msg("board poller stopped")
	return nil
}

// Pending reports whether a fetch is currently in flight.
func (p *Poller) Pending() bool {
	return p.inFlight.Load()
}

func (p *Poller) run(ctx context.Context, stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := p.clock.NewTicker(p.config.Interval)
	defer ticker.Stop()

	// Poll immediately on start
	p.tick(ctx, stop)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.Chan():
			p.tick(ctx, stop)
		}
	}
}

func (p *Poller) tick(ctx context.Context, stop <-chan struct{}) {
	if !p.inFlight.CompareAndSwap(false, true) {
		log.Debug().Msg("previous board fetch still pending, skipping tick")
		p.metrics.RecordPollSkipped()
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)
		p.poll(ctx, stop)
	}()
}

func (p *Poller) poll(ctx context.Context, stop <-chan struct{}) {
	reqCtx, cancel := context.WithTimeout(ctx, p.config.RequestTimeout)
	defer cancel()

	start := p.clock.Now()
	state, err := p.fetcher.GetBoard(reqCtx)
	duration := p.clock.Since(start)

	if err != nil {
		p.metrics.RecordPoll(false, start, duration)
		log.Warn().Err(err).Dur("duration", duration).Msg("failed to fetch board")
		return
	}
	p.metrics.RecordPoll(true, start, duration)

	select {
	case <-ctx.Done():
		return
	case <-stop:
		return
	default:
	}

	p.sink(state)
}
