package poller

import (
	"sync"
	"time"
)

// MetricsCollector defines the interface for collecting poll metrics
type MetricsCollector interface {
	RecordPoll(success bool, at time.Time, duration time.Duration)
	RecordPollSkipped()
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordPoll(success bool, at time.Time, duration time.Duration) {}
func (n *NoOpMetricsCollector) RecordPollSkipped()                                          {}

// Stats is a point in time copy of the poll counters.
type Stats struct {
	Succeeded    uint64        `json:"succeeded"`
	Failed       uint64        `json:"failed"`
	Skipped      uint64        `json:"skipped"`
	LastSuccess  time.Time     `json:"lastSuccess"`
	LastDuration time.Duration `json:"lastDuration"`
}

// Counters keeps poll outcomes in memory for the stats endpoint.
type Counters struct {
	mu    sync.Mutex
	stats Stats
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) RecordPoll(success bool, at time.Time, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastDuration = duration
	if !success {
		c.stats.Failed++
		return
	}
	c.stats.Succeeded++
	c.stats.LastSuccess = at
}

func (c *Counters) RecordPollSkipped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Skipped++
}

func (c *Counters) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
