package schedule

import (
	"sync"
	"time"

	"runcat/internal/metrics"
)

// Schedule is the single point of truth shared between the sampling loop,
// the animation driver, and the control surface. Every field access happens
// under one lock; no operation does I/O while holding it.
type Schedule struct {
	mu       sync.Mutex
	interval time.Duration
	metric   metrics.Kind
	speed    Speed
}

// New constructs a Schedule with the given selection and no published
// interval yet. The lifecycle controller publishes an initial interval
// before the loops start.
func New(metric metrics.Kind, speed Speed) *Schedule {
	return &Schedule{metric: metric, speed: speed}
}

// PublishInterval stores the latest classified interval. Non-positive
// values are dropped so readers never observe an interval <= 0 once one
// has been published. Last writer wins; there is no history.
func (s *Schedule) PublishInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// Interval returns the most recently published frame interval.
func (s *Schedule) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetMetric switches the active metric source. Takes effect on the
// sampling loop's next iteration.
func (s *Schedule) SetMetric(m metrics.Kind) {
	s.mu.Lock()
	s.metric = m
	s.mu.Unlock()
}

// SetSpeed switches the active speed preset.
func (s *Schedule) SetSpeed(sp Speed) {
	s.mu.Lock()
	s.speed = sp
	s.mu.Unlock()
}

// Snapshot returns a consistent view of the current metric and speed
// selection, taken under the lock in one step.
func (s *Schedule) Snapshot() (metrics.Kind, Speed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metric, s.speed
}
