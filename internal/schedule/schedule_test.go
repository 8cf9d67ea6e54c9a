package schedule

import (
	"sync"
	"testing"
	"time"

	"runcat/internal/metrics"
)

func TestScheduleRejectsNonPositiveIntervals(t *testing.T) {
	s := New(metrics.KindCPU, SpeedMedium)
	s.PublishInterval(100 * time.Millisecond)
	s.PublishInterval(0)
	s.PublishInterval(-time.Second)
	if got := s.Interval(); got != 100*time.Millisecond {
		t.Fatalf("interval = %v, want 100ms", got)
	}
}

func TestScheduleSnapshotConsistency(t *testing.T) {
	s := New(metrics.KindNetwork, SpeedFast)
	kind, speed := s.Snapshot()
	if kind != metrics.KindNetwork || speed != SpeedFast {
		t.Fatalf("snapshot = (%v, %v)", kind, speed)
	}
	s.SetMetric(metrics.KindMemory)
	s.SetSpeed(SpeedSlow)
	kind, speed = s.Snapshot()
	if kind != metrics.KindMemory || speed != SpeedSlow {
		t.Fatalf("snapshot after update = (%v, %v)", kind, speed)
	}
}

// Readers must only ever observe values that were actually published,
// regardless of how publishes and reads interleave.
func TestScheduleConcurrentReadsSeeOnlyPublishedValues(t *testing.T) {
	s := New(metrics.KindCPU, SpeedMedium)

	published := []time.Duration{
		80 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		400 * time.Millisecond,
	}
	valid := make(map[time.Duration]bool, len(published)+1)
	valid[0] = true // before the first publish
	for _, d := range published {
		valid[d] = true
	}

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			s.PublishInterval(published[i%len(published)])
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				got := s.Interval()
				if !valid[got] {
					t.Errorf("observed unpublished interval %v", got)
					return
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}
