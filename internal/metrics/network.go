package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/net"
)

// networkScale maps MB/s of combined throughput onto the [0,100] usage
// range, saturating at 10 MB/s. The factor is inherited calibration, not a
// derived constant; tune it if the saturation point feels wrong.
const networkScale = 10

// NetworkSampler derives a throughput-based usage value from the delta of
// cumulative interface byte counters between calls. The baseline (previous
// counters and their timestamp) is owned by the sampler and never exposed.
type NetworkSampler struct {
	counters func(ctx context.Context) (recv, sent uint64, err error)
	now      func() time.Time

	lastRecv    uint64
	lastSent    uint64
	lastAt      time.Time
	hasBaseline bool
}

// NewNetworkSampler constructs a sampler with no baseline. The first Sample
// call returns 0 and only seeds the baseline.
func NewNetworkSampler() *NetworkSampler {
	return &NetworkSampler{
		counters: ioCounters,
		now:      time.Now,
	}
}

func ioCounters(ctx context.Context) (uint64, uint64, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	var recv, sent uint64
	for _, ctr := range stats {
		recv += ctr.BytesRecv
		sent += ctr.BytesSent
	}
	return recv, sent, nil
}

// Sample returns combined send+receive throughput since the previous call,
// in MB/s scaled by networkScale and clamped to [0,100].
func (s *NetworkSampler) Sample(ctx context.Context) (float64, error) {
	recv, sent, err := s.counters(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()

	if !s.hasBaseline {
		s.lastRecv, s.lastSent, s.lastAt = recv, sent, now
		s.hasBaseline = true
		return 0, nil
	}

	elapsed := now.Sub(s.lastAt).Seconds()
	if elapsed <= 0 {
		// Clock went backwards or the gap is below timer resolution.
		// Keep the existing baseline intact and report an idle sample.
		return 0, nil
	}

	// Counter resets (interface re-enumeration, driver restart) show up as
	// a decrease; treat the affected direction as zero delta.
	var deltaBytes float64
	if recv >= s.lastRecv {
		deltaBytes += float64(recv - s.lastRecv)
	}
	if sent >= s.lastSent {
		deltaBytes += float64(sent - s.lastSent)
	}

	s.lastRecv, s.lastSent, s.lastAt = recv, sent, now

	rate := deltaBytes / elapsed / 1024 / 1024 // MB/s
	return clampFloat(rate*networkScale, 0, 100), nil
}

// Blocking reports that counter reads are instantaneous.
func (s *NetworkSampler) Blocking() bool { return false }
