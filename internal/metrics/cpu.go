package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// measurementWindow is the interval CPU utilization is averaged over. The
// blocking measurement doubles as the sampling loop's pacing for this kind.
const measurementWindow = time.Second

// CPUSampler reports system-wide processor utilization averaged over a
// one-second window.
type CPUSampler struct{}

// Sample blocks for the measurement window and returns total CPU usage.
func (s *CPUSampler) Sample(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, measurementWindow, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("no cpu utilization data")
	}
	return clampFloat(percents[0], 0, 100), nil
}

// Blocking reports that the CPU measurement window paces the loop.
func (s *CPUSampler) Blocking() bool { return true }
