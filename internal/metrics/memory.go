package metrics

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemorySampler reports resident memory utilization as a percentage of
// total physical memory. Non-blocking.
type MemorySampler struct{}

// Sample returns the current memory usage percentage.
func (s *MemorySampler) Sample(ctx context.Context) (float64, error) {
	stats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if stats == nil {
		return 0, errors.New("no memory utilization data")
	}
	return clampFloat(stats.UsedPercent, 0, 100), nil
}

// Blocking reports that memory sampling is instantaneous.
func (s *MemorySampler) Blocking() bool { return false }
