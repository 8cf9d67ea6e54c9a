// Package schedule holds the shared animation schedule: the speed
// classifier mapping usage samples to frame intervals, the speed presets,
// and the lock-guarded cell both background loops coordinate through.
package schedule

import (
	"fmt"
	"time"
)

// Speed is a named cadence preset selected by the user. Each preset scales
// the base interval table by a fixed multiplier.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
)

// Multiplier returns the scale factor applied to classified intervals.
// Unknown presets return 0, which Valid rejects before it ever reaches
// the classifier.
func (s Speed) Multiplier() float64 {
	switch s {
	case SpeedSlow:
		return 1.5
	case SpeedMedium:
		return 1.0
	case SpeedFast:
		return 0.5
	}
	return 0
}

// Valid reports whether the preset is a known speed with a positive multiplier.
func (s Speed) Valid() bool {
	return s.Multiplier() > 0
}

// ParseSpeed converts a stored or user-supplied string into a Speed.
func ParseSpeed(v string) (Speed, error) {
	s := Speed(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown speed preset %q", v)
	}
	return s, nil
}

// IntervalTable maps the five usage tiers to base frame intervals.
// Index 0 is the lowest-usage tier.
type IntervalTable [5]time.Duration

// baseIntervals is the default table: cadence speeds up as load rises.
var baseIntervals = IntervalTable{
	400 * time.Millisecond,
	300 * time.Millisecond,
	200 * time.Millisecond,
	100 * time.Millisecond,
	80 * time.Millisecond,
}

// NewIntervalTable returns the base table, reversed when positive
// correlation is configured so that higher usage slows the animation.
// The reversal happens once here, never per classification.
func NewIntervalTable(positiveCorrelation bool) IntervalTable {
	table := baseIntervals
	if positiveCorrelation {
		for i, j := 0, len(table)-1; i < j; i, j = i+1, j-1 {
			table[i], table[j] = table[j], table[i]
		}
	}
	return table
}

// tierFor partitions usage into five half-open buckets. A value exactly on
// a boundary belongs to the higher tier.
func tierFor(usage float64) int {
	switch {
	case usage < 10:
		return 0
	case usage < 20:
		return 1
	case usage < 40:
		return 2
	case usage < 60:
		return 3
	}
	return 4
}

// Classify maps a normalized usage sample to a frame interval. It is a pure
// function; multiplier validity is enforced at configuration time.
func Classify(usage float64, table IntervalTable, multiplier float64) time.Duration {
	return time.Duration(float64(table[tierFor(usage)]) * multiplier)
}
