// Package metrics provides normalized system-resource samplers backed by
// gopsutil. Each sampler yields one usage value in [0,100] per call.
package metrics

import (
	"context"
	"fmt"
	"math"
)

// Kind identifies which system resource drives the animation.
type Kind string

const (
	KindCPU     Kind = "cpu"
	KindMemory  Kind = "memory"
	KindNetwork Kind = "network"
)

// Valid reports whether the kind is one of the supported metrics.
func (k Kind) Valid() bool {
	switch k {
	case KindCPU, KindMemory, KindNetwork:
		return true
	}
	return false
}

// ParseKind converts a stored or user-supplied string into a Kind.
func ParseKind(v string) (Kind, error) {
	k := Kind(v)
	if !k.Valid() {
		return "", fmt.Errorf("unknown metric kind %q", v)
	}
	return k, nil
}

// Sampler produces one normalized usage reading per call.
type Sampler interface {
	// Sample returns usage in [0,100] for the active metric.
	Sample(ctx context.Context) (float64, error)
	// Blocking reports whether Sample itself blocks for the measurement
	// window. Blocking samplers pace the sampling loop; the others need an
	// explicit delay between iterations.
	Blocking() bool
}

// NewSampler constructs the sampler for a metric kind. Unknown kinds fall
// back to CPU, matching the persisted-config default.
func NewSampler(kind Kind) Sampler {
	switch kind {
	case KindMemory:
		return &MemorySampler{}
	case KindNetwork:
		return NewNetworkSampler()
	}
	return &CPUSampler{}
}

func clampFloat(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
