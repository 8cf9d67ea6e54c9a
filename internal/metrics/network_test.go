package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeCounters returns a sampler whose counter source and clock are driven
// by the test.
func fakeCounters(t *testing.T) (*NetworkSampler, *uint64, *uint64, *time.Time) {
	t.Helper()
	recv := uint64(0)
	sent := uint64(0)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewNetworkSampler()
	s.counters = func(ctx context.Context) (uint64, uint64, error) {
		return recv, sent, nil
	}
	s.now = func() time.Time { return now }
	return s, &recv, &sent, &now
}

func TestNetworkSamplerFirstCallSeedsBaseline(t *testing.T) {
	s, recv, _, _ := fakeCounters(t)
	*recv = 123456

	usage, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if usage != 0 {
		t.Fatalf("first sample = %v, want 0", usage)
	}
	if !s.hasBaseline {
		t.Fatal("baseline not seeded")
	}
}

func TestNetworkSamplerTenMiBPerSecondSaturates(t *testing.T) {
	s, recv, _, now := fakeCounters(t)

	if _, err := s.Sample(context.Background()); err != nil {
		t.Fatalf("seed sample: %v", err)
	}

	*recv = 10 * 1024 * 1024 // 10 MiB received, nothing sent
	*now = now.Add(time.Second)

	usage, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if usage != 100 {
		t.Fatalf("usage = %v, want exactly 100", usage)
	}
}

func TestNetworkSamplerClampsAboveSaturation(t *testing.T) {
	s, recv, sent, now := fakeCounters(t)
	_, _ = s.Sample(context.Background())

	*recv = 500 * 1024 * 1024
	*sent = 500 * 1024 * 1024
	*now = now.Add(time.Second)

	usage, _ := s.Sample(context.Background())
	if usage != 100 {
		t.Fatalf("usage = %v, want clamp to 100", usage)
	}
}

func TestNetworkSamplerZeroElapsedKeepsBaseline(t *testing.T) {
	s, recv, _, _ := fakeCounters(t)
	_, _ = s.Sample(context.Background())
	baselineAt := s.lastAt
	baselineRecv := s.lastRecv

	*recv = 1 << 30 // clock does not advance

	usage, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if usage != 0 {
		t.Fatalf("usage = %v, want 0 on zero elapsed", usage)
	}
	if s.lastAt != baselineAt || s.lastRecv != baselineRecv {
		t.Fatal("baseline mutated on zero-elapsed sample")
	}
}

func TestNetworkSamplerCounterResetYieldsZeroDelta(t *testing.T) {
	s, recv, sent, now := fakeCounters(t)
	*recv = 1 << 20
	*sent = 1 << 20
	_, _ = s.Sample(context.Background())

	*recv = 0 // interface re-enumerated
	*sent = 512
	*now = now.Add(time.Second)

	usage, _ := s.Sample(context.Background())
	if usage < 0 || usage > 100 {
		t.Fatalf("usage = %v, want within [0,100]", usage)
	}
	if usage > 1 {
		t.Fatalf("usage = %v, reset direction should contribute zero delta", usage)
	}
}

func TestNetworkSamplerPropagatesCounterErrors(t *testing.T) {
	s := NewNetworkSampler()
	s.counters = func(ctx context.Context) (uint64, uint64, error) {
		return 0, 0, errors.New("io counters unavailable")
	}
	if _, err := s.Sample(context.Background()); err == nil {
		t.Fatal("expected error from counter source")
	}
}

func TestNewSamplerKinds(t *testing.T) {
	if _, ok := NewSampler(KindCPU).(*CPUSampler); !ok {
		t.Error("KindCPU should build a CPUSampler")
	}
	if _, ok := NewSampler(KindMemory).(*MemorySampler); !ok {
		t.Error("KindMemory should build a MemorySampler")
	}
	if _, ok := NewSampler(KindNetwork).(*NetworkSampler); !ok {
		t.Error("KindNetwork should build a NetworkSampler")
	}
	if _, ok := NewSampler(Kind("bogus")).(*CPUSampler); !ok {
		t.Error("unknown kinds should fall back to CPU")
	}
}

func TestParseKind(t *testing.T) {
	for _, v := range []string{"cpu", "memory", "network"} {
		if _, err := ParseKind(v); err != nil {
			t.Errorf("ParseKind(%q): %v", v, err)
		}
	}
	if _, err := ParseKind("disk"); err == nil {
		t.Error("ParseKind should reject unsupported kinds")
	}
}
