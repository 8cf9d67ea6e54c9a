package schedule

import (
	"testing"
	"time"
)

func TestSpeedMultipliers(t *testing.T) {
	cases := []struct {
		speed Speed
		want  float64
	}{
		{SpeedSlow, 1.5},
		{SpeedMedium, 1.0},
		{SpeedFast, 0.5},
	}
	for _, tc := range cases {
		if got := tc.speed.Multiplier(); got != tc.want {
			t.Errorf("%s multiplier = %v, want %v", tc.speed, got, tc.want)
		}
		if !tc.speed.Valid() {
			t.Errorf("%s should be valid", tc.speed)
		}
	}
	if Speed("turbo").Valid() {
		t.Error("unknown preset should be invalid")
	}
	if _, err := ParseSpeed("turbo"); err == nil {
		t.Error("ParseSpeed should reject unknown presets")
	}
}

func TestClassifyTierBoundaries(t *testing.T) {
	table := NewIntervalTable(false)

	cases := []struct {
		usage float64
		tier  int
	}{
		{0, 0},
		{9.999, 0},
		{10.0, 1},
		{19.999, 1},
		{20.0, 2},
		{39.999, 2},
		{40.0, 3},
		{59.999, 3},
		{60.0, 4},
		{100, 4},
	}
	for _, tc := range cases {
		got := Classify(tc.usage, table, 1.0)
		if got != table[tc.tier] {
			t.Errorf("Classify(%v) = %v, want tier %d (%v)", tc.usage, got, tc.tier, table[tc.tier])
		}
	}
}

func TestClassifyAppliesMultiplier(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		table := NewIntervalTable(reversed)
		for _, usage := range []float64{0, 5, 10, 15, 25, 45, 65, 99.9} {
			for _, m := range []float64{0.5, 1.0, 1.5} {
				want := time.Duration(float64(table[tierFor(usage)]) * m)
				if got := Classify(usage, table, m); got != want {
					t.Errorf("reversed=%v Classify(%v, m=%v) = %v, want %v", reversed, usage, m, got, want)
				}
			}
		}
	}
}

func TestIntervalTableOrdering(t *testing.T) {
	table := NewIntervalTable(false)
	for i := 1; i < len(table); i++ {
		if table[i] >= table[i-1] {
			t.Fatalf("base table must descend: table[%d]=%v >= table[%d]=%v", i, table[i], i-1, table[i-1])
		}
	}

	reversed := NewIntervalTable(true)
	for i := range table {
		if reversed[i] != table[len(table)-1-i] {
			t.Fatalf("reversed table mismatch at %d: %v vs %v", i, reversed[i], table[len(table)-1-i])
		}
	}
}

func TestBaseIntervalValues(t *testing.T) {
	table := NewIntervalTable(false)
	want := IntervalTable{
		400 * time.Millisecond,
		300 * time.Millisecond,
		200 * time.Millisecond,
		100 * time.Millisecond,
		80 * time.Millisecond,
	}
	if table != want {
		t.Fatalf("base table = %v, want %v", table, want)
	}
}
