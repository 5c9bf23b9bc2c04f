package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	// Speeds 5, 0, 1, 2
	vel := []float32{3, 4, 0, 0, 0, 1, 0, 2}
	s := ComputeSpeedStats(vel)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, 2},
		{"std", s.Std, math.Sqrt(3.5)},
		{"p50", s.P50, 1.5},
		{"p90", s.P90, 4.1},
		{"max", s.Max, 5},
		{"kinetic", s.Kinetic, 15},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestComputeSpeedStatsSingle(t *testing.T) {
	s := ComputeSpeedStats([]float32{0, -2})
	if s.Mean != 2 || s.Std != 0 || s.Max != 2 || s.P90 != 2 {
		t.Errorf("unexpected stats for one particle: %+v", s)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input should return zero stats, got %+v", s)
	}
}
