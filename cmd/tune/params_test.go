package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flip/config"
	"github.com/pthm-cable/flip/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{1.5, 0.25}

	n := pv.Normalize(raw)
	back := pv.Denormalize(n)
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
	if math.Abs(n[1]-0.25) > 1e-12 {
		t.Errorf("flip_ratio normalized = %v, want 0.25", n[1])
	}
}

func TestClampAndApply(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pv.ApplyToConfig(cfg, []float64{2.5, -0.3})
	if cfg.Solver.OverRelaxation != 1.99 {
		t.Errorf("over_relaxation = %v, want 1.99", cfg.Solver.OverRelaxation)
	}
	if cfg.Solver.FlipRatio != 0 {
		t.Errorf("flip_ratio = %v, want 0", cfg.Solver.FlipRatio)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 1.99 || got[1] != 0 {
		t.Errorf("extract = %v, want [1.99 0]", got)
	}
}

func TestSummarizeSkipsFirstWindow(t *testing.T) {
	windows := []telemetry.WindowStats{
		{MeanDivergence: 100, SpeedStd: 100},
		{MeanDivergence: 0.2, SpeedStd: 1},
		{MeanDivergence: 0.4, SpeedStd: 3},
	}
	div, noise := summarize(windows)
	if math.Abs(div-0.3) > 1e-12 {
		t.Errorf("divergence = %v, want 0.3", div)
	}
	if math.Abs(noise-2) > 1e-12 {
		t.Errorf("noise = %v, want 2", noise)
	}
}

func TestFitnessRejectsBlowups(t *testing.T) {
	if got := fitness(math.NaN(), 0, 0.1); got != failedFitness {
		t.Errorf("NaN fitness = %v, want %v", got, failedFitness)
	}
	div, noise := summarize(nil)
	if got := fitness(div, noise, 0.1); got != failedFitness {
		t.Errorf("empty run fitness = %v, want %v", got, failedFitness)
	}
	if got := fitness(0.5, 2, 0.1); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("fitness = %v, want 0.7", got)
	}
}
