package main

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flip/config"
	"github.com/pthm-cable/flip/game"
	"github.com/pthm-cable/flip/telemetry"
)

// failedFitness is returned for runs that blow up (NaN or Inf samples).
const failedFitness = 1e6

// FitnessEvaluator runs headless dam breaks and scores them.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	baseConfig  *config.Config
	statsWindow float64
	noiseWeight float64

	lastDivergence float64
	lastNoise      float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, baseCfg *config.Config, noiseWeight float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		baseConfig:  baseCfg,
		statsWindow: 1.0,
		noiseWeight: noiseWeight,
	}
}

// LastDivergence returns the mean divergence of the most recent evaluation.
func (fe *FitnessEvaluator) LastDivergence() float64 {
	return fe.lastDivergence
}

// LastNoise returns the velocity noise of the most recent evaluation.
func (fe *FitnessEvaluator) LastNoise() float64 {
	return fe.lastNoise
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	windows, err := fe.runSimulation(cfg)
	if err != nil {
		return 0, err
	}

	div, noise := summarize(windows)
	fe.lastDivergence = div
	fe.lastNoise = noise
	return fitness(div, noise, fe.noiseWeight), nil
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config) ([]telemetry.WindowStats, error) {
	var windows []telemetry.WindowStats

	g, err := game.NewGameWithOptions(game.Options{
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows, nil
}

// copyConfig returns a copy of the base config that evaluations can mutate.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// summarize averages mean divergence and speed spread over the windows
// after the first, which holds the initial collapse of the water block.
func summarize(windows []telemetry.WindowStats) (divergence, noise float64) {
	if len(windows) > 1 {
		windows = windows[1:]
	}
	if len(windows) == 0 {
		return math.Inf(1), math.Inf(1)
	}

	divs := make([]float64, len(windows))
	stds := make([]float64, len(windows))
	for i, w := range windows {
		divs[i] = w.MeanDivergence
		stds[i] = w.SpeedStd
	}
	return stat.Mean(divs, nil), stat.Mean(stds, nil)
}

// fitness combines divergence and velocity noise into one score.
func fitness(divergence, noise, noiseWeight float64) float64 {
	f := divergence + noiseWeight*noise
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return failedFitness
	}
	return f
}
