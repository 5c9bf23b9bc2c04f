package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/flip/config"
)

// tuneRecord is one row of tune_log.csv.
type tuneRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	MeanDivergence float64 `csv:"mean_divergence"`
	SpeedStd       float64 `csv:"speed_std"`
	OverRelaxation float64 `csv:"over_relaxation"`
	FlipRatio      float64 `csv:"flip_ratio"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 600, "Frames simulated per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	resolution := flag.Int("resolution", 0, "Override tank resolution (0 = use config)")
	noiseWeight := flag.Float64("noise-weight", 0.1, "Weight of velocity noise against divergence")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *resolution > 0 {
		baseCfg.Tank.Resolution = *resolution
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), baseCfg, *noiseWeight)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := failedFitness
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			f, err := evaluator.Evaluate(raw)
			if err != nil {
				log.Printf("evaluation failed: %v", err)
				f = failedFitness
			}
			evalCount++

			if f < bestFitness || bestParams == nil {
				bestFitness = f
				bestParams = raw
			}

			rec := []tuneRecord{{
				Eval:           evalCount,
				Fitness:        f,
				MeanDivergence: evaluator.LastDivergence(),
				SpeedStd:       evaluator.LastNoise(),
				OverRelaxation: raw[0],
				FlipRatio:      raw[1],
			}}
			if headerWritten {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			} else {
				err = gocsv.Marshal(rec, logFile)
				headerWritten = true
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: fitness=%.5f div=%.5f noise=%.4f omega=%.3f flip=%.3f (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, f, evaluator.LastDivergence(), evaluator.LastNoise(),
				raw[0], raw[1], bestFitness, formatDuration(elapsed), formatDuration(remaining))

			return f
		},
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d, ticks=%d\n",
		dim, popSize, *maxEvals, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.5f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
