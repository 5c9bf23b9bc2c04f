package game

import (
	"github.com/pthm-cable/flip/config"
	"github.com/pthm-cable/flip/telemetry"
)

// Options configures game initialization beyond config.yaml.
type Options struct {
	LogStats       bool    // Output window stats via slog
	StatsWindowSec float64 // Stats window size in simulated seconds
	OutputDir      string  // Directory for CSV logs and config snapshot (empty = disabled)
	Headless       bool    // No window; obstacle follows its scripted orbit
	StepsPerUpdate int     // Simulation frames per Update call

	// Config overrides the global config (used by the tuner).
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
