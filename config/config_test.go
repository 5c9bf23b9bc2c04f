package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flip/flip"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tank.Resolution != 100 {
		t.Errorf("resolution = %d, want 100", cfg.Tank.Resolution)
	}
	if cfg.Solver.PressureIters != 50 || cfg.Solver.ParticleIters != 2 {
		t.Errorf("iterations = %d/%d, want 50/2", cfg.Solver.PressureIters, cfg.Solver.ParticleIters)
	}
	want := float32(1280) / float32(720)
	if d := cfg.Derived.Aspect - want; d > 1e-6 || d < -1e-6 {
		t.Errorf("aspect = %v, want screen aspect %v", cfg.Derived.Aspect, want)
	}

	s := cfg.Settings()
	if s.Gravity != float32(-9.81) || s.OverRelaxation != float32(1.9) || !s.CompensateDrift {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.CellMap != flip.CellMapScientific {
		t.Errorf("cell map = %v, want sci", s.CellMap)
	}

	tank := cfg.TankSpec()
	if tank.ObstacleX != 3 || tank.ObstacleY != 2 || tank.RadiusFactor != float32(0.3) {
		t.Errorf("unexpected tank %+v", tank)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	user := []byte("solver:\n  flip_ratio: 0.5\ntank:\n  aspect: 2\ncolor:\n  cell_map: viridis\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.FlipRatio != 0.5 {
		t.Errorf("flip_ratio = %v, want 0.5", cfg.Solver.FlipRatio)
	}
	if cfg.Solver.OverRelaxation != 1.9 {
		t.Errorf("over_relaxation = %v, want default 1.9", cfg.Solver.OverRelaxation)
	}
	if cfg.Derived.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", cfg.Derived.Aspect)
	}
	if cfg.Derived.CellMap != flip.CellMapViridis {
		t.Errorf("cell map not parsed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplySettingsAndWrite(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	s := cfg.Settings()
	s.NumPressureIters = 80
	s.CellMap = flip.CellMapViridis
	cfg.ApplySettings(s)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if back.Solver.PressureIters != 80 {
		t.Errorf("pressure_iters = %d, want 80", back.Solver.PressureIters)
	}
	if back.Derived.CellMap != flip.CellMapViridis {
		t.Errorf("cell map lost in snapshot")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
