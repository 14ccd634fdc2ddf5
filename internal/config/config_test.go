package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Simulation.TickRate != 50*time.Millisecond {
		t.Fatalf("TickRate = %v, want 50ms", cfg.Simulation.TickRate)
	}
	if cfg.Spawning.MaxPopulation != 150 {
		t.Fatalf("MaxPopulation = %d, want 150", cfg.Spawning.MaxPopulation)
	}
	if cfg.Spawning.MinSpawnDistance >= cfg.Spawning.MaxSpawnDistance {
		t.Fatal("spawn annulus inverted in defaults")
	}
	if cfg.Database.DSN != "" {
		t.Fatal("telemetry should be disabled by default")
	}
	if cfg.Difficulty.MinInterval <= 0 {
		t.Fatal("interval floor must be positive")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load("testdata/sim.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickRate != 20*time.Millisecond {
		t.Fatalf("TickRate = %v, want 20ms", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Seed != 1234 {
		t.Fatalf("Seed = %d, want 1234", cfg.Simulation.Seed)
	}
	if cfg.Spawning.MaxPopulation != 40 {
		t.Fatalf("MaxPopulation = %d, want 40", cfg.Spawning.MaxPopulation)
	}
	if cfg.Spawning.BossKind != "colossus" {
		t.Fatalf("BossKind = %q, want colossus", cfg.Spawning.BossKind)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("Format = %q, want json", cfg.Logging.Format)
	}

	// Untouched sections keep their defaults.
	if cfg.Spawning.RecoveryBurst != Defaults().Spawning.RecoveryBurst {
		t.Fatal("unset field lost its default")
	}
	if cfg.Difficulty.BaseInterval != 2.0 {
		t.Fatalf("BaseInterval = %v, want 2.0", cfg.Difficulty.BaseInterval)
	}
	if cfg.Difficulty.XPBase != Defaults().Difficulty.XPBase {
		t.Fatal("partial difficulty section lost defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/absent.toml"); err == nil {
		t.Fatal("missing file accepted")
	}
}
