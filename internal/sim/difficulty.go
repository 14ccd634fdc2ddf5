package sim

import "github.com/moksha/sim/internal/config"

// Difficulty is the derived tuning snapshot for a player level. It is
// recomputed on level-up and captured by each enemy at spawn time, so
// already-spawned enemies keep the stats they were born with.
type Difficulty struct {
	Level         int
	SpawnInterval float64 // seconds between waves
	PerWave       int
	HealthMult    float64
	DamageMult    float64
}

// ComputeDifficulty derives the snapshot for level from the linear curves in
// cfg. Interval is floored at MinInterval and wave size capped at MaxPerWave,
// so scaling is monotonic but bounded.
func ComputeDifficulty(level int, cfg config.DifficultyConfig) Difficulty {
	if level < 1 {
		level = 1
	}
	steps := float64(level - 1)

	interval := cfg.BaseInterval - steps*cfg.IntervalStep
	if interval < cfg.MinInterval {
		interval = cfg.MinInterval
	}

	perWave := cfg.BasePerWave + (level-1)*cfg.PerWaveStep
	if cfg.MaxPerWave > 0 && perWave > cfg.MaxPerWave {
		perWave = cfg.MaxPerWave
	}
	if perWave < 1 {
		perWave = 1
	}

	return Difficulty{
		Level:         level,
		SpawnInterval: interval,
		PerWave:       perWave,
		HealthMult:    1 + steps*cfg.HealthGrowth,
		DamageMult:    1 + steps*cfg.DamageGrowth,
	}
}
