package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Spawning   SpawningConfig   `toml:"spawning"`
	Difficulty DifficultyConfig `toml:"difficulty"`
	Collapse   CollapseConfig   `toml:"collapse"`
	Database   DatabaseConfig   `toml:"database"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Seed     int64         `toml:"seed"` // 0 = time-based
}

type SpawningConfig struct {
	MaxPopulation    int     `toml:"max_population"`
	MinSpawnDistance float64 `toml:"min_spawn_distance"` // annulus inner radius around target
	MaxSpawnDistance float64 `toml:"max_spawn_distance"` // annulus outer radius
	PositionAttempts int     `toml:"position_attempts"`
	PoolPrewarm      int     `toml:"pool_prewarm"` // instances pre-built per kind
	StallThreshold   float64 `toml:"stall_threshold"` // seconds without a successful spawn
	RecoveryBurst    int     `toml:"recovery_burst"`
	BossKind         string  `toml:"boss_kind"`         // "" = no boss
	BossTriggerTime  float64 `toml:"boss_trigger_time"` // seconds of elapsed game time
	MinionRadius     float64 `toml:"minion_radius"`     // ring around the boss for minion placement
}

type DifficultyConfig struct {
	BaseInterval float64 `toml:"base_interval"` // seconds between waves at level 1
	IntervalStep float64 `toml:"interval_step"` // interval decrease per level
	MinInterval  float64 `toml:"min_interval"`
	BasePerWave  int     `toml:"base_per_wave"`
	PerWaveStep  int     `toml:"per_wave_step"` // extra enemies per wave per level
	MaxPerWave   int     `toml:"max_per_wave"`
	HealthGrowth float64 `toml:"health_growth"` // +fraction of base health per level
	DamageGrowth float64 `toml:"damage_growth"`
	XPBase       int     `toml:"xp_base"` // xp for level 1 → 2
	XPStep       int     `toml:"xp_step"` // extra xp required per level
}

type CollapseConfig struct {
	DelayPerUnit float64 `toml:"delay_per_unit"` // seconds of relocation delay per unit of distance
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // "" = telemetry disabled
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type TelemetryConfig struct {
	FlushInterval time.Duration `toml:"flush_interval"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns a config tuned for a standard run. Exported so tests and
// tools can start from the same baseline the binary uses.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: 50 * time.Millisecond,
			Seed:     0,
		},
		Spawning: SpawningConfig{
			MaxPopulation:    150,
			MinSpawnDistance: 12,
			MaxSpawnDistance: 25,
			PositionAttempts: 10,
			PoolPrewarm:      16,
			StallThreshold:   8,
			RecoveryBurst:    5,
			BossKind:         "warden",
			BossTriggerTime:  300,
			MinionRadius:     4,
		},
		Difficulty: DifficultyConfig{
			BaseInterval: 3.0,
			IntervalStep: 0.1,
			MinInterval:  0.5,
			BasePerWave:  2,
			PerWaveStep:  1,
			MaxPerWave:   12,
			HealthGrowth: 0.08,
			DamageGrowth: 0.05,
			XPBase:       20,
			XPStep:       10,
		},
		Collapse: CollapseConfig{
			DelayPerUnit: 0.05,
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			FlushInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
