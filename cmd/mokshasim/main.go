package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/data"
	"github.com/moksha/sim/internal/persist"
	"github.com/moksha/sim/internal/scripting"
	"github.com/moksha/sim/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("MOKSHA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info("simulation starting",
		zap.Int64("seed", seed),
		zap.Duration("tick_rate", cfg.Simulation.TickRate))

	// 3. Optional run telemetry: connect, migrate, open the run row
	var store system.RunStore
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}

		runRepo := persist.NewRunRepo(db)
		if err := runRepo.Begin(ctx, seed); err != nil {
			return fmt.Errorf("begin run: %w", err)
		}
		store = runRepo
		log.Info("run telemetry enabled", zap.Int64("run_id", runRepo.RunID()))
	}

	// 4. Load data tables
	stats, err := data.LoadStatTable("data/yaml/enemy_list.yaml")
	if err != nil {
		return fmt.Errorf("load enemy table: %w", err)
	}
	log.Info("enemy table loaded", zap.Int("kinds", stats.Count()))

	arena, err := data.LoadArena("data/yaml/arena.yaml")
	if err != nil {
		return fmt.Errorf("load arena: %w", err)
	}

	// 5. Init Lua combat formulas
	luaEngine, err := scripting.NewEngine(os.Getenv("MOKSHA_SCRIPTS"), log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 6. Assemble the simulation
	simulation := system.New(cfg, stats, *arena, luaEngine, store, rng, log)

	// 7. Run the fixed-tick loop until a signal arrives
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			simulation.Step(cfg.Simulation.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			simulation.Telemetry().FlushNow()
			d := simulation.Director()
			log.Info("final state",
				zap.Float64("elapsed", d.Elapsed()),
				zap.Int64("spawned", d.SpawnedTotal()),
				zap.Int64("killed", d.KilledTotal()),
				zap.Int("population", d.Active()),
				zap.Int("player_level", simulation.Progress().Level()),
				zap.Bool("boss_defeated", d.BossDefeated()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
