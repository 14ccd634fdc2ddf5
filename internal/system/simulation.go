package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/data"
	"github.com/moksha/sim/internal/sim"
)

// Simulation assembles the full closed loop: phantom target, director,
// registry, projectile resolver, progression, collapse scheduler, and the
// phase-ordered system runner.
type Simulation struct {
	runner   *coresys.Runner
	bus      *event.Bus
	registry *sim.Registry
	director *sim.Director
	phantom  *sim.Phantom
	progress *sim.Progress
	resolver *sim.ProjectileResolver
	bounds   *sim.ArenaBounds

	telemetry *TelemetrySystem
}

// New wires all components from config and data. combat may be nil (builtin
// damage math) and store may be nil (telemetry disabled).
func New(cfg *config.Config, stats *data.StatTable, arena data.Arena, combat sim.DamageCalc, store RunStore, rng *rand.Rand, log *zap.Logger) *Simulation {
	bus := event.NewBus()
	bounds := sim.NewArenaBounds(sim.Rect{
		MinX: arena.MinX, MinZ: arena.MinZ,
		MaxX: arena.MaxX, MaxZ: arena.MaxZ,
	}, arena.GroundY)

	center := sim.Vec3{
		X: (arena.MinX + arena.MaxX) / 2,
		Y: arena.GroundY,
		Z: (arena.MinZ + arena.MaxZ) / 2,
	}
	phantom := sim.NewPhantom(center, bounds.Bounds(), 4.5, 100, rng)
	resolver := sim.NewProjectileResolver(phantom)
	registry := sim.NewRegistry(cfg.Spawning.MaxPopulation)
	progress := sim.NewProgress(cfg.Difficulty, bus, log)

	director := sim.NewDirector(cfg.Spawning, cfg.Difficulty, sim.DirectorDeps{
		Stats:       stats,
		Registry:    registry,
		Bounds:      bounds,
		Target:      phantom,
		Projectiles: resolver,
		Combat:      combat,
		XP:          progress,
		Bus:         bus,
		RNG:         rng,
		Log:         log,
	})
	sim.NewCollapseScheduler(cfg.Collapse, registry, bounds, bus, log)

	telemetry := NewTelemetrySystem(store, director, progress, cfg.Telemetry.FlushInterval, log)

	s := &Simulation{
		runner:    coresys.NewRunner(),
		bus:       bus,
		registry:  registry,
		director:  director,
		phantom:   phantom,
		progress:  progress,
		resolver:  resolver,
		bounds:    bounds,
		telemetry: telemetry,
	}

	// Registration order within a phase is execution order.
	s.runner.Register(NewEventSystem(bus))
	s.runner.Register(NewTargetSystem(phantom))
	s.runner.Register(NewSpawnSystem(director))
	s.runner.Register(NewBehaviorSystem(registry, phantom))
	s.runner.Register(NewProjectileSystem(resolver))
	s.runner.Register(telemetry)
	s.runner.Register(NewReclaimSystem(registry, director))
	return s
}

// Step advances the whole simulation by one fixed tick.
func (s *Simulation) Step(dt time.Duration) {
	s.runner.Tick(dt)
}

func (s *Simulation) Bus() *event.Bus                  { return s.bus }
func (s *Simulation) Registry() *sim.Registry          { return s.registry }
func (s *Simulation) Director() *sim.Director          { return s.director }
func (s *Simulation) Phantom() *sim.Phantom            { return s.phantom }
func (s *Simulation) Progress() *sim.Progress          { return s.progress }
func (s *Simulation) Bounds() *sim.ArenaBounds         { return s.bounds }
func (s *Simulation) Telemetry() *TelemetrySystem      { return s.telemetry }
