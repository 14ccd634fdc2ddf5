package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/persist"
	"github.com/moksha/sim/internal/sim"
)

// RunStore is the slice of the persistence layer telemetry needs.
type RunStore interface {
	Flush(ctx context.Context, snap persist.RunSnapshot) error
}

// TelemetrySystem periodically flushes a run snapshot to storage. A nil
// store disables it (no database configured).
type TelemetrySystem struct {
	store    RunStore
	director *sim.Director
	progress *sim.Progress
	log      *zap.Logger

	interval time.Duration
	timer    time.Duration
	ticks    int64
}

func NewTelemetrySystem(store RunStore, d *sim.Director, p *sim.Progress, interval time.Duration, log *zap.Logger) *TelemetrySystem {
	return &TelemetrySystem{
		store:    store,
		director: d,
		progress: p,
		log:      log,
		interval: interval,
		timer:    interval,
	}
}

func (s *TelemetrySystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *TelemetrySystem) Update(dt time.Duration) {
	s.ticks++
	if s.store == nil {
		return
	}
	s.timer -= dt
	if s.timer > 0 {
		return
	}
	s.timer = s.interval
	s.FlushNow()
}

// FlushNow writes a snapshot immediately. Also called once at shutdown.
func (s *TelemetrySystem) FlushNow() {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.store.Flush(ctx, s.Snapshot())
	if err != nil && s.log != nil {
		s.log.Warn("telemetry flush failed", zap.Error(err))
	}
}

// Snapshot assembles the current run sample.
func (s *TelemetrySystem) Snapshot() persist.RunSnapshot {
	return persist.RunSnapshot{
		Elapsed:      s.director.Elapsed(),
		Ticks:        s.ticks,
		Spawned:      s.director.SpawnedTotal(),
		Killed:       s.director.KilledTotal(),
		Population:   s.director.Active(),
		PlayerLevel:  s.progress.Level(),
		BossDefeated: s.director.BossDefeated(),
	}
}
