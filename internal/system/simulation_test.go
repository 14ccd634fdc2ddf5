package system

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
	"github.com/moksha/sim/internal/data"
	"github.com/moksha/sim/internal/persist"
)

type captureStore struct {
	flushes []persist.RunSnapshot
	fail    error
}

func (c *captureStore) Flush(_ context.Context, snap persist.RunSnapshot) error {
	if c.fail != nil {
		return c.fail
	}
	c.flushes = append(c.flushes, snap)
	return nil
}

func smokeStats(t *testing.T) *data.StatTable {
	t.Helper()
	table, err := data.NewStatTable([]*data.StatBlock{
		{
			Kind: "husk", Name: "Husk", Behavior: data.BehaviorBasic,
			MaxHealth: 30, MoveSpeed: 3.5, RotationSpeed: 12,
			Damage: 5, AttackRange: 1.5, AttackCooldown: 1.2,
			SpawnWeight: 80, XPReward: 5, DissolveTime: 1,
		},
		{
			Kind: "warden", Name: "Warden", Behavior: data.BehaviorBoss,
			MaxHealth: 500, MoveSpeed: 2.5, RotationSpeed: 6,
			Damage: 20, AttackRange: 3, AttackCooldown: 2,
			XPReward: 100, DissolveTime: 2,
			MinionKind: "husk", MinionCap: 4, MinionBurst: 2, MinionCooldown: 8,
		},
	})
	if err != nil {
		t.Fatalf("NewStatTable: %v", err)
	}
	return table
}

func smokeArena() data.Arena {
	return data.Arena{MinX: -50, MinZ: -50, MaxX: 50, MaxZ: 50, GroundY: 0}
}

func newSmokeSim(t *testing.T, cfg *config.Config, store RunStore) *Simulation {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	return New(cfg, smokeStats(t), smokeArena(), nil, store, rng, zap.NewNop())
}

func TestSimulationPopulatesOverTime(t *testing.T) {
	cfg := config.Defaults()
	cfg.Spawning.MaxPopulation = 30
	cfg.Spawning.BossTriggerTime = 1e9 // no boss in this run
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 600; i++ { // 30 seconds of sim time
		s.Step(dt)
	}

	if s.Director().Active() == 0 {
		t.Fatal("no enemies after 30s of simulation")
	}
	if s.Director().SpawnedTotal() == 0 {
		t.Fatal("spawn counter never moved")
	}
	if s.Director().Active() > cfg.Spawning.MaxPopulation {
		t.Fatalf("population %d exceeds cap %d", s.Director().Active(), cfg.Spawning.MaxPopulation)
	}
}

func TestSimulationBossLifecycle(t *testing.T) {
	cfg := config.Defaults()
	cfg.Spawning.BossTriggerTime = 0.5
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 20; i++ { // 1 second
		s.Step(dt)
	}
	if s.Director().ActiveOf("warden") != 1 {
		t.Fatalf("warden count = %d after trigger time, want 1", s.Director().ActiveOf("warden"))
	}

	s.Director().MarkBossDefeated("warden")
	if !s.Director().BossDefeated() {
		t.Fatal("boss defeat not latched")
	}
}

func TestSimulationKillGrantsXP(t *testing.T) {
	cfg := config.Defaults()
	cfg.Difficulty.XPBase = 5
	cfg.Difficulty.XPStep = 1000
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 200; i++ {
		s.Step(dt)
	}
	if s.Director().Active() == 0 {
		t.Fatal("need live enemies for the kill sweep")
	}
	for _, e := range s.Registry().All(nil) {
		e.Kill()
	}
	// One extra step lets dissolve timers and the event bus settle.
	for i := 0; i < 60; i++ {
		s.Step(dt)
	}

	if s.Progress().Level() < 2 {
		t.Fatalf("level = %d, want at least 2 after mass kill", s.Progress().Level())
	}
	if s.Director().KilledTotal() == 0 {
		t.Fatal("kill counter never moved")
	}
}

func TestSimulationCorpsesAreReclaimed(t *testing.T) {
	cfg := config.Defaults()
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 200; i++ {
		s.Step(dt)
	}
	alive := s.Director().Active()
	if alive == 0 {
		t.Fatal("no enemies spawned")
	}
	for _, e := range s.Registry().All(nil) {
		e.Kill()
	}
	// Dissolve time is 1s for husks; give it 2s plus a cleanup pass.
	for i := 0; i < 40; i++ {
		s.Step(dt)
	}

	for _, e := range s.Registry().All(nil) {
		if e.IsDead() && !e.IsDissolving() {
			t.Fatal("finished corpse still registered")
		}
	}
}

func TestSimulationFloorCollapseRelocates(t *testing.T) {
	cfg := config.Defaults()
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 200; i++ {
		s.Step(dt)
	}
	if s.Director().Active() == 0 {
		t.Fatal("no enemies to relocate")
	}

	event.Emit(s.Bus(), event.FloorCollapsed{NewGroundY: -4})
	s.Step(dt) // dispatch
	if s.Bounds().GroundY() != -4 {
		t.Fatalf("GroundY = %v, want -4", s.Bounds().GroundY())
	}

	// Enough time for every relocation delay to elapse.
	for i := 0; i < 200; i++ {
		s.Step(dt)
	}
	for _, e := range s.Registry().All(nil) {
		if !e.IsDead() && e.Position().Y != -4 {
			t.Fatalf("enemy at Y=%v after collapse, want -4", e.Position().Y)
		}
	}
}

func TestTelemetryFlushCadence(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.FlushInterval = 200 * time.Millisecond
	store := &captureStore{}
	s := newSmokeSim(t, cfg, store)

	dt := 50 * time.Millisecond
	for i := 0; i < 20; i++ { // 1 second
		s.Step(dt)
	}
	if len(store.flushes) != 5 {
		t.Fatalf("flush count = %d, want 5", len(store.flushes))
	}
	last := store.flushes[len(store.flushes)-1]
	if last.Ticks != 20 {
		t.Fatalf("snapshot ticks = %d, want 20", last.Ticks)
	}
	if last.Elapsed <= 0 {
		t.Fatal("snapshot elapsed not advancing")
	}
}

func TestTelemetryDisabledWithNilStore(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.FlushInterval = 50 * time.Millisecond
	s := newSmokeSim(t, cfg, nil)

	dt := 50 * time.Millisecond
	for i := 0; i < 10; i++ {
		s.Step(dt)
	}
	s.Telemetry().FlushNow() // must not panic
}
