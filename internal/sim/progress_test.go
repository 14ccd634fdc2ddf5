package sim

import (
	"testing"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
)

func TestProgressLevelUp(t *testing.T) {
	cfg := config.Defaults().Difficulty // xp_base 20, xp_step 10
	bus := event.NewBus()
	var ups []int
	event.Subscribe(bus, func(ev event.LevelUp) { ups = append(ups, ev.Level) })

	p := NewProgress(cfg, bus, nil)
	if p.Level() != 1 {
		t.Fatalf("initial level = %d, want 1", p.Level())
	}
	if p.XPToNext() != 20 {
		t.Fatalf("XPToNext = %d, want 20", p.XPToNext())
	}

	p.AddXP(19)
	if p.Level() != 1 {
		t.Fatal("leveled up below the threshold")
	}
	p.AddXP(1)
	if p.Level() != 2 {
		t.Fatalf("level = %d, want 2", p.Level())
	}
	if p.XP() != 0 {
		t.Fatalf("xp carry = %d, want 0", p.XP())
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(ups) != 1 || ups[0] != 2 {
		t.Fatalf("LevelUp events = %v, want [2]", ups)
	}
}

func TestProgressMultiLevelAward(t *testing.T) {
	cfg := config.Defaults().Difficulty
	bus := event.NewBus()
	var ups []int
	event.Subscribe(bus, func(ev event.LevelUp) { ups = append(ups, ev.Level) })

	p := NewProgress(cfg, bus, nil)
	// 20 (1→2) + 30 (2→3) + 5 carry
	p.AddXP(55)
	if p.Level() != 3 {
		t.Fatalf("level = %d, want 3", p.Level())
	}
	if p.XP() != 5 {
		t.Fatalf("xp carry = %d, want 5", p.XP())
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(ups) != 2 || ups[0] != 2 || ups[1] != 3 {
		t.Fatalf("LevelUp events = %v, want [2 3]", ups)
	}
}

func TestProgressIgnoresNonPositive(t *testing.T) {
	p := NewProgress(config.Defaults().Difficulty, nil, nil)
	p.AddXP(0)
	p.AddXP(-5)
	if p.XP() != 0 || p.Level() != 1 {
		t.Fatal("non-positive awards must be ignored")
	}
}
