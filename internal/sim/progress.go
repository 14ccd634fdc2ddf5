package sim

import (
	"go.uber.org/zap"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
)

// Progress accumulates kill XP and converts it into player levels. The
// per-level requirement grows linearly: xpBase + (level-1)*xpStep. Overflow
// XP carries into the next level, so a big award can grant several levels
// in one call, emitting one LevelUp per boundary crossed.
type Progress struct {
	level int
	xp    int

	xpBase int
	xpStep int

	bus *event.Bus
	log *zap.Logger
}

func NewProgress(cfg config.DifficultyConfig, bus *event.Bus, log *zap.Logger) *Progress {
	return &Progress{
		level:  1,
		xpBase: cfg.XPBase,
		xpStep: cfg.XPStep,
		bus:    bus,
		log:    log,
	}
}

func (p *Progress) Level() int { return p.level }
func (p *Progress) XP() int    { return p.xp }

// XPToNext returns the requirement for the current level.
func (p *Progress) XPToNext() int {
	return p.xpBase + (p.level-1)*p.xpStep
}

// AddXP credits an award and resolves any level-ups it causes.
func (p *Progress) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	p.xp += amount
	for p.xp >= p.XPToNext() {
		p.xp -= p.XPToNext()
		p.level++
		if p.bus != nil {
			event.Emit(p.bus, event.LevelUp{Level: p.level})
		}
		if p.log != nil {
			p.log.Info("level up", zap.Int("level", p.level), zap.Int("xp_carry", p.xp))
		}
	}
}
