package sim

import (
	"go.uber.org/zap"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
)

// ArenaBounds is a BoundsProvider whose ground height can drop when the
// floor collapses mid-run. The rectangle itself never changes.
type ArenaBounds struct {
	rect    Rect
	groundY float64
}

func NewArenaBounds(rect Rect, groundY float64) *ArenaBounds {
	return &ArenaBounds{rect: rect, groundY: groundY}
}

func (b *ArenaBounds) Bounds() Rect         { return b.rect }
func (b *ArenaBounds) GroundY() float64     { return b.groundY }
func (b *ArenaBounds) SetGroundY(y float64) { b.groundY = y }

// CollapseScheduler reacts to floor-collapse events by arming a relocation
// timer on every live enemy, delayed in proportion to horizontal distance
// from the epicenter. Enemies near the break fall first; the wave ripples
// outward. Corpses stay where they lie.
type CollapseScheduler struct {
	reg          *Registry
	bounds       *ArenaBounds
	delayPerUnit float64
	log          *zap.Logger

	scratch []*Enemy
}

func NewCollapseScheduler(cfg config.CollapseConfig, reg *Registry, bounds *ArenaBounds, bus *event.Bus, log *zap.Logger) *CollapseScheduler {
	s := &CollapseScheduler{
		reg:          reg,
		bounds:       bounds,
		delayPerUnit: cfg.DelayPerUnit,
		log:          log,
	}
	if bus != nil {
		event.Subscribe(bus, func(ev event.FloorCollapsed) {
			s.onCollapse(ev)
		})
	}
	return s
}

func (s *CollapseScheduler) onCollapse(ev event.FloorCollapsed) {
	epicenter := Vec3{X: ev.X, Y: ev.Y, Z: ev.Z}
	s.bounds.SetGroundY(ev.NewGroundY)

	scheduled := 0
	s.scratch = s.reg.All(s.scratch[:0])
	for _, e := range s.scratch {
		if e.IsDead() {
			continue
		}
		delay := e.Position().XZDist(epicenter) * s.delayPerUnit
		e.ScheduleRelocation(delay, ev.NewGroundY)
		scheduled++
	}
	if s.log != nil {
		s.log.Info("floor collapsed",
			zap.Float64("new_ground_y", ev.NewGroundY),
			zap.Int("relocations", scheduled))
	}
}
