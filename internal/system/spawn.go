package system

import (
	"time"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/sim"
)

// SpawnSystem runs the director's per-frame population management: wave
// timers, the stall watchdog, and the boss trigger.
type SpawnSystem struct {
	director *sim.Director
}

func NewSpawnSystem(d *sim.Director) *SpawnSystem {
	return &SpawnSystem{director: d}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SpawnSystem) Update(dt time.Duration) {
	s.director.Update(dt.Seconds())
}
