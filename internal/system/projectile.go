package system

import (
	"time"

	coresys "github.com/moksha/sim/internal/core/system"
	"github.com/moksha/sim/internal/sim"
)

// ProjectileSystem resolves in-flight shots after all behavior has run, so
// shots fired this frame start flying this frame but can't impact before
// the target moved.
type ProjectileSystem struct {
	resolver *sim.ProjectileResolver
}

func NewProjectileSystem(r *sim.ProjectileResolver) *ProjectileSystem {
	return &ProjectileSystem{resolver: r}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	s.resolver.Tick(dt.Seconds())
}
