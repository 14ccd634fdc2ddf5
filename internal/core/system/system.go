package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents     Phase = iota // swap + dispatch last tick's events
	PhaseUpdate                  // target walk, spawn director, behavior tick
	PhasePostUpdate              // projectile flight resolution
	PhasePersist                 // telemetry flush
	PhaseCleanup                 // reclaim dissolved enemies
)

// System is the interface every per-tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
