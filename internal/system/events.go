package system

import (
	"time"

	"github.com/moksha/sim/internal/core/event"
	coresys "github.com/moksha/sim/internal/core/system"
)

// EventSystem swaps the bus buffers and dispatches last tick's events.
// It runs first so every other system sees a consistent event view.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(dt time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
