package system

import (
	"testing"
	"time"
)

type orderProbe struct {
	phase Phase
	name  string
	out   *[]string
}

func (p *orderProbe) Phase() Phase { return p.phase }
func (p *orderProbe) Update(dt time.Duration) {
	*p.out = append(*p.out, p.name)
}

func TestRunnerPhaseOrder(t *testing.T) {
	var order []string
	r := NewRunner()
	r.Register(&orderProbe{phase: PhaseCleanup, name: "cleanup", out: &order})
	r.Register(&orderProbe{phase: PhaseEvents, name: "events", out: &order})
	r.Register(&orderProbe{phase: PhasePersist, name: "persist", out: &order})
	r.Register(&orderProbe{phase: PhaseUpdate, name: "update", out: &order})
	r.Register(&orderProbe{phase: PhasePostUpdate, name: "post", out: &order})

	r.Tick(time.Millisecond)
	want := []string{"events", "update", "post", "persist", "cleanup"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRunnerStableWithinPhase(t *testing.T) {
	var order []string
	r := NewRunner()
	r.Register(&orderProbe{phase: PhaseUpdate, name: "target", out: &order})
	r.Register(&orderProbe{phase: PhaseUpdate, name: "spawn", out: &order})
	r.Register(&orderProbe{phase: PhaseUpdate, name: "behavior", out: &order})

	r.Tick(time.Millisecond)
	want := []string{"target", "spawn", "behavior"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("registration order not preserved: %v", order)
		}
	}
}

func TestRunnerLateRegistration(t *testing.T) {
	var order []string
	r := NewRunner()
	r.Register(&orderProbe{phase: PhaseUpdate, name: "update", out: &order})
	r.Tick(time.Millisecond)

	r.Register(&orderProbe{phase: PhaseEvents, name: "events", out: &order})
	order = order[:0]
	r.Tick(time.Millisecond)
	if len(order) != 2 || order[0] != "events" {
		t.Fatalf("late registration not re-sorted: %v", order)
	}
}
