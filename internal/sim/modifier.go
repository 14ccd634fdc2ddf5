package sim

// SpeedModifier is one multiplicative move-speed factor with an expiry.
// Slows push factors < 1, hastes > 1. The stack is applied by the enemy's
// own tick; no collaborator ever patches a speed field directly.
type SpeedModifier struct {
	Factor    float64
	Remaining float64 // seconds
}

// ModifierStack is an ordered list of active speed modifiers.
type ModifierStack struct {
	mods []SpeedModifier
}

// Push adds a modifier. Non-positive durations are ignored.
func (s *ModifierStack) Push(factor, duration float64) {
	if duration <= 0 {
		return
	}
	s.mods = append(s.mods, SpeedModifier{Factor: factor, Remaining: duration})
}

// Tick decrements expiries and compacts out expired modifiers in place.
func (s *ModifierStack) Tick(dt float64) {
	kept := s.mods[:0]
	for i := range s.mods {
		s.mods[i].Remaining -= dt
		if s.mods[i].Remaining > 0 {
			kept = append(kept, s.mods[i])
		}
	}
	s.mods = kept
}

// Product returns the combined factor of all active modifiers.
func (s *ModifierStack) Product() float64 {
	p := 1.0
	for i := range s.mods {
		p *= s.mods[i].Factor
	}
	return p
}

// Reset cancels all active modifiers immediately.
func (s *ModifierStack) Reset() {
	s.mods = s.mods[:0]
}

// Len returns the number of active modifiers.
func (s *ModifierStack) Len() int {
	return len(s.mods)
}
