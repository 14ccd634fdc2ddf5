package sim

import "math/rand"

// Target supplies the single world position all enemies chase, flee, and
// attack relative to. The real game binds this to the player controller.
type Target interface {
	Position() Vec3
}

// DamageSink is the capability an attackable target exposes. Enemies resolve
// it once when a target is acquired and cache the handle until the target
// reference itself changes.
type DamageSink interface {
	TakeDamage(amount float64)
}

// BoundsProvider supplies the rectangular world bounds used to validate and
// clamp spawn positions, plus the current ground height.
type BoundsProvider interface {
	Bounds() Rect
	GroundY() float64
}

// StaticBounds is a fixed-geometry BoundsProvider.
type StaticBounds struct {
	Rect   Rect
	Ground float64
}

func (b StaticBounds) Bounds() Rect     { return b.Rect }
func (b StaticBounds) GroundY() float64 { return b.Ground }

// Phantom is a scripted stand-in for the player controller so the simulation
// can run closed-loop: it random-walks inside the bounds and absorbs damage.
type Phantom struct {
	pos       Vec3
	bounds    Rect
	speed     float64
	health    float64
	maxHealth float64
	rng       *rand.Rand

	waypoint      Vec3
	retargetTimer float64
	damageTaken   float64
}

func NewPhantom(start Vec3, bounds Rect, speed, health float64, rng *rand.Rand) *Phantom {
	return &Phantom{
		pos:       start,
		bounds:    bounds,
		speed:     speed,
		health:    health,
		maxHealth: health,
		rng:       rng,
		waypoint:  start,
	}
}

func (p *Phantom) Position() Vec3 { return p.pos }

func (p *Phantom) Health() float64      { return p.health }
func (p *Phantom) DamageTaken() float64 { return p.damageTaken }

func (p *Phantom) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	p.damageTaken += amount
	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}
}

// Tick walks toward the current waypoint, picking a new one when reached or
// when the retarget timer fires.
func (p *Phantom) Tick(dt float64) {
	p.retargetTimer -= dt
	if p.retargetTimer <= 0 || p.pos.XZDistSq(p.waypoint) < 1 {
		p.waypoint = Vec3{
			X: p.bounds.MinX + p.rng.Float64()*(p.bounds.MaxX-p.bounds.MinX),
			Y: p.pos.Y,
			Z: p.bounds.MinZ + p.rng.Float64()*(p.bounds.MaxZ-p.bounds.MinZ),
		}
		p.retargetTimer = 3 + p.rng.Float64()*4
	}
	dir := p.pos.XZNormalized(p.waypoint)
	p.pos = p.bounds.Clamp(p.pos.Add(dir.Scale(p.speed * dt)))
}
