package sim

// ProjectileRequest is a fire-and-forget spawn request emitted by ranged and
// mortar state machines. The core expects no return value.
type ProjectileRequest struct {
	Kind   string // firing enemy kind, for effects/diagnostics
	Origin Vec3
	Target Vec3 // aim point captured at fire time
	Speed  float64
	Damage float64
	Arc    bool // lobbed mortar shot (splash on impact)
}

// ProjectileSink receives projectile spawn requests. The real game binds
// this to the projectile/VFX systems.
type ProjectileSink interface {
	SpawnProjectile(req ProjectileRequest)
}

type flight struct {
	req       ProjectileRequest
	remaining float64 // seconds until impact
}

// ProjectileResolver is a minimal in-sim flight model: each shot travels for
// distance/speed seconds toward its captured aim point, then damages the
// target if it is still near the impact point. Direct shots use HitRadius,
// arcing shots the larger SplashRadius.
type ProjectileResolver struct {
	target       Target
	sink         DamageSink
	HitRadius    float64
	SplashRadius float64
	flights      []flight
}

func NewProjectileResolver(target Target) *ProjectileResolver {
	r := &ProjectileResolver{
		target:       target,
		HitRadius:    1.5,
		SplashRadius: 3.5,
	}
	r.sink, _ = target.(DamageSink)
	return r
}

func (r *ProjectileResolver) SpawnProjectile(req ProjectileRequest) {
	if req.Speed <= 0 {
		return
	}
	r.flights = append(r.flights, flight{
		req:       req,
		remaining: req.Origin.XZDist(req.Target) / req.Speed,
	})
}

// InFlight returns the number of unresolved shots.
func (r *ProjectileResolver) InFlight() int {
	return len(r.flights)
}

// Tick advances every flight and resolves impacts.
func (r *ProjectileResolver) Tick(dt float64) {
	kept := r.flights[:0]
	for i := range r.flights {
		f := r.flights[i]
		f.remaining -= dt
		if f.remaining > 0 {
			kept = append(kept, f)
			continue
		}
		radius := r.HitRadius
		if f.req.Arc {
			radius = r.SplashRadius
		}
		if r.sink != nil && r.target.Position().XZDistSq(f.req.Target) <= radius*radius {
			r.sink.TakeDamage(f.req.Damage)
		}
	}
	r.flights = kept
}
