package sim

import (
	"math"
	"math/rand"

	"github.com/moksha/sim/internal/core/event"
	"github.com/moksha/sim/internal/data"
)

// DamageCalc computes final damage numbers from an attack's base value and
// the current difficulty multiplier. A nil calc falls back to base*mult.
type DamageCalc interface {
	ContactDamage(base, mult float64) float64
	ProjectileDamage(base, mult float64) float64
}

// MinionSpawner spawns up to n minions of the given kind around a point,
// subject to the per-kind cap and the global population cap. Returns how
// many were actually spawned.
type MinionSpawner interface {
	SpawnMinions(kind string, around Vec3, n, kindCap int) int
}

// XPSink receives experience awards from enemy deaths.
type XPSink interface {
	AddXP(amount int)
}

// Hooks bundles the collaborators an enemy needs while ticking. One Hooks
// value is shared by every enemy the director manages.
type Hooks struct {
	Projectiles ProjectileSink
	Combat      DamageCalc
	Minions     MinionSpawner
	XP          XPSink
	Bus         *event.Bus
	RNG         *rand.Rand
}

// Enemy is one pooled, registry-tracked combat entity. All state lives in
// plain fields reset by Init on every reuse; behavior runs in Tick as a
// per-kind state machine driven by squared horizontal distance to the target.
type Enemy struct {
	stats *data.StatBlock
	hooks *Hooks

	pos Vec3
	yaw float64 // radians, horizontal facing

	health     float64
	maxHealth  float64
	baseDamage float64
	damageMult float64

	attackTimer float64
	minionTimer float64

	dead          bool
	dissolving    bool
	dissolveTimer float64
	xpGranted     bool

	mods ModifierStack

	target Target
	sink   DamageSink

	relocating    bool
	relocateTimer float64
	relocateY     float64

	regIndex int
}

// NewEnemy returns a blank pooled instance. Init must run before first use.
func NewEnemy() *Enemy {
	return &Enemy{regIndex: -1}
}

// Init resets every field for a fresh activation, applying the difficulty
// multipliers captured at spawn time.
func (e *Enemy) Init(stats *data.StatBlock, pos Vec3, diff Difficulty, hooks *Hooks, target Target) {
	e.stats = stats
	e.hooks = hooks
	e.pos = pos
	e.yaw = 0
	e.health = stats.MaxHealth * diff.HealthMult
	e.maxHealth = e.health
	e.baseDamage = stats.Damage
	e.damageMult = diff.DamageMult
	e.attackTimer = 0
	e.minionTimer = stats.MinionCooldown
	e.dead = false
	e.dissolving = false
	e.dissolveTimer = 0
	e.xpGranted = false
	e.mods.Reset()
	e.relocating = false
	e.relocateTimer = 0
	e.relocateY = 0
	e.SetTarget(target)
}

// SetTarget rebinds the chase target and refreshes the cached damage
// capability. The type assertion happens here once, never in the tick path.
func (e *Enemy) SetTarget(t Target) {
	e.target = t
	e.sink = nil
	if t != nil {
		e.sink, _ = t.(DamageSink)
	}
}

func (e *Enemy) Kind() string           { return e.stats.Kind }
func (e *Enemy) Stats() *data.StatBlock { return e.stats }
func (e *Enemy) Position() Vec3         { return e.pos }
func (e *Enemy) Yaw() float64           { return e.yaw }
func (e *Enemy) Health() float64        { return e.health }
func (e *Enemy) MaxHealth() float64     { return e.maxHealth }
func (e *Enemy) IsDead() bool           { return e.dead }
func (e *Enemy) IsDissolving() bool     { return e.dissolving }
func (e *Enemy) IsBoss() bool           { return e.stats.Behavior == data.BehaviorBoss }

// SetPosition teleports the enemy. Used by spawn placement and tests.
func (e *Enemy) SetPosition(p Vec3) { e.pos = p }

// AddSpeedModifier pushes a multiplicative move-speed factor that expires
// after duration seconds.
func (e *Enemy) AddSpeedModifier(factor, duration float64) {
	e.mods.Push(factor, duration)
}

// ClearSpeedModifiers cancels all active speed modifiers.
func (e *Enemy) ClearSpeedModifiers() {
	e.mods.Reset()
}

// MoveSpeed returns the current effective horizontal speed.
func (e *Enemy) MoveSpeed() float64 {
	return e.stats.MoveSpeed * e.mods.Product()
}

// ScheduleRelocation arms a one-shot timer that snaps the enemy's ground
// height to newY when it fires. A later call replaces a pending one.
func (e *Enemy) ScheduleRelocation(delay, newY float64) {
	e.relocating = true
	e.relocateTimer = delay
	e.relocateY = newY
}

// CancelRelocation disarms a pending relocation, if any.
func (e *Enemy) CancelRelocation() {
	e.relocating = false
	e.relocateTimer = 0
}

// RelocationPending reports whether a relocation timer is armed.
func (e *Enemy) RelocationPending() bool { return e.relocating }

// TakeDamage applies damage and transitions to the death sequence at zero
// health. Corpses absorb nothing: hits after death are ignored.
func (e *Enemy) TakeDamage(amount float64) {
	if e.dead || amount <= 0 {
		return
	}
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		e.die()
	}
}

// Kill forces the death sequence regardless of remaining health. Used by
// cascades such as a boss death sweeping its minions.
func (e *Enemy) Kill() {
	if e.dead {
		return
	}
	e.health = 0
	e.die()
}

func (e *Enemy) die() {
	e.dead = true
	e.relocating = false
	if e.stats.DissolveTime > 0 {
		e.dissolving = true
		e.dissolveTimer = e.stats.DissolveTime
	}
	// XP is granted exactly once per activation, whatever kills it.
	if !e.xpGranted {
		e.xpGranted = true
		if e.hooks != nil && e.hooks.XP != nil && e.stats.XPReward > 0 {
			e.hooks.XP.AddXP(e.stats.XPReward)
		}
	}
	if e.hooks != nil && e.hooks.Bus != nil {
		event.Emit(e.hooks.Bus, event.EnemyKilled{
			Kind: e.stats.Kind,
			XP:   e.stats.XPReward,
			Boss: e.IsBoss(),
			X:    e.pos.X,
			Y:    e.pos.Y,
			Z:    e.pos.Z,
		})
	}
}

// Tick advances one frame. Dead enemies only run their dissolve countdown;
// once it completes the enemy is ready for reclaim.
func (e *Enemy) Tick(dt float64, target Vec3) {
	if e.dead {
		if e.dissolving {
			e.dissolveTimer -= dt
			if e.dissolveTimer <= 0 {
				e.dissolving = false
			}
		}
		return
	}

	e.mods.Tick(dt)
	if e.attackTimer > 0 {
		e.attackTimer -= dt
	}
	if e.relocating {
		e.relocateTimer -= dt
		if e.relocateTimer <= 0 {
			e.pos.Y = e.relocateY
			e.relocating = false
		}
	}

	switch e.stats.Behavior {
	case data.BehaviorRanged:
		e.tickRanged(dt, target)
	case data.BehaviorMortar:
		e.tickMortar(dt, target)
	case data.BehaviorBoss:
		e.tickBoss(dt, target)
	default:
		e.tickBasic(dt, target)
	}
}

// tickBasic: chase until inside attack range, then halt and strike on
// cooldown. While attacking, keep closing to the stop distance if it is
// tighter than the attack range.
func (e *Enemy) tickBasic(dt float64, target Vec3) {
	distSq := e.pos.XZDistSq(target)
	rangeSq := e.stats.AttackRange * e.stats.AttackRange
	if distSq > rangeSq {
		e.moveToward(target, dt)
		return
	}
	stop := e.stats.StopDistance
	if stop > 0 && stop < e.stats.AttackRange && distSq > stop*stop {
		e.moveToward(target, dt)
	} else {
		e.faceToward(target, dt)
	}
	e.tryAttack(target)
}

// tickRanged: flee directly away inside the flee radius, hold and fire
// inside attack range, chase otherwise.
func (e *Enemy) tickRanged(dt float64, target Vec3) {
	distSq := e.pos.XZDistSq(target)
	if flee := e.stats.FleeDistance; flee > 0 && distSq < flee*flee {
		e.moveAway(target, dt)
		return
	}
	if rangeSq := e.stats.AttackRange * e.stats.AttackRange; distSq <= rangeSq {
		e.faceToward(target, dt)
		e.tryAttack(target)
		return
	}
	e.moveToward(target, dt)
}

// tickMortar: hold fire inside the minimum radius (no flee), lob arcing
// shots inside attack range, close in otherwise.
func (e *Enemy) tickMortar(dt float64, target Vec3) {
	distSq := e.pos.XZDistSq(target)
	if min := e.stats.FleeDistance; min > 0 && distSq < min*min {
		e.faceToward(target, dt)
		return
	}
	if rangeSq := e.stats.AttackRange * e.stats.AttackRange; distSq <= rangeSq {
		e.faceToward(target, dt)
		e.tryAttack(target)
		return
	}
	e.moveToward(target, dt)
}

// tickBoss: melee pursuit plus a minion summon cycle.
func (e *Enemy) tickBoss(dt float64, target Vec3) {
	if e.stats.MinionKind != "" && e.stats.MinionBurst > 0 {
		e.minionTimer -= dt
		if e.minionTimer <= 0 {
			e.minionTimer = e.stats.MinionCooldown
			if e.hooks != nil && e.hooks.Minions != nil {
				e.hooks.Minions.SpawnMinions(e.stats.MinionKind, e.pos, e.stats.MinionBurst, e.stats.MinionCap)
			}
		}
	}
	e.tickBasic(dt, target)
}

// tryAttack fires the kind's attack if the cooldown has elapsed. Projectile
// kinds emit a spawn request; contact kinds damage the cached sink directly.
func (e *Enemy) tryAttack(target Vec3) {
	if e.attackTimer > 0 {
		return
	}
	e.attackTimer = e.stats.AttackCooldown
	if e.stats.ProjectileSpeed > 0 {
		if e.hooks == nil || e.hooks.Projectiles == nil {
			return
		}
		e.hooks.Projectiles.SpawnProjectile(ProjectileRequest{
			Kind:   e.stats.Kind,
			Origin: e.pos,
			Target: target,
			Speed:  e.stats.ProjectileSpeed,
			Damage: e.projectileDamage(),
			Arc:    e.stats.Behavior == data.BehaviorMortar,
		})
		return
	}
	if e.sink != nil {
		e.sink.TakeDamage(e.contactDamage())
	}
}

func (e *Enemy) contactDamage() float64 {
	if e.hooks != nil && e.hooks.Combat != nil {
		return e.hooks.Combat.ContactDamage(e.baseDamage, e.damageMult)
	}
	return e.baseDamage * e.damageMult
}

func (e *Enemy) projectileDamage() float64 {
	if e.hooks != nil && e.hooks.Combat != nil {
		return e.hooks.Combat.ProjectileDamage(e.baseDamage, e.damageMult)
	}
	return e.baseDamage * e.damageMult
}

// moveToward advances horizontally at effective speed, never overshooting,
// and turns toward the movement direction.
func (e *Enemy) moveToward(target Vec3, dt float64) {
	step := e.MoveSpeed() * dt
	if step <= 0 {
		return
	}
	dist := e.pos.XZDist(target)
	if dist <= step {
		step = dist
	}
	if dist == 0 {
		return
	}
	dir := e.pos.XZNormalized(target)
	e.pos = e.pos.Add(dir.Scale(step))
	e.turnTo(math.Atan2(dir.Z, dir.X), dt)
}

// moveAway retreats horizontally at effective speed.
func (e *Enemy) moveAway(target Vec3, dt float64) {
	step := e.MoveSpeed() * dt
	if step <= 0 {
		return
	}
	dir := target.XZNormalized(e.pos) // away from target
	if dir.X == 0 && dir.Z == 0 {
		dir = Vec3{X: 1}
	}
	e.pos = e.pos.Add(dir.Scale(step))
	e.turnTo(math.Atan2(dir.Z, dir.X), dt)
}

// faceToward rotates in place toward the target at the kind's turn rate.
func (e *Enemy) faceToward(target Vec3, dt float64) {
	dx := target.X - e.pos.X
	dz := target.Z - e.pos.Z
	if dx == 0 && dz == 0 {
		return
	}
	e.turnTo(math.Atan2(dz, dx), dt)
}

func (e *Enemy) turnTo(desired, dt float64) {
	maxTurn := e.stats.RotationSpeed * dt
	if maxTurn <= 0 {
		e.yaw = desired
		return
	}
	diff := wrapAngle(desired - e.yaw)
	if diff > maxTurn {
		diff = maxTurn
	} else if diff < -maxTurn {
		diff = -maxTurn
	}
	e.yaw = wrapAngle(e.yaw + diff)
}

// wrapAngle maps an angle into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
