package sim

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/moksha/sim/internal/config"
	"github.com/moksha/sim/internal/core/event"
	"github.com/moksha/sim/internal/data"
)

// DirectorDeps carries the collaborators the director wires into every enemy
// it spawns. Everything is injected; the director holds no globals.
type DirectorDeps struct {
	Stats       *data.StatTable
	Registry    *Registry
	Bounds      BoundsProvider
	Target      Target
	Projectiles ProjectileSink
	Combat      DamageCalc
	XP          XPSink
	Bus         *event.Bus
	RNG         *rand.Rand
	Log         *zap.Logger
}

// Director owns enemy population: wave spawning on the difficulty-scaled
// interval, weighted kind selection, position placement, the stall-recovery
// watchdog, the boss trigger, minion summoning, and reclaim back into the
// per-kind pools.
type Director struct {
	cfg     config.SpawningConfig
	diffCfg config.DifficultyConfig

	stats  *data.StatTable
	reg    *Registry
	bounds BoundsProvider
	target Target
	bus    *event.Bus
	rng    *rand.Rand
	log    *zap.Logger

	hooks Hooks

	pools        map[string]*Pool[Enemy]
	active       int
	activeByKind map[string]int

	diff  Difficulty
	level int

	elapsed    float64
	spawnTimer float64
	stallTimer float64

	frame uint64

	// Frame-memoized weighted selection table. Rebuilt at most once per
	// frame even when a wave draws many kinds.
	cachedFrame    uint64
	eligible       []*data.StatBlock
	cumWeights     []int
	totalWeight    int
	weightRebuilds int

	bossTriggered bool
	bossDefeated  bool

	spawnedTotal int64
	killedTotal  int64

	scratch []*Enemy
}

func NewDirector(spawnCfg config.SpawningConfig, diffCfg config.DifficultyConfig, deps DirectorDeps) *Director {
	d := &Director{
		cfg:          spawnCfg,
		diffCfg:      diffCfg,
		stats:        deps.Stats,
		reg:          deps.Registry,
		bounds:       deps.Bounds,
		target:       deps.Target,
		bus:          deps.Bus,
		rng:          deps.RNG,
		log:          deps.Log,
		pools:        make(map[string]*Pool[Enemy]),
		activeByKind: make(map[string]int),
		level:        1,
		diff:         ComputeDifficulty(1, diffCfg),
		cachedFrame:  ^uint64(0),
	}
	d.hooks = Hooks{
		Projectiles: deps.Projectiles,
		Combat:      deps.Combat,
		Minions:     d,
		XP:          deps.XP,
		Bus:         deps.Bus,
		RNG:         deps.RNG,
	}
	d.spawnTimer = d.diff.SpawnInterval

	if deps.Bus != nil {
		event.Subscribe(deps.Bus, func(ev event.LevelUp) {
			d.onLevelUp(ev.Level)
		})
		event.Subscribe(deps.Bus, func(ev event.EnemyKilled) {
			d.killedTotal++
			if ev.Boss {
				d.bossKilled(ev.Kind)
			}
		})
	}
	return d
}

func (d *Director) Active() int              { return d.active }
func (d *Director) ActiveOf(kind string) int { return d.activeByKind[kind] }
func (d *Director) Level() int               { return d.level }
func (d *Director) Elapsed() float64         { return d.elapsed }
func (d *Director) SpawnedTotal() int64      { return d.spawnedTotal }
func (d *Director) KilledTotal() int64       { return d.killedTotal }
func (d *Director) BossDefeated() bool       { return d.bossDefeated }
func (d *Director) Difficulty() Difficulty   { return d.diff }

// Update runs one frame of population management.
func (d *Director) Update(dt float64) {
	d.frame++
	d.elapsed += dt

	if !d.bossTriggered && d.cfg.BossKind != "" && d.elapsed >= d.cfg.BossTriggerTime {
		d.spawnBoss()
	}

	d.spawnTimer -= dt
	if d.spawnTimer <= 0 {
		d.spawnTimer = d.diff.SpawnInterval
		d.spawnWave()
	}

	// Watchdog: under-cap population with no successful spawn for the
	// threshold means placement keeps failing. Force a burst in.
	if d.active >= d.cfg.MaxPopulation {
		d.stallTimer = 0
	} else {
		d.stallTimer += dt
		if d.stallTimer >= d.cfg.StallThreshold {
			d.stallTimer = 0
			d.recoveryBurst()
		}
	}
}

func (d *Director) spawnWave() {
	for i := 0; i < d.diff.PerWave; i++ {
		if d.active >= d.cfg.MaxPopulation {
			return // silently drop the rest of the wave
		}
		blk := d.selectKind()
		if blk == nil {
			return // nothing unlocked yet
		}
		pos, ok := d.findPosition()
		if !ok {
			if d.log != nil {
				d.log.Debug("wave spawn skipped, no valid position", zap.String("kind", blk.Kind))
			}
			continue
		}
		d.spawn(blk, pos)
	}
}

// selectKind draws one kind from the weighted eligibility table. The table
// (eligible kinds, cumulative weights) is rebuilt lazily, at most once per
// frame, since eligibility only changes on level-up or elapsed-time
// thresholds and both are frame-grained.
func (d *Director) selectKind() *data.StatBlock {
	if d.cachedFrame != d.frame {
		d.rebuildWeights()
	}
	if d.totalWeight <= 0 {
		return nil
	}
	roll := d.rng.Intn(d.totalWeight)
	for i, cum := range d.cumWeights {
		if roll < cum {
			return d.eligible[i]
		}
	}
	return d.eligible[len(d.eligible)-1]
}

func (d *Director) rebuildWeights() {
	d.eligible = d.eligible[:0]
	d.cumWeights = d.cumWeights[:0]
	total := 0
	for _, blk := range d.stats.Kinds() {
		if blk.Behavior == data.BehaviorBoss {
			continue // bosses spawn by trigger, never by wave
		}
		if blk.SpawnWeight <= 0 || blk.UnlockLevel > d.level || blk.MinSpawnTime > d.elapsed {
			continue
		}
		total += blk.SpawnWeight
		d.eligible = append(d.eligible, blk)
		d.cumWeights = append(d.cumWeights, total)
	}
	d.totalWeight = total
	d.cachedFrame = d.frame
	d.weightRebuilds++
}

// findPosition tries PositionAttempts random points on the annulus around
// the target, each checked against the world bounds and the annulus radii.
// On exhaustion it clamps one last candidate into bounds and validates the
// clamp, so degenerate bounds still fail cleanly instead of placing at a
// corner.
func (d *Director) findPosition() (Vec3, bool) {
	center := d.target.Position()
	bounds := d.bounds.Bounds()
	groundY := d.bounds.GroundY()

	minD, maxD := d.cfg.MinSpawnDistance, d.cfg.MaxSpawnDistance
	for i := 0; i < d.cfg.PositionAttempts; i++ {
		ang := d.rng.Float64() * 2 * math.Pi
		radius := minD + d.rng.Float64()*(maxD-minD)
		p := Vec3{
			X: center.X + math.Cos(ang)*radius,
			Y: groundY,
			Z: center.Z + math.Sin(ang)*radius,
		}
		if !bounds.Contains(p) {
			continue
		}
		dSq := p.XZDistSq(center)
		if dSq < minD*minD || dSq > maxD*maxD {
			continue
		}
		return p, true
	}

	// Fallback: clamp a random offset into bounds. Contains rejects the
	// result when the bounds are empty or inverted.
	p := bounds.Clamp(Vec3{
		X: center.X + (d.rng.Float64()*2-1)*maxD,
		Y: groundY,
		Z: center.Z + (d.rng.Float64()*2-1)*maxD,
	})
	if !bounds.Contains(p) {
		return Vec3{}, false
	}
	return p, true
}

// forcePosition places without validation. Watchdog-only: a stalled
// simulation prefers an ugly spawn over an empty arena.
func (d *Director) forcePosition() Vec3 {
	center := d.target.Position()
	bounds := d.bounds.Bounds()
	return bounds.Clamp(Vec3{
		X: center.X + (d.rng.Float64()*2-1)*d.cfg.MaxSpawnDistance,
		Y: d.bounds.GroundY(),
		Z: center.Z + (d.rng.Float64()*2-1)*d.cfg.MaxSpawnDistance,
	})
}

func (d *Director) recoveryBurst() {
	n := d.cfg.RecoveryBurst
	if room := d.cfg.MaxPopulation - d.active; n > room {
		n = room
	}
	if n <= 0 {
		return
	}
	if d.log != nil {
		d.log.Warn("spawn stall detected, forcing recovery burst",
			zap.Int("count", n),
			zap.Int("active", d.active))
	}
	for i := 0; i < n; i++ {
		blk := d.selectKind()
		if blk == nil {
			return
		}
		d.spawn(blk, d.forcePosition())
	}
}

func (d *Director) spawnBoss() {
	d.bossTriggered = true
	blk := d.stats.Get(d.cfg.BossKind)
	if blk == nil {
		if d.log != nil {
			d.log.Error("boss kind not in stat table, boss fight skipped",
				zap.String("kind", d.cfg.BossKind))
		}
		return
	}
	pos, ok := d.findPosition()
	if !ok {
		pos = d.forcePosition()
	}
	// The boss ignores the population cap: it is the run's climax, not a
	// crowd member.
	e := d.spawn(blk, pos)
	if d.log != nil && e != nil {
		d.log.Info("boss spawned",
			zap.String("kind", blk.Kind),
			zap.Float64("elapsed", d.elapsed))
	}
}

func (d *Director) spawn(blk *data.StatBlock, pos Vec3) *Enemy {
	pool := d.pool(blk.Kind)
	e := pool.Get()
	e.Init(blk, pos, d.diff, &d.hooks, d.target)
	d.reg.Register(e)
	d.active++
	d.activeByKind[blk.Kind]++
	d.spawnedTotal++
	d.stallTimer = 0
	return e
}

func (d *Director) pool(kind string) *Pool[Enemy] {
	p, ok := d.pools[kind]
	if !ok {
		p = NewPool(d.cfg.PoolPrewarm, NewEnemy)
		d.pools[kind] = p
	}
	return p
}

// SpawnMinions implements MinionSpawner for boss summon cycles. Placement is
// a ring around the summoner, clamped into bounds; the per-kind cap and the
// global cap both bound the count.
func (d *Director) SpawnMinions(kind string, around Vec3, n, kindCap int) int {
	blk := d.stats.Get(kind)
	if blk == nil {
		if d.log != nil {
			d.log.Warn("minion kind not in stat table", zap.String("kind", kind))
		}
		return 0
	}
	if kindCap > 0 {
		if room := kindCap - d.activeByKind[kind]; n > room {
			n = room
		}
	}
	if room := d.cfg.MaxPopulation - d.active; n > room {
		n = room
	}
	bounds := d.bounds.Bounds()
	spawned := 0
	for i := 0; i < n; i++ {
		ang := d.rng.Float64() * 2 * math.Pi
		p := bounds.Clamp(Vec3{
			X: around.X + math.Cos(ang)*d.cfg.MinionRadius,
			Y: around.Y,
			Z: around.Z + math.Sin(ang)*d.cfg.MinionRadius,
		})
		d.spawn(blk, p)
		spawned++
	}
	return spawned
}

// Reclaim returns a fully-dead enemy (dissolve complete) to its pool. The
// pool's membership guard makes repeated reclaim of the same enemy a no-op,
// so the active counters never double-decrement.
func (d *Director) Reclaim(e *Enemy) {
	if !e.IsDead() || e.IsDissolving() {
		return
	}
	d.reg.Unregister(e)
	if d.pool(e.Kind()).Put(e) {
		d.active--
		d.activeByKind[e.Kind()]--
	}
}

// bossKilled latches the defeat flag exactly once, announces it, and sweeps
// any surviving minions of the boss's summon kind.
func (d *Director) bossKilled(kind string) {
	if d.bossDefeated {
		return
	}
	d.bossDefeated = true
	if d.bus != nil {
		event.Emit(d.bus, event.BossDefeated{Kind: kind})
	}
	if d.log != nil {
		d.log.Info("boss defeated", zap.String("kind", kind), zap.Float64("elapsed", d.elapsed))
	}
	blk := d.stats.Get(kind)
	if blk == nil || blk.MinionKind == "" {
		return
	}
	d.scratch = d.reg.All(d.scratch[:0])
	for _, e := range d.scratch {
		if e.Kind() == blk.MinionKind {
			e.Kill()
		}
	}
}

// MarkBossDefeated is the direct-call path to the same latch the kill event
// uses; callers outside the event flow (debug commands, tests) stay safe.
func (d *Director) MarkBossDefeated(kind string) {
	d.bossKilled(kind)
}

func (d *Director) onLevelUp(level int) {
	d.level = level
	d.diff = ComputeDifficulty(level, d.diffCfg)
	if d.log != nil {
		d.log.Info("difficulty adjusted",
			zap.Int("level", level),
			zap.Float64("spawn_interval", d.diff.SpawnInterval),
			zap.Int("per_wave", d.diff.PerWave))
	}
}
