package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Behavior selects which state machine an enemy kind runs.
const (
	BehaviorBasic  = "basic"  // melee chaser
	BehaviorRanged = "ranged" // keeps distance, flees when crowded
	BehaviorMortar = "mortar" // lobbed arcing shots, long minimum range
	BehaviorBoss   = "boss"   // melee + periodic minion spawning
)

// StatBlock holds the immutable per-kind stats loaded from YAML.
// Shared by every live enemy of the kind and never mutated per instance.
type StatBlock struct {
	Kind            string  `yaml:"kind"`
	Name            string  `yaml:"name"`
	Behavior        string  `yaml:"behavior"`
	MaxHealth       float64 `yaml:"max_health"`
	MoveSpeed       float64 `yaml:"move_speed"`     // units/second
	RotationSpeed   float64 `yaml:"rotation_speed"` // radians/second
	AttackRange     float64 `yaml:"attack_range"`
	StopDistance    float64 `yaml:"stop_distance"`
	FleeDistance    float64 `yaml:"flee_distance"`    // ranged/mortar: back off inside this
	AttackCooldown  float64 `yaml:"attack_cooldown"`  // seconds
	Damage          float64 `yaml:"damage"`
	ProjectileSpeed float64 `yaml:"projectile_speed"` // 0 = contact attack
	XPReward        int     `yaml:"xp_reward"`
	SpawnWeight     int     `yaml:"spawn_weight"`
	UnlockLevel     int     `yaml:"unlock_level"`
	MinSpawnTime    float64 `yaml:"min_spawn_time"` // seconds of elapsed game time
	DissolveTime    float64 `yaml:"dissolve_time"`  // post-death corpse fade, seconds

	// Boss-only fields.
	MinionKind     string  `yaml:"minion_kind"`
	MinionCap      int     `yaml:"minion_cap"`
	MinionBurst    int     `yaml:"minion_burst"`
	MinionCooldown float64 `yaml:"minion_cooldown"` // seconds
}

type statListFile struct {
	Enemies []StatBlock `yaml:"enemies"`
}

// StatTable holds all enemy stat blocks. Kinds keeps YAML file order so
// weighted-selection tables are deterministic under a fixed seed.
type StatTable struct {
	kinds []*StatBlock
	byID  map[string]*StatBlock
}

// LoadStatTable loads enemy stat blocks from a YAML file.
func LoadStatTable(path string) (*StatTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy_list: %w", err)
	}
	var f statListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy_list: %w", err)
	}
	blocks := make([]*StatBlock, 0, len(f.Enemies))
	for i := range f.Enemies {
		blocks = append(blocks, &f.Enemies[i])
	}
	return NewStatTable(blocks)
}

// NewStatTable builds a table from in-memory blocks (tests, tools).
func NewStatTable(blocks []*StatBlock) (*StatTable, error) {
	t := &StatTable{
		kinds: make([]*StatBlock, 0, len(blocks)),
		byID:  make(map[string]*StatBlock, len(blocks)),
	}
	for _, b := range blocks {
		if b.Kind == "" {
			return nil, fmt.Errorf("stat block %q has empty kind", b.Name)
		}
		if _, dup := t.byID[b.Kind]; dup {
			return nil, fmt.Errorf("duplicate stat block kind %q", b.Kind)
		}
		switch b.Behavior {
		case BehaviorBasic, BehaviorRanged, BehaviorMortar, BehaviorBoss:
		default:
			return nil, fmt.Errorf("stat block %q: unknown behavior %q", b.Kind, b.Behavior)
		}
		t.kinds = append(t.kinds, b)
		t.byID[b.Kind] = b
	}
	return t, nil
}

// Get returns the stat block for a kind, or nil if unknown.
func (t *StatTable) Get(kind string) *StatBlock {
	return t.byID[kind]
}

// Kinds returns all stat blocks in load order.
func (t *StatTable) Kinds() []*StatBlock {
	return t.kinds
}

// Count returns the number of loaded stat blocks.
func (t *StatTable) Count() int {
	return len(t.kinds)
}

// Arena holds the world-bounds parameters loaded from YAML.
type Arena struct {
	MinX    float64 `yaml:"min_x"`
	MinZ    float64 `yaml:"min_z"`
	MaxX    float64 `yaml:"max_x"`
	MaxZ    float64 `yaml:"max_z"`
	GroundY float64 `yaml:"ground_y"`
}

type arenaFile struct {
	Arena Arena `yaml:"arena"`
}

// LoadArena loads arena bounds from a YAML file.
func LoadArena(path string) (*Arena, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	var f arenaFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse arena: %w", err)
	}
	return &f.Arena, nil
}
