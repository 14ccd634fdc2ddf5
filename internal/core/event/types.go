package event

// Events carry primitive fields only so this package stays import-free.

// EnemyKilled fires when an enemy's health reaches zero (before the corpse
// finishes dissolving).
type EnemyKilled struct {
	Kind    string
	XP      int
	Boss    bool
	X, Y, Z float64
}

// LevelUp fires when accumulated XP pushes the player past a level boundary.
type LevelUp struct {
	Level int
}

// BossDefeated fires at most once per run.
type BossDefeated struct {
	Kind string
}

// FloorCollapsed announces that the ground under the arena gave way;
// every live enemy relocates to NewGroundY after a distance-scaled delay.
type FloorCollapsed struct {
	X, Y, Z    float64 // epicenter
	NewGroundY float64
}
