package persist

import (
	"context"
)

// RunSnapshot is one telemetry sample of a running simulation.
type RunSnapshot struct {
	Elapsed      float64
	Ticks        int64
	Spawned      int64
	Killed       int64
	Population   int
	PlayerLevel  int
	BossDefeated bool
}

// RunRepo records run telemetry into the runs table. One row per run,
// updated in place on every flush.
type RunRepo struct {
	db    *DB
	runID int64
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Begin inserts the run row and remembers its id for later flushes.
func (r *RunRepo) Begin(ctx context.Context, seed int64) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (seed) VALUES ($1) RETURNING id`, seed,
	).Scan(&r.runID)
}

// Flush updates the run row with the latest snapshot.
func (r *RunRepo) Flush(ctx context.Context, snap RunSnapshot) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE runs
		 SET updated_at = now(),
		     elapsed = $2, ticks = $3, spawned = $4, killed = $5,
		     population = $6, player_level = $7, boss_defeated = $8
		 WHERE id = $1`,
		r.runID,
		snap.Elapsed, snap.Ticks, snap.Spawned, snap.Killed,
		snap.Population, snap.PlayerLevel, snap.BossDefeated,
	)
	return err
}

// RunID returns the id assigned by Begin, 0 before.
func (r *RunRepo) RunID() int64 { return r.runID }
