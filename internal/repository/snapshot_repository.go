package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/ghostquant-backend-go/internal/database"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// SnapshotRepository handles database operations for heatmap snapshots
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores a snapshot with its scores. An empty ID is replaced with a new uuid.
func (r *SnapshotRepository) Save(ctx context.Context, snap *models.HeatmapSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO heatmap_snapshots (id, source, captured_at, global_risk) VALUES (?, ?, ?, ?)`,
			snap.ID, snap.Source, snap.CapturedAt.UnixMilli(), snap.GlobalRisk,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO heatmap_scores (snapshot_id, layer, position, category, score) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare score insert: %w", err)
		}
		defer stmt.Close()

		for layer, scores := range snap.Raw {
			for i, e := range scores {
				if _, err := stmt.ExecContext(ctx, snap.ID, layer, i, e.Key, e.Score); err != nil {
					return fmt.Errorf("failed to insert score %s/%s: %w", layer, e.Key, err)
				}
			}
		}
		return nil
	})
}

// Latest returns the most recent snapshot, or nil when none exist
func (r *SnapshotRepository) Latest(ctx context.Context) (*models.HeatmapSnapshot, error) {
	return r.latest(ctx, "")
}

// LatestFrom returns the most recent snapshot taken from source, or nil when none exist
func (r *SnapshotRepository) LatestFrom(ctx context.Context, source string) (*models.HeatmapSnapshot, error) {
	return r.latest(ctx, source)
}

func (r *SnapshotRepository) latest(ctx context.Context, source string) (*models.HeatmapSnapshot, error) {
	var snap models.HeatmapSnapshot
	var capturedAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, captured_at, global_risk FROM heatmap_snapshots
		WHERE ? = '' OR source = ?
		ORDER BY captured_at DESC, rowid DESC LIMIT 1`, source, source,
	).Scan(&snap.ID, &snap.Source, &capturedAt, &snap.GlobalRisk)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	snap.CapturedAt = time.UnixMilli(capturedAt).UTC()

	raw, err := r.loadScores(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Raw = raw
	return &snap, nil
}

func (r *SnapshotRepository) loadScores(ctx context.Context, snapshotID string) (models.HeatmapRaw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT layer, category, score FROM heatmap_scores
		WHERE snapshot_id = ? ORDER BY layer, position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	raw := make(models.HeatmapRaw)
	for rows.Next() {
		var layer string
		var e models.ScoreEntry
		if err := rows.Scan(&layer, &e.Key, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		raw[layer] = append(raw[layer], e)
	}
	return raw, rows.Err()
}

// History lists recent snapshots, newest first
func (r *SnapshotRepository) History(ctx context.Context, limit int) ([]models.SnapshotSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.source, s.captured_at, s.global_risk,
			(SELECT COUNT(*) FROM heatmap_scores sc WHERE sc.snapshot_id = s.id)
		FROM heatmap_snapshots s
		ORDER BY s.captured_at DESC, s.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot history: %w", err)
	}
	defer rows.Close()

	history := make([]models.SnapshotSummary, 0)
	for rows.Next() {
		var s models.SnapshotSummary
		var capturedAt int64
		if err := rows.Scan(&s.ID, &s.Source, &capturedAt, &s.GlobalRisk, &s.ScoreCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.CapturedAt = time.UnixMilli(capturedAt).UTC()
		history = append(history, s)
	}
	return history, rows.Err()
}

// Prune keeps the newest keep snapshots and deletes the rest.
// It returns the number of snapshots deleted.
func (r *SnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	var deleted int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stale := `SELECT id FROM heatmap_snapshots ORDER BY captured_at DESC, rowid DESC LIMIT -1 OFFSET ?`
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM heatmap_scores WHERE snapshot_id IN (`+stale+`)`, keep); err != nil {
			return fmt.Errorf("failed to prune scores: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM heatmap_snapshots WHERE id IN (`+stale+`)`, keep)
		if err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
