package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CodingProgressRecord is one user's progress on a single coding problem
// within a plan. The (user_id, plan_id, problem_id) triple is unique; writes
// upsert in place.
type CodingProgressRecord struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	PlanID           uuid.UUID  `json:"plan_id"`
	ProblemID        string     `json:"problem_id"`
	Platform         string     `json:"platform"`
	Status           string     `json:"status"`
	SolvedAt         *time.Time `json:"solved_at,omitempty"`
	TimeSpentMinutes int        `json:"time_spent_minutes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UpsertCodingProgress records progress on a problem, replacing any earlier
// state for the same (user, plan, problem) triple.
func (db *DB) UpsertCodingProgress(ctx context.Context, rec CodingProgressRecord) (*CodingProgressRecord, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO coding_progress
		     (user_id, plan_id, problem_id, platform, status, solved_at, time_spent_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, plan_id, problem_id) DO UPDATE
		 SET platform = EXCLUDED.platform,
		     status = EXCLUDED.status,
		     solved_at = EXCLUDED.solved_at,
		     time_spent_minutes = EXCLUDED.time_spent_minutes,
		     updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		rec.UserID, rec.PlanID, rec.ProblemID, rec.Platform, rec.Status, rec.SolvedAt, rec.TimeSpentMinutes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert coding progress: %w", err)
	}
	return &rec, nil
}

// ListCodingProgress retrieves all progress rows for one of the user's plans,
// newest first.
func (db *DB) ListCodingProgress(ctx context.Context, userID, planID uuid.UUID) ([]CodingProgressRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, plan_id, problem_id, platform, status, solved_at, time_spent_minutes, created_at, updated_at
		 FROM coding_progress WHERE user_id = $1 AND plan_id = $2
		 ORDER BY created_at DESC`,
		userID, planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding progress: %w", err)
	}
	defer rows.Close()

	var records []CodingProgressRecord
	for rows.Next() {
		var rec CodingProgressRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PlanID, &rec.ProblemID, &rec.Platform,
			&rec.Status, &rec.SolvedAt, &rec.TimeSpentMinutes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coding progress: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list coding progress: %w", err)
	}
	return records, nil
}
