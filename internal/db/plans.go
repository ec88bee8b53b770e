package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marcus/studyplan/internal/plan"
)

// PlanRecord is a stored plan row. Document holds the plan body as JSONB;
// Version increments on every document write and backs optimistic
// concurrency control.
type PlanRecord struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Document  plan.StoredDocument `json:"document"`
	Version   int64               `json:"version"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// InsertPlan stores a new plan document for a user and returns the full record
func (db *DB) InsertPlan(ctx context.Context, userID uuid.UUID, doc plan.StoredDocument) (*PlanRecord, error) {
	rec := PlanRecord{UserID: userID, Document: doc}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO plans (user_id, document)
		 VALUES ($1, $2)
		 RETURNING id, version, created_at, updated_at`,
		userID, doc,
	).Scan(&rec.ID, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert plan: %w", err)
	}
	return &rec, nil
}

// GetPlan retrieves a plan owned by userID. Returns nil when the plan does
// not exist or belongs to another user.
func (db *DB) GetPlan(ctx context.Context, planID, userID uuid.UUID) (*PlanRecord, error) {
	var rec PlanRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, document, version, created_at, updated_at
		 FROM plans WHERE id = $1 AND user_id = $2`,
		planID, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Document, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &rec, nil
}

// ListPlans retrieves all plans owned by userID, newest first
func (db *DB) ListPlans(ctx context.Context, userID uuid.UUID) ([]PlanRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, document, version, created_at, updated_at
		 FROM plans WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Document, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return records, nil
}

// UpdatePlanDocument replaces a plan's document if its version still matches
// expectedVersion. Returns false without error when another writer won the
// race; callers re-read and retry.
func (db *DB) UpdatePlanDocument(ctx context.Context, planID, userID uuid.UUID, doc plan.StoredDocument, expectedVersion int64) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE plans SET document = $3, version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND version = $4`,
		planID, userID, doc, expectedVersion,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update plan: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeletePlan removes a plan owned by userID. Returns false when no matching
// plan exists.
func (db *DB) DeletePlan(ctx context.Context, planID, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete plan: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
