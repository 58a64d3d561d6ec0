package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
)

// HistoryRepository reads and appends project_stage_history rows.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append records a transition into stage, stamped with the database clock.
func (r *HistoryRepository) Append(ctx context.Context, requirementID string, stage domain.Stage) (*domain.StageHistoryEntry, error) {
	query := `
		INSERT INTO project_stage_history (id, requirement_id, stage)
		VALUES ($1, $2, $3)
		RETURNING id, requirement_id, stage, changed_at
	`

	var e domain.StageHistoryEntry
	var st string
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), requirementID, string(stage)).
		Scan(&e.ID, &e.RequirementID, &st, &e.ChangedAt)
	if err != nil {
		return nil, fmt.Errorf("append stage history: %w", err)
	}
	e.Stage = domain.Stage(st)
	return &e, nil
}

// ListByRequirement returns the transitions of one requirement, oldest first.
func (r *HistoryRepository) ListByRequirement(ctx context.Context, requirementID string) ([]domain.StageHistoryEntry, error) {
	query := `
		SELECT id, requirement_id, stage, changed_at
		FROM project_stage_history
		WHERE requirement_id = $1
		ORDER BY changed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, requirementID)
	if err != nil {
		return nil, fmt.Errorf("list stage history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StageHistoryEntry, 0, 8)
	for rows.Next() {
		var e domain.StageHistoryEntry
		var st string
		if err := rows.Scan(&e.ID, &e.RequirementID, &st, &e.ChangedAt); err != nil {
			return nil, err
		}
		e.Stage = domain.Stage(st)
		out = append(out, e)
	}
	return out, rows.Err()
}
