package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
)

const requirementColumns = `id, title, description, stage, priority, assignee, due_date::text, created_at, updated_at`

// RequirementRepository provides persistence operations for requirements
type RequirementRepository struct {
	db *sql.DB
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db *sql.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// Create inserts a requirement and returns the stored row.
func (r *RequirementRepository) Create(ctx context.Context, in domain.CreateRequirementInput) (*domain.Requirement, error) {
	query := `
		INSERT INTO requirements (id, title, description, stage, priority, assignee, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date)
		RETURNING ` + requirementColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		in.Title,
		in.Description,
		string(in.Stage),
		string(in.Priority),
		in.Assignee,
		in.DueDate,
	)

	req, err := scanRequirement(row)
	if err != nil {
		return nil, fmt.Errorf("insert requirement: %w", err)
	}
	return req, nil
}

// List returns every requirement, newest first by the chosen column.
func (r *RequirementRepository) List(ctx context.Context, order domain.ListOrder) ([]domain.Requirement, error) {
	orderBy := "created_at DESC"
	if order == domain.OrderUpdatedDesc {
		orderBy = "updated_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+requirementColumns+` FROM requirements ORDER BY `+orderBy)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Requirement, 0, 32)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns domain.ErrNotFound for unknown or malformed ids.
func (r *RequirementRepository) GetByID(ctx context.Context, id string) (*domain.Requirement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+requirementColumns+` FROM requirements WHERE id = $1`, id)
	req, err := scanRequirement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// UpdateDetails writes the detail edit form fields and returns the row along
// with the stage it held before the write. The old stage is read under the
// same row lock as the update, so concurrent edits each see the stage the
// other one left behind.
func (r *RequirementRepository) UpdateDetails(ctx context.Context, id string, in domain.UpdateDetailsInput) (*domain.Requirement, domain.Stage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", domain.ErrNotFound
	}

	query := `
		WITH prev AS (
			SELECT id, stage FROM requirements WHERE id = $1 FOR UPDATE
		)
		UPDATE requirements r
		SET description = $2, stage = $3, updated_at = NOW()
		FROM prev
		WHERE r.id = prev.id
		RETURNING r.id, r.title, r.description, r.stage, r.priority, r.assignee,
			r.due_date::text, r.created_at, r.updated_at, prev.stage`

	var prev string
	req, err := scanRequirement(r.db.QueryRowContext(ctx, query, id, in.Description, string(in.Stage)), &prev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("update requirement: %w", err)
	}
	return req, domain.Stage(prev), nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRequirement reads the requirementColumns in order, then any trailing
// columns into extra.
func scanRequirement(s scanner, extra ...any) (*domain.Requirement, error) {
	var req domain.Requirement
	var stage, priority string
	dest := []any{
		&req.ID,
		&req.Title,
		&req.Description,
		&stage,
		&priority,
		&req.Assignee,
		&req.DueDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	req.Stage = domain.Stage(stage)
	req.Priority = domain.Priority(priority)
	return &req, nil
}
