package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
)

// CommentRepository reads and appends requirement_comments rows.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, in domain.CreateCommentInput) (*domain.Comment, error) {
	query := `
		INSERT INTO requirement_comments (id, requirement_id, author_name, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, requirement_id, author_name, content, created_at
	`

	var c domain.Comment
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), in.RequirementID, in.AuthorName, in.Content).
		Scan(&c.ID, &c.RequirementID, &c.AuthorName, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}

// ListByRequirement returns the comments of one requirement, oldest first.
func (r *CommentRepository) ListByRequirement(ctx context.Context, requirementID string) ([]domain.Comment, error) {
	query := `
		SELECT id, requirement_id, author_name, content, created_at
		FROM requirement_comments
		WHERE requirement_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, requirementID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Comment, 0, 8)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.RequirementID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
