package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rdboard/rd-tracker-backend/internal/members/domain"
	"github.com/rdboard/rd-tracker-backend/internal/storage/postgres"
)

const (
	memberColumns   = `id, name, email, department, role, created_at`
	emailConstraint = "members_email_key"
)

// MemberRepository provides persistence operations for the member directory
type MemberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns all members sorted alphabetically by name.
func (r *MemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Member, 0, 16)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MemberRepository) Create(ctx context.Context, in domain.MemberInput) (*domain.Member, error) {
	query := `
		INSERT INTO members (id, name, email, department, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + memberColumns

	m, err := scanMember(r.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		in.Name,
		in.Email,
		domain.Optional(in.Department),
		domain.Optional(in.Role),
	))
	if err != nil {
		if postgres.IsUniqueViolation(err, emailConstraint) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) Update(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrMemberNotFound
	}

	query := `
		UPDATE members
		SET name = $2, email = $3, department = $4, role = $5
		WHERE id = $1
		RETURNING ` + memberColumns

	m, err := scanMember(r.db.QueryRowContext(ctx, query,
		id,
		in.Name,
		in.Email,
		domain.Optional(in.Department),
		domain.Optional(in.Role),
	))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrMemberNotFound
		case postgres.IsUniqueViolation(err, emailConstraint):
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrMemberNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMember(s scanner) (*domain.Member, error) {
	var m domain.Member
	if err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Department, &m.Role, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
