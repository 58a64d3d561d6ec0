package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/rdboard/rd-tracker-backend/internal/validation"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateEmail = errors.New("a member with this email already exists")
)

// Member is a directory entry used to autocomplete and validate people's names.
type Member struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department"`
	Role       *string   `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// MemberInput is shared by create and update.
type MemberInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Department string `json:"department" validate:"max=100"`
	Role       string `json:"role" validate:"max=100"`
}

func (in *MemberInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Department = strings.TrimSpace(in.Department)
	in.Role = strings.TrimSpace(in.Role)
}

func (in MemberInput) Validate() error {
	return validation.Struct(in)
}

// Optional turns an empty optional field into a NULL.
func Optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
