package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Email   string `json:"email" validate:"required,email"`
	Note    string `json:"note" validate:"max=5"`
	Level   string `json:"level" validate:"omitempty,oneof=a b"`
	Code    string `json:"code" validate:"omitempty,even_len"`
}

func init() {
	Register("even_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	})
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(form{DueDate: "10/12/2025", Email: "nope", Note: "toolong", Level: "c", Code: "abc"})

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, map[string]string{
		"due_date": "due date must be a date (YYYY-MM-DD)",
		"email":    "Invalid email",
		"note":     "note must be at most 5 characters",
		"level":    "level must be one of: a b",
		"code":     "invalid code",
	}, vErr.Fields)
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(form{DueDate: "2025-12-10", Email: "ann@example.com"}))

	err := Struct(form{})
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "due date is required", vErr.Fields["due_date"])
}

func TestError(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())

	wrapped := fmt.Errorf("create: %w", NewError("title", "title is required"))
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
	assert.True(t, strings.HasPrefix(wrapped.Error(), "create: validation failed"))
}
