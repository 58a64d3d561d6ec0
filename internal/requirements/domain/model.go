package domain

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Requirement is a tracked R&D project item.
type Requirement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Stage       Stage     `json:"stage"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StageHistoryEntry records one accepted stage transition. Rows are never
// updated or deleted.
type StageHistoryEntry struct {
	ID            string    `json:"id"`
	RequirementID string    `json:"requirement_id"`
	Stage         Stage     `json:"stage"`
	ChangedAt     time.Time `json:"changed_at"`
}

type Comment struct {
	ID            string    `json:"id"`
	RequirementID string    `json:"requirement_id"`
	AuthorName    string    `json:"author_name"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRequirementInput is the project creation form.
type CreateRequirementInput struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=500"`
	Stage       Stage    `json:"stage" validate:"required,stage"`
	Priority    Priority `json:"priority" validate:"required,oneof=low medium high"`
	Assignee    string   `json:"assignee" validate:"required,max=100"`
	DueDate     string   `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// Normalize trims the free-text single line fields and applies the form defaults.
func (in *CreateRequirementInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Assignee = strings.TrimSpace(in.Assignee)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
}

// UpdateDetailsInput is the detail edit form.
type UpdateDetailsInput struct {
	Description string `json:"description" validate:"required,max=500"`
	Stage       Stage  `json:"stage" validate:"required,stage"`
}

type CreateCommentInput struct {
	RequirementID string `json:"requirement_id" validate:"required"`
	AuthorName    string `json:"author_name" validate:"required,max=100"`
	Content       string `json:"content" validate:"required,max=1000"`
}

// ListOrder selects the sort column of a requirement listing; both are descending.
type ListOrder string

const (
	OrderCreatedDesc ListOrder = "created_at"
	OrderUpdatedDesc ListOrder = "updated_at"
)

// ParseListOrder maps a query value to a ListOrder, defaulting to created_at.
func ParseListOrder(v string) (ListOrder, bool) {
	switch ListOrder(strings.TrimSpace(v)) {
	case "", OrderCreatedDesc:
		return OrderCreatedDesc, true
	case OrderUpdatedDesc:
		return OrderUpdatedDesc, true
	default:
		return "", false
	}
}

// UpdateResult is the canonical state after a detail edit.
type UpdateResult struct {
	Requirement  *Requirement       `json:"requirement"`
	StageChanged bool               `json:"stage_changed"`
	HistoryEntry *StageHistoryEntry `json:"history_entry,omitempty"`
}
