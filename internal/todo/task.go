// Package todo provides the task data model and the in-memory collection
// that backs daygrid's calendar views.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority is the display priority of a task. Ordering among priorities is
// a presentation concern only; nothing schedules by it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a user-supplied string to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q (want low, medium, or high)", s)
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Validation sentinels. The sync controller rejects these before any store
// call or local mutation.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be low, medium, or high")
)

// Task represents one todo item.
//
// ID is assigned by the task store on creation and immutable thereafter.
// OwnerID scopes every operation; a task never changes owner. DueDate is
// optional and carries whatever time-of-day the caller supplied — indexing
// only ever looks at the calendar day, but the value round-trips verbatim.
type Task struct {
	// ===== Identity =====
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	// ===== Content =====
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// ===== Scheduling & Priority =====
	DueDate  *time.Time `json:"due_date,omitempty"`
	Priority Priority   `json:"priority"`

	// ===== State =====
	IsCompleted bool `json:"is_completed"`

	// ===== Timestamps =====
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the Task has valid field values. It is used on the
// file import/export path and by the store before persisting.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("owner_id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if len(t.Title) > 500 {
		return fmt.Errorf("title must be 500 characters or less (got %d)", len(t.Title))
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	if t.UpdatedAt.IsZero() {
		return fmt.Errorf("updated_at is required")
	}
	return nil
}

// SetDefaults applies default values for optional fields.
func (t *Task) SetDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now()
	}
}

// Touch sets UpdatedAt to the current time. Call on every mutation.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the task. DueDate is the only pointer
// field; copying it keeps snapshots independent of later mutations.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return c
}

// Equal reports whether two tasks have identical field values. DueDate is
// compared by instant, not by pointer.
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID ||
		t.OwnerID != other.OwnerID ||
		t.Title != other.Title ||
		t.Description != other.Description ||
		t.Priority != other.Priority ||
		t.IsCompleted != other.IsCompleted ||
		!t.CreatedAt.Equal(other.CreatedAt) ||
		!t.UpdatedAt.Equal(other.UpdatedAt) {
		return false
	}
	if (t.DueDate == nil) != (other.DueDate == nil) {
		return false
	}
	if t.DueDate != nil && !t.DueDate.Equal(*other.DueDate) {
		return false
	}
	return true
}
