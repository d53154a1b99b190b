// Package store defines the task store gateway consumed by the sync
// controller.
//
// Every operation is scoped by owner ID: a request for a task owned by a
// different owner fails with ErrNotFound, never silently succeeds.
// Validation happens before the gateway is reached; any error returned
// from a gateway is either ErrNotFound or a transport/store failure, and
// both trigger rollback in the controller.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sbickell/daygrid/internal/todo"
)

// ErrNotFound is returned when the target task does not exist in the
// store, or exists under a different owner.
var ErrNotFound = errors.New("task not found")

// CreateParams carries the caller-supplied fields for a new task. The
// store assigns the ID and timestamps.
type CreateParams struct {
	OwnerID     string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    todo.Priority
}

// Fields is the full replacement set for an update. Toggling completion
// uses the same contract: all current fields plus inverted IsCompleted.
type Fields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    todo.Priority
	IsCompleted bool
}

// Gateway is the CRUD capability the sync controller talks to.
type Gateway interface {
	// CreateTask persists a new task and returns it with the
	// store-assigned ID and timestamps.
	CreateTask(ctx context.Context, p CreateParams) (todo.Task, error)

	// GetTask returns the task with the given ID, scoped to ownerID.
	GetTask(ctx context.Context, id, ownerID string) (todo.Task, error)

	// UpdateTask replaces all mutable fields of the task and returns the
	// stored record (the store refreshes UpdatedAt).
	UpdateTask(ctx context.Context, id, ownerID string, f Fields) (todo.Task, error)

	// DeleteTask removes the task. Deleting a task that does not exist
	// for this owner returns ErrNotFound.
	DeleteTask(ctx context.Context, id, ownerID string) error

	// ListTasks returns every task belonging to ownerID.
	ListTasks(ctx context.Context, ownerID string) ([]todo.Task, error)
}
