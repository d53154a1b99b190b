package sync

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/todo"
)

// Action labels the kind of change announced to a Notifier.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes a committed change to the collection. Events are only
// emitted after the store has confirmed the operation; rolled-back
// mutations are never announced.
type Event struct {
	Action Action
	Task   todo.Task
}

// Notifier receives committed change events. The dashboard server
// implements this to broadcast task updates to WebSocket clients.
type Notifier interface {
	TaskChanged(ev Event)
}

// Controller is the only writer of the task collection. It applies
// optimistic local mutations, invokes the store gateway, and commits or
// rolls back based on the outcome.
type Controller struct {
	store  store.Gateway
	col    *todo.Collection
	logger *log.Logger

	notifyMu sync.RWMutex
	notify   Notifier

	// Per-task-ID locks serializing update/toggle/delete on the same
	// identifier. Entries are never evicted; the map is bounded by the
	// number of distinct tasks a personal list ever sees.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a Controller over the given gateway and collection.
//
// If logger is nil, a default logger writing to stderr is used.
//
// Example:
//
//	st, err := sqlite.Open(dbPath)
//	if err != nil {
//	    return err
//	}
//	ctrl := sync.New(st, todo.NewCollection(), nil)
func New(gw store.Gateway, col *todo.Collection, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &Controller{
		store:  gw,
		col:    col,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Collection returns the controller's task collection for read access.
func (c *Controller) Collection() *todo.Collection {
	return c.col
}

// SetNotifier installs the event sink. Pass nil to disable notification.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifyMu.Lock()
	c.notify = n
	c.notifyMu.Unlock()
}

func (c *Controller) emit(action Action, task todo.Task) {
	c.notifyMu.RLock()
	n := c.notify
	c.notifyMu.RUnlock()
	if n != nil {
		n.TaskChanged(Event{Action: action, Task: task})
	}
}

// lockTask acquires the per-ID mutex for the given task and returns the
// unlock function.
func (c *Controller) lockTask(id string) func() {
	c.locksMu.Lock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	c.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Refresh replaces the collection contents with the store's current set
// of tasks for the owner. Returns the number of tasks loaded.
func (c *Controller) Refresh(ctx context.Context, ownerID string) (int, error) {
	tasks, err := c.store.ListTasks(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("refresh tasks: %w", err)
	}

	c.col.Replace(tasks)
	c.logger.Printf("Refreshed collection: %d tasks", len(tasks))
	return len(tasks), nil
}

// Create validates the parameters, asks the store to persist a new task,
// and inserts the store-assigned record into the collection. On failure
// the collection is untouched.
func (c *Controller) Create(ctx context.Context, p store.CreateParams) (todo.Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return todo.Task{}, fmt.Errorf("create task: %w", todo.ErrTitleRequired)
	}
	if p.Priority == "" {
		p.Priority = todo.PriorityMedium
	}
	if !p.Priority.Valid() {
		return todo.Task{}, fmt.Errorf("create task: %w", todo.ErrInvalidPriority)
	}

	created, err := c.store.CreateTask(ctx, p)
	if err != nil {
		return todo.Task{}, fmt.Errorf("create task: %w", err)
	}

	c.col.Upsert(created)
	c.logger.Printf("Created task: %s (%s)", created.ID, created.Title)
	c.emit(ActionCreated, created)
	return created, nil
}

// Update replaces all mutable fields of the task. The mutation is applied
// to the collection optimistically and rolled back if the store rejects
// it.
func (c *Controller) Update(ctx context.Context, ownerID, id string, f store.Fields) (todo.Task, error) {
	if strings.TrimSpace(f.Title) == "" {
		return todo.Task{}, fmt.Errorf("update task %s: %w", id, todo.ErrTitleRequired)
	}
	if !f.Priority.Valid() {
		return todo.Task{}, fmt.Errorf("update task %s: %w", id, todo.ErrInvalidPriority)
	}

	unlock := c.lockTask(id)
	defer unlock()

	return c.apply(ctx, ownerID, id, f, "update task")
}

// ToggleComplete flips IsCompleted on the task, sending the full current
// record with the completion bit inverted. The payload is composed from
// the record as of this call — the per-ID lock guarantees any earlier
// mutation on the same task has already committed or rolled back.
func (c *Controller) ToggleComplete(ctx context.Context, ownerID, id string) (todo.Task, error) {
	unlock := c.lockTask(id)
	defer unlock()

	current, ok := c.col.Get(id)
	if !ok {
		fetched, err := c.store.GetTask(ctx, id, ownerID)
		if err != nil {
			return todo.Task{}, fmt.Errorf("toggle task %s: %w", id, err)
		}
		c.col.Upsert(fetched)
		current = fetched
	}

	f := store.Fields{
		Title:       current.Title,
		Description: current.Description,
		DueDate:     current.DueDate,
		Priority:    current.Priority,
		IsCompleted: !current.IsCompleted,
	}

	return c.apply(ctx, ownerID, id, f, "toggle task")
}

// apply runs the optimistic update protocol for update and toggle. The
// caller must hold the per-ID lock.
func (c *Controller) apply(ctx context.Context, ownerID, id string, f store.Fields, op string) (todo.Task, error) {
	snapshot, existed := c.col.Get(id)
	if !existed {
		fetched, err := c.store.GetTask(ctx, id, ownerID)
		if err != nil {
			return todo.Task{}, fmt.Errorf("%s %s: %w", op, id, err)
		}
		c.col.Upsert(fetched)
		snapshot = fetched
	}

	tentative := snapshot.Clone()
	tentative.Title = f.Title
	tentative.Description = f.Description
	tentative.DueDate = f.DueDate
	tentative.Priority = f.Priority
	tentative.IsCompleted = f.IsCompleted
	tentative.UpdatedAt = time.Now()
	c.col.Upsert(tentative)

	echoed, err := c.store.UpdateTask(ctx, id, ownerID, f)
	if err != nil {
		// Restore the exact pre-mutation record, not a refetch.
		c.col.Upsert(snapshot)
		return todo.Task{}, fmt.Errorf("%s %s: %w", op, id, err)
	}

	c.col.Upsert(echoed)
	c.logger.Printf("Updated task: %s (%s)", echoed.ID, echoed.Title)
	c.emit(ActionUpdated, echoed)
	return echoed, nil
}

// Delete removes the task locally, then from the store. If the store call
// fails, the previously removed record is reinserted exactly as it was.
func (c *Controller) Delete(ctx context.Context, ownerID, id string) error {
	unlock := c.lockTask(id)
	defer unlock()

	snapshot, existed := c.col.Get(id)
	if existed {
		c.col.Remove(id)
	}

	if err := c.store.DeleteTask(ctx, id, ownerID); err != nil {
		if existed {
			c.col.Upsert(snapshot)
		}
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	c.logger.Printf("Deleted task: %s", id)
	c.emit(ActionDeleted, snapshot)
	return nil
}
