package todo

import "sync"

// Collection is the authoritative local set of tasks for one owner context.
//
// Only the sync controller writes to it; the calendar index and the HTTP
// handlers read from it. The HTTP surface introduces real goroutines, so
// access is guarded by an RWMutex rather than relying on a single-writer
// convention.
//
// Every mutation bumps a version counter. The calendar index keys its
// memoized month counts on that version, so any change to the collection
// invalidates derived views automatically.
type Collection struct {
	mu      sync.RWMutex
	tasks   map[string]Task
	version uint64
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		tasks: make(map[string]Task),
	}
}

// Upsert inserts the task if its ID is absent, or replaces the existing
// entry with the same ID. Neither path is an error.
func (c *Collection) Upsert(t Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks[t.ID] = t.Clone()
	c.version++
}

// Remove deletes the entry if present. Removing an absent ID is a no-op,
// so Remove is idempotent.
func (c *Collection) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tasks[id]; !ok {
		return
	}
	delete(c.tasks, id)
	c.version++
}

// Get returns a copy of the task with the given ID, or false if absent.
func (c *Collection) Get(id string) (Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.Clone(), true
}

// All returns a snapshot of the full current set of tasks. Ordering is not
// meaningful; callers that care about order sort for display.
func (c *Collection) All() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Len returns the number of tasks in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}

// Replace swaps the entire contents for the given tasks. Used when
// refreshing from the store.
func (c *Collection) Replace(tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = make(map[string]Task, len(tasks))
	for _, t := range tasks {
		c.tasks[t.ID] = t.Clone()
	}
	c.version++
}

// Version returns the current mutation counter. It increases on every
// Upsert, Remove, and Replace that changes the collection.
func (c *Collection) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
