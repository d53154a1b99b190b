package calendar

import (
	"sync"
	"time"

	"github.com/sbickell/daygrid/internal/todo"
)

// Index memoizes month counts for a collection. Recomputing on every call
// would be fine for personal task lists; the cache exists because the
// dashboard polls month counts on every render.
//
// The cache is keyed on the collection's version counter, so any mutation
// to the collection invalidates it on the next read. The Index never
// persists anything and never mutates the collection.
type Index struct {
	col *todo.Collection

	mu      sync.Mutex
	version uint64
	year    int
	month   time.Month
	counts  map[int]int
}

// NewIndex returns an Index over the given collection.
func NewIndex(col *todo.Collection) *Index {
	return &Index{col: col}
}

// CountsForMonth returns the per-day task counts for the given month,
// recomputing only when the collection has changed since the cached
// result or a different month is requested.
func (ix *Index) CountsForMonth(year int, month time.Month) map[int]int {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	version := ix.col.Version()
	if ix.counts != nil && ix.version == version && ix.year == year && ix.month == month {
		return copyCounts(ix.counts)
	}

	ix.counts = CountsForMonth(ix.col, year, month)
	ix.version = version
	ix.year = year
	ix.month = month
	return copyCounts(ix.counts)
}

// TasksOnDay returns the tasks due on the given date. Day lookups are
// cheap enough that they are not cached.
func (ix *Index) TasksOnDay(date time.Time) []todo.Task {
	return TasksOnDay(ix.col, date)
}

func copyCounts(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
