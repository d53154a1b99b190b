package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbickell/daygrid/internal/todo"
)

func newTask(id, title string, due *time.Time) todo.Task {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	return todo.Task{
		ID:        id,
		OwnerID:   "owner-1",
		Title:     title,
		DueDate:   due,
		Priority:  todo.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func duePtr(t time.Time) *time.Time { return &t }

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 10, 8, 15, 0, 0, time.Local)
	evening := time.Date(2024, 5, 10, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2024, 5, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestTasksOnDayIgnoresTimeOfDay(t *testing.T) {
	col := todo.NewCollection()
	col.Upsert(newTask("t1", "Morning", duePtr(time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local))))
	col.Upsert(newTask("t2", "Evening", duePtr(time.Date(2024, 5, 10, 22, 30, 0, 0, time.Local))))
	col.Upsert(newTask("t3", "Other day", duePtr(time.Date(2024, 5, 11, 8, 0, 0, 0, time.Local))))
	col.Upsert(newTask("t4", "No due date", nil))

	got := TasksOnDay(col, time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local))
	require.Len(t, got, 2)
	for _, task := range got {
		assert.Contains(t, []string{"t1", "t2"}, task.ID)
	}
}

func TestTasksOnDayExcludesNilDueDate(t *testing.T) {
	col := todo.NewCollection()
	col.Upsert(newTask("t1", "Undated", nil))

	for day := 1; day <= 31; day++ {
		got := TasksOnDay(col, time.Date(2024, 5, day, 0, 0, 0, 0, time.Local))
		assert.Empty(t, got, "day %d", day)
	}
}

func TestCountsForMonth(t *testing.T) {
	col := todo.NewCollection()
	// 4 tasks due May 10, 2 due May 15, one with no due date.
	for i := 0; i < 4; i++ {
		col.Upsert(newTask(fmt.Sprintf("a%d", i), "May 10", duePtr(time.Date(2024, 5, 10, i, 0, 0, 0, time.Local))))
	}
	for i := 0; i < 2; i++ {
		col.Upsert(newTask(fmt.Sprintf("b%d", i), "May 15", duePtr(time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local))))
	}
	col.Upsert(newTask("c0", "Undated", nil))
	col.Upsert(newTask("d0", "June", duePtr(time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))))

	counts := CountsForMonth(col, 2024, time.May)

	assert.Equal(t, map[int]int{10: 4, 15: 2}, counts)
	// Absent key reads as zero.
	assert.Zero(t, counts[11])
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.May, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
	}

	for _, tt := range tests {
		days := DaysInMonth(tt.year, tt.month)
		require.Len(t, days, tt.want, "%d-%02d", tt.year, tt.month)
		assert.Equal(t, 1, days[0].Day())
		assert.Equal(t, tt.want, days[len(days)-1].Day())
		assert.Equal(t, tt.month, days[0].Month())
	}
}

func TestIndexInvalidatesOnMutation(t *testing.T) {
	col := todo.NewCollection()
	col.Upsert(newTask("t1", "May 10", duePtr(time.Date(2024, 5, 10, 10, 0, 0, 0, time.Local))))

	ix := NewIndex(col)

	counts := ix.CountsForMonth(2024, time.May)
	assert.Equal(t, map[int]int{10: 1}, counts)

	// Cached result on a second read with no changes.
	assert.Equal(t, counts, ix.CountsForMonth(2024, time.May))

	// Any mutation invalidates the cache.
	col.Upsert(newTask("t2", "Also May 10", duePtr(time.Date(2024, 5, 10, 16, 0, 0, 0, time.Local))))
	assert.Equal(t, map[int]int{10: 2}, ix.CountsForMonth(2024, time.May))

	col.Remove("t1")
	col.Remove("t2")
	assert.Empty(t, ix.CountsForMonth(2024, time.May))
}

func TestIndexCopyIsSafe(t *testing.T) {
	col := todo.NewCollection()
	col.Upsert(newTask("t1", "May 10", duePtr(time.Date(2024, 5, 10, 10, 0, 0, 0, time.Local))))

	ix := NewIndex(col)
	counts := ix.CountsForMonth(2024, time.May)
	counts[10] = 99

	assert.Equal(t, map[int]int{10: 1}, ix.CountsForMonth(2024, time.May))
}
