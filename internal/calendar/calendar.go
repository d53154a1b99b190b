// Package calendar derives day and month views from a task collection.
//
// The views are pure functions over the collection's current contents:
// nothing here is a second source of truth, and nothing here performs I/O.
// Tasks without a due date never appear in any result. Matching is by
// calendar day (year, month, day) in local time, never by timestamp
// equality, because due dates may carry incidental time-of-day.
package calendar

import (
	"time"

	"github.com/sbickell/daygrid/internal/todo"
)

// SameDay reports whether a and b fall on the same calendar day in local
// time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// TasksOnDay returns the tasks in the collection whose due date falls on
// the same calendar day as date. Tasks without a due date are excluded.
func TasksOnDay(c *todo.Collection, date time.Time) []todo.Task {
	var out []todo.Task
	for _, t := range c.All() {
		if t.DueDate == nil {
			continue
		}
		if SameDay(*t.DueDate, date) {
			out = append(out, t)
		}
	}
	return out
}

// CountsForMonth returns a map from day-of-month to the number of tasks
// due that day. Days with zero tasks are omitted; callers treat missing
// keys as zero.
func CountsForMonth(c *todo.Collection, year int, month time.Month) map[int]int {
	counts := make(map[int]int)
	for _, t := range c.All() {
		if t.DueDate == nil {
			continue
		}
		y, m, d := t.DueDate.Local().Date()
		if y == year && m == month {
			counts[d]++
		}
	}
	return counts
}

// DaysInMonth returns the ordered sequence of calendar dates from the
// first to the last day of the given month, at midnight local time.
func DaysInMonth(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local); d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
