// Package ui provides terminal styling helpers for the daygrid CLI.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbickell/daygrid/internal/calendar"
	"github.com/sbickell/daygrid/internal/todo"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	headerStyle = lipgloss.NewStyle().Bold(true)
	todayStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityLow:    dimStyle,
		todo.PriorityMedium: warnStyle,
		todo.PriorityHigh:   failStyle,
	}
)

// RenderPass renders s in the success color.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn renders s in the warning color.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderFail renders s in the failure color.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderAccent renders s in the accent color.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderDim renders s dimmed.
func RenderDim(s string) string { return dimStyle.Render(s) }

// RenderPriority renders a priority label in its color.
func RenderPriority(p todo.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

// RenderTaskLine renders one task as a list row: checkbox, title,
// priority, and due date.
func RenderTaskLine(t todo.Task) string {
	box := "[ ]"
	title := t.Title
	if t.IsCompleted {
		box = RenderPass("[x]")
		title = dimStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s  %s", box, title, RenderPriority(t.Priority))
	if t.DueDate != nil {
		line += dimStyle.Render(fmt.Sprintf("  due %s", t.DueDate.Local().Format("2006-01-02")))
	}
	return line
}

// RenderMonth renders a calendar month grid with per-day task counts.
// Days with tasks show the count in the accent color; today is
// highlighted.
func RenderMonth(year int, month time.Month, counts map[int]int, today time.Time) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", month, year)
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	days := calendar.DaysInMonth(year, month)
	if len(days) == 0 {
		return b.String()
	}

	// Leading blanks up to the first day's weekday.
	col := int(days[0].Weekday())
	b.WriteString(strings.Repeat("    ", col))

	for _, d := range days {
		day := d.Day()
		cell := fmt.Sprintf("%3d", day)

		switch {
		case calendar.SameDay(d, today):
			cell = todayStyle.Render(cell)
		case counts[day] > 0:
			cell = accentStyle.Render(cell)
		}
		b.WriteString(cell)

		if n := counts[day]; n > 0 {
			b.WriteString(accentStyle.Render("*"))
		} else {
			b.WriteString(" ")
		}

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	// Legend of days with tasks, in day order.
	var busy []int
	for day, n := range counts {
		if n > 0 {
			busy = append(busy, day)
		}
	}
	if len(busy) > 0 {
		sort.Ints(busy)
		b.WriteString("\n")
		for _, day := range busy {
			b.WriteString(fmt.Sprintf("  %s %d task(s)\n",
				accentStyle.Render(fmt.Sprintf("%s %2d:", month.String()[:3], day)), counts[day]))
		}
	}

	return b.String()
}
