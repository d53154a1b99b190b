package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/calendar"
	"github.com/sbickell/daygrid/internal/todo"
	"github.com/sbickell/daygrid/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, soonest due first.

Examples:
  daygrid list               # open tasks
  daygrid list --all         # everything, including completed
  daygrid list --day today   # tasks due on a given day`,
	Run: func(cmd *cobra.Command, args []string) {
		showAll, _ := cmd.Flags().GetBool("all")
		showDone, _ := cmd.Flags().GetBool("done")
		dayStr, _ := cmd.Flags().GetString("day")

		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		var tasks []todo.Task
		if dayStr != "" {
			day, err := parseDay(dayStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			tasks = calendar.TasksOnDay(a.col, day)
		} else {
			tasks = a.col.All()
		}

		var filtered []todo.Task
		for _, t := range tasks {
			if showAll || t.IsCompleted == showDone {
				filtered = append(filtered, t)
			}
		}

		sort.Slice(filtered, func(i, j int) bool {
			a, b := filtered[i], filtered[j]
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return a.CreatedAt.Before(b.CreatedAt)
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			case !a.DueDate.Equal(*b.DueDate):
				return a.DueDate.Before(*b.DueDate)
			default:
				return a.CreatedAt.Before(b.CreatedAt)
			}
		})

		if len(filtered) == 0 {
			fmt.Println(ui.RenderDim("No tasks."))
			return
		}

		for _, t := range filtered {
			fmt.Printf("%s  %s\n", ui.RenderDim(shortID(t.ID)), ui.RenderTaskLine(t))
		}
	},
}

// parseDay accepts "today", "tomorrow", or an ISO date.
func parseDay(s string) (time.Time, error) {
	switch s {
	case "today":
		return time.Now(), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want today, tomorrow, or YYYY-MM-DD)", s)
	}
	return t, nil
}

// shortID abbreviates a task ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	listCmd.Flags().Bool("all", false, "include completed tasks")
	listCmd.Flags().Bool("done", false, "show only completed tasks")
	listCmd.Flags().String("day", "", "only tasks due on this day")
	rootCmd.AddCommand(listCmd)
}
