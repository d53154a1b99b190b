package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/duedate"
	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/todo"
	"github.com/sbickell/daygrid/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task.

The due date accepts ISO dates and natural language:
  daygrid add "Buy milk" --due 2024-05-10
  daygrid add "Call dentist" --due tomorrow --priority high

With no title argument, an interactive form is shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		description, _ := cmd.Flags().GetString("description")
		priorityStr, _ := cmd.Flags().GetString("priority")
		dueStr, _ := cmd.Flags().GetString("due")

		if title == "" {
			var err error
			title, description, priorityStr, dueStr, err = promptTask(description, priorityStr, dueStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		priority, err := todo.ParsePriority(priorityStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var due *time.Time
		if dueStr != "" {
			t, err := duedate.Parse(dueStr, time.Now())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			due = &t
		}

		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		task, err := a.ctrl.Create(ctx, store.CreateParams{
			OwnerID:     a.owner,
			Title:       title,
			Description: description,
			DueDate:     due,
			Priority:    priority,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Added %s\n", ui.RenderPass("✓"), ui.RenderTaskLine(task))
		fmt.Printf("   ID: %s\n", ui.RenderDim(task.ID))
	},
}

// promptTask collects task fields interactively. Flag values pre-fill the
// form.
func promptTask(description, priority, due string) (string, string, string, string, error) {
	var title string
	if priority == "" {
		priority = string(todo.PriorityMedium)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return todo.ErrTitleRequired
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("low", string(todo.PriorityLow)),
					huh.NewOption("medium", string(todo.PriorityMedium)),
					huh.NewOption("high", string(todo.PriorityHigh)),
				).
				Value(&priority),
			huh.NewInput().
				Title("Due date (optional, e.g. 2024-05-10 or \"tomorrow\")").
				Value(&due),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", "", "", err
	}
	return title, description, priority, due, nil
}

func init() {
	addCmd.Flags().StringP("description", "d", "", "task description")
	addCmd.Flags().StringP("priority", "p", "medium", "priority: low, medium, or high")
	addCmd.Flags().String("due", "", "due date (ISO date or natural language)")
	rootCmd.AddCommand(addCmd)
}
