package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/duedate"
	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/todo"
	"github.com/sbickell/daygrid/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's fields",
	Long: `Edit a task. Only the flags you pass change; everything else is
kept from the current record.

Examples:
  daygrid edit a1b2c3 --title "Buy oat milk"
  daygrid edit a1b2c3 --due "next friday" --priority high
  daygrid edit a1b2c3 --clear-due`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		id, err := a.resolveID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		current, ok := a.col.Get(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no task %s\n", id)
			os.Exit(1)
		}

		// Start from the current record, overlay changed flags.
		fields := store.Fields{
			Title:       current.Title,
			Description: current.Description,
			DueDate:     current.DueDate,
			Priority:    current.Priority,
			IsCompleted: current.IsCompleted,
		}

		if cmd.Flags().Changed("title") {
			fields.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("description") {
			fields.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetString("priority")
			priority, err := todo.ParsePriority(p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fields.Priority = priority
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			t, err := duedate.Parse(dueStr, time.Now())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fields.DueDate = &t
		}
		if clearDue, _ := cmd.Flags().GetBool("clear-due"); clearDue {
			fields.DueDate = nil
		}

		task, err := a.ctrl.Update(ctx, a.owner, id, fields)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Updated %s\n", ui.RenderPass("✓"), ui.RenderTaskLine(task))
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().StringP("description", "d", "", "new description")
	editCmd.Flags().StringP("priority", "p", "", "new priority: low, medium, or high")
	editCmd.Flags().String("due", "", "new due date (ISO date or natural language)")
	editCmd.Flags().Bool("clear-due", false, "remove the due date")
	rootCmd.AddCommand(editCmd)
}
