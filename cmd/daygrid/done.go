package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/ui"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Long: `Toggle a task between completed and open.

The ID may be abbreviated to any unique prefix.`,
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

		task, err := a.ctrl.ToggleComplete(ctx, a.owner, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if task.IsCompleted {
			fmt.Printf("%s Completed %s\n", ui.RenderPass("✓"), task.Title)
		} else {
			fmt.Printf("%s Reopened %s\n", ui.RenderWarn("↺"), task.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
