package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/calendar"
	"github.com/sbickell/daygrid/internal/ui"
)

var calCmd = &cobra.Command{
	Use:   "cal [YYYY-MM]",
	Short: "Show the monthly calendar with task counts",
	Long: `Show a month grid. Days with due tasks are highlighted and listed
with their counts below the grid.

Examples:
  daygrid cal            # current month
  daygrid cal 2024-05    # a specific month`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		now := time.Now()
		year, month := now.Year(), now.Month()

		if len(args) == 1 {
			t, err := time.ParseInLocation("2006-01", args[0], time.Local)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid month %q (want YYYY-MM)\n", args[0])
				os.Exit(1)
			}
			year, month = t.Year(), t.Month()
		}

		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		counts := calendar.CountsForMonth(a.col, year, month)
		fmt.Println(ui.RenderMonth(year, month, counts, now))
	},
}

func init() {
	rootCmd.AddCommand(calCmd)
}
