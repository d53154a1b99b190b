package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/inbox"
	"github.com/sbickell/daygrid/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON or YAML",
	Long: `Export all tasks.

Examples:
  daygrid export                         # JSON to stdout
  daygrid export --format yaml           # YAML to stdout
  daygrid export --out tasks.json        # JSON to a file
  daygrid export --dir ./backup          # one {id}.json file per task`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		dir, _ := cmd.Flags().GetString("dir")

		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		tasks := a.col.All()

		if dir != "" {
			if err := inbox.ExportDir(dir, tasks); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s Exported %d task(s) to %s\n", ui.RenderPass("✓"), len(tasks), dir)
			return
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "json":
			err = inbox.ExportJSON(out, tasks)
		case "yaml", "yml":
			err = inbox.ExportYAML(out, tasks)
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown format %q (want json or yaml)\n", format)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if outPath != "" {
			fmt.Printf("%s Exported %d task(s) to %s\n", ui.RenderPass("✓"), len(tasks), outPath)
		}
	},
}

func init() {
	exportCmd.Flags().String("format", "json", "output format: json or yaml")
	exportCmd.Flags().String("out", "", "output file (default stdout)")
	exportCmd.Flags().String("dir", "", "export one JSON file per task into this directory")
	rootCmd.AddCommand(exportCmd)
}
