package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbickell/daygrid/internal/inbox"
	"github.com/sbickell/daygrid/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <dir-or-file>...",
	Short: "Import task files",
	Long: `Import JSON task files. Each file holds one task draft:

  {"title": "Buy milk", "priority": "medium", "due_date": "2024-05-10T00:00:00Z"}

Files are removed after a successful import. Directories are scanned for
*.json files.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		total := 0
		failed := 0
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failed++
				continue
			}

			if info.IsDir() {
				importer := inbox.NewImporter(a.ctrl, a.owner, arg, nil)
				n, err := importer.Scan(ctx)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					failed++
					continue
				}
				total += n
				continue
			}

			importer := inbox.NewImporter(a.ctrl, a.owner, "", nil)
			if err := importer.ImportFile(ctx, arg); err != nil {
				fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", arg, err)
				failed++
				continue
			}
			total++
		}

		fmt.Printf("%s Imported %d task(s)", ui.RenderPass("✓"), total)
		if failed > 0 {
			fmt.Printf(", %s", ui.RenderWarn(fmt.Sprintf("%d failed", failed)))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
