package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sbickell/daygrid/internal/dashboard"
	"github.com/sbickell/daygrid/internal/inbox"
	"github.com/sbickell/daygrid/internal/store/sqlite"
	tasksync "github.com/sbickell/daygrid/internal/sync"
	"github.com/sbickell/daygrid/internal/todo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the daygrid HTTP API and live dashboard",
	Long: `Start the daygrid server.

The server exposes:
  - REST API for tasks (/api/todos) and calendar views (/api/calendar)
  - WebSocket endpoint (/ws) broadcasting task changes in real time
  - An inbox watcher: JSON task files dropped into the inbox directory
    are imported automatically

Example usage:
  daygrid serve                  # Listen on the configured port (default 8080)
  daygrid serve --port 9000      # Listen on a custom port`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = viper.GetInt("listen")
		}
		owner := viper.GetString("owner")

		logger := serveLogger()

		st, err := sqlite.Open(viper.GetString("db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening task database: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		col := todo.NewCollection()
		ctrl := tasksync.New(st, col, logger)

		n, err := ctrl.Refresh(context.Background(), owner)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
			os.Exit(1)
		}

		server := dashboard.NewServer(&dashboard.Config{
			Port:    port,
			OwnerID: owner,
			Logger:  logger,
		}, ctrl)
		ctrl.SetNotifier(server)

		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start server: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		// Inbox watcher runs until shutdown.
		importer := inbox.NewImporter(ctrl, owner, viper.GetString("inbox"), logger)
		watchDone := make(chan struct{})
		go func() {
			defer close(watchDone)
			if err := importer.Watch(ctx); err != nil {
				logger.Printf("Inbox watcher stopped: %v", err)
			}
		}()

		fmt.Printf("daygrid serving %d task(s) on http://localhost:%d\n", n, port)
		fmt.Printf("WebSocket endpoint: ws://localhost:%d/ws\n", port)
		fmt.Printf("Inbox directory: %s\n", importer.Dir())
		fmt.Println("\nPress Ctrl+C to stop...")

		<-ctx.Done()

		fmt.Println("\nShutting down...")
		<-watchDone
		if err := server.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Server stopped")
	},
}

// serveLogger returns the server logger. When log_file is configured the
// log is rotated with lumberjack; otherwise it goes to stderr.
func serveLogger() *log.Logger {
	logFile := viper.GetString("log_file")
	if logFile == "" {
		return log.New(os.Stderr, "[daygrid] ", log.LstdFlags)
	}

	return log.New(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}, "[daygrid] ", log.LstdFlags)
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
