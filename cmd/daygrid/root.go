package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sbickell/daygrid/internal/store/sqlite"
	tasksync "github.com/sbickell/daygrid/internal/sync"
	"github.com/sbickell/daygrid/internal/todo"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "daygrid",
	Short: "Personal task tracker with a monthly calendar",
	Long: `daygrid tracks dated tasks and shows them on a monthly calendar.

Tasks live in a local SQLite database. Every command operates under a
single owner context (the "owner" setting); there is no implicit global
user.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.daygrid/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the task database")
	rootCmd.PersistentFlags().String("owner", "", "owner context for all operations")

	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))
}

// initConfig loads the config file and environment. Flags override config
// values, config overrides env defaults.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(daygridDir())
	}

	viper.SetEnvPrefix("DAYGRID")
	viper.AutomaticEnv()

	viper.SetDefault("db", filepath.Join(daygridDir(), "daygrid.db"))
	viper.SetDefault("owner", "local")
	viper.SetDefault("listen", 8080)
	viper.SetDefault("inbox", filepath.Join(daygridDir(), "inbox"))
	viper.SetDefault("log_file", "")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; everything has a default.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", cfgFile, err)
		}
	}
}

// daygridDir returns the per-user daygrid directory.
func daygridDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daygrid"
	}
	return filepath.Join(home, ".daygrid")
}

// app bundles the store, collection, and controller a command works with.
type app struct {
	store *sqlite.Store
	ctrl  *tasksync.Controller
	col   *todo.Collection
	owner string
}

// openApp opens the database, builds the controller, and loads the
// owner's tasks into the collection.
func openApp(ctx context.Context) (*app, error) {
	dbPath := viper.GetString("db")
	owner := viper.GetString("owner")

	st, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open task database: %w", err)
	}

	// CLI commands report their own outcomes; keep the controller quiet.
	col := todo.NewCollection()
	ctrl := tasksync.New(st, col, log.New(io.Discard, "", 0))

	if _, err := ctrl.Refresh(ctx, owner); err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{
		store: st,
		ctrl:  ctrl,
		col:   col,
		owner: owner,
	}, nil
}

// Close releases the app's database connection.
func (a *app) Close() {
	_ = a.store.Close()
}

// resolveID expands an exact ID or a unique ID prefix into a full task
// ID.
func (a *app) resolveID(arg string) (string, error) {
	if _, ok := a.col.Get(arg); ok {
		return arg, nil
	}

	var matches []string
	for _, t := range a.col.All() {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous task ID %q (%d matches)", arg, len(matches))
	}
}
