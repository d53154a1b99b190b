// Package inbox imports task files dropped into a watched directory and
// exports the collection back out.
//
// Any *.json file written into the inbox directory is parsed as a task
// draft, created through the sync controller (so it reaches the store,
// the collection, and any dashboard clients), and consumed on success.
// Files that fail to import are left in place with a logged warning so
// the user can fix and retry.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/sync"
	"github.com/sbickell/daygrid/internal/todo"
)

// draft is the lenient on-disk form of a not-yet-created task. The store
// assigns the ID and timestamps, so only content fields are read.
type draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty"`
}

// Importer turns inbox files into tasks via the sync controller.
type Importer struct {
	ctrl   *sync.Controller
	owner  string
	dir    string
	logger *log.Logger
}

// NewImporter creates an Importer for the given inbox directory.
// If logger is nil, a default logger writing to stderr is used.
func NewImporter(ctrl *sync.Controller, owner, dir string, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(os.Stderr, "[inbox] ", log.LstdFlags)
	}
	return &Importer{
		ctrl:   ctrl,
		owner:  owner,
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the inbox directory path.
func (im *Importer) Dir() string {
	return im.dir
}

// Scan imports every *.json file currently in the inbox directory.
// Individual file failures are logged and do not stop the scan. Returns
// the number of tasks imported.
func (im *Importer) Scan(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(im.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read inbox directory: %w", err)
	}

	imported := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(im.dir, entry.Name())
		if err := im.ImportFile(ctx, path); err != nil {
			im.logger.Printf("WARNING: failed to import %s: %v", entry.Name(), err)
			continue
		}
		imported++
	}

	return imported, nil
}

// ImportFile reads one draft file, creates the task through the
// controller, and removes the file on success.
func (im *Importer) ImportFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read inbox file: %w", err)
	}

	var d draft
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("failed to parse inbox file: %w", err)
	}

	priority := todo.Priority(d.Priority)
	if d.Priority == "" {
		priority = todo.PriorityMedium
	}

	task, err := im.ctrl.Create(ctx, store.CreateParams{
		OwnerID:     im.owner,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    priority,
	})
	if err != nil {
		return err
	}

	im.logger.Printf("Imported %s as task %s", filepath.Base(path), task.ID)

	if err := os.Remove(path); err != nil {
		im.logger.Printf("WARNING: failed to remove imported file %s: %v", path, err)
	}
	return nil
}
