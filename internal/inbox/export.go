package inbox

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sbickell/daygrid/internal/todo"
)

// exportTask mirrors todo.Task with YAML-friendly field names so both
// export formats use the same keys.
type exportTask struct {
	ID          string     `json:"id" yaml:"id"`
	OwnerID     string     `json:"owner_id" yaml:"owner_id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Priority    string     `json:"priority" yaml:"priority"`
	IsCompleted bool       `json:"is_completed" yaml:"is_completed"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

func toExport(tasks []todo.Task) []exportTask {
	// Stable output: sort by creation time, then ID.
	sorted := make([]todo.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]exportTask, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, exportTask{
			ID:          t.ID,
			OwnerID:     t.OwnerID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Priority:    string(t.Priority),
			IsCompleted: t.IsCompleted,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return out
}

// ExportJSON writes the tasks to w as a pretty-printed JSON array.
func ExportJSON(w io.Writer, tasks []todo.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toExport(tasks)); err != nil {
		return fmt.Errorf("failed to encode tasks as JSON: %w", err)
	}
	return nil
}

// ExportYAML writes the tasks to w as a YAML document.
func ExportYAML(w io.Writer, tasks []todo.Task) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(toExport(tasks)); err != nil {
		return fmt.Errorf("failed to encode tasks as YAML: %w", err)
	}
	return nil
}

// ExportDir writes each task to dir/{id}.json, one file per task.
func ExportDir(dir string, tasks []todo.Task) error {
	for i := range tasks {
		if err := todo.WriteTaskFile(dir, &tasks[i]); err != nil {
			return err
		}
	}
	return nil
}
