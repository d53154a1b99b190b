package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filename returns the canonical export filename for this task: {id}.json
func (t *Task) Filename() string {
	return fmt.Sprintf("%s.json", t.ID)
}

// ReadTaskFile reads and parses a task JSON file from the given path.
// The parsed task is validated before being returned.
func ReadTaskFile(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file %s: %w", path, err)
	}

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task file %s: %w", path, err)
	}

	return &task, nil
}

// WriteTaskFile writes a Task to dir/{id}.json with pretty-printed
// formatting, creating the directory if needed.
func WriteTaskFile(dir string, task *Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("cannot write invalid task: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal task %s: %w", task.ID, err)
	}

	path := filepath.Join(dir, task.Filename())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write task file %s: %w", path, err)
	}

	return nil
}

// ReadAllTaskFiles reads all task files from the given directory.
// Invalid files are skipped with a warning to stderr; a missing directory
// is treated as empty.
func ReadAllTaskFiles(dir string) ([]*Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Task{}, nil
		}
		return nil, fmt.Errorf("failed to read task directory: %w", err)
	}

	var tasks []*Task
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		task, err := ReadTaskFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping invalid task file %s: %v\n", entry.Name(), err)
			continue
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}
