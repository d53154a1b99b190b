package todo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTaskFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	task := validTask()

	if err := WriteTaskFile(dir, &task); err != nil {
		t.Fatalf("WriteTaskFile failed: %v", err)
	}

	got, err := ReadTaskFile(filepath.Join(dir, task.Filename()))
	if err != nil {
		t.Fatalf("ReadTaskFile failed: %v", err)
	}

	if !got.Equal(task) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, task)
	}
}

func TestWriteTaskFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	task := validTask()
	task.Title = ""

	if err := WriteTaskFile(dir, &task); err == nil {
		t.Fatal("expected error writing invalid task")
	}
}

func TestReadAllTaskFilesSkipsInvalid(t *testing.T) {
	dir := t.TempDir()

	good := validTask()
	if err := WriteTaskFile(dir, &good); err != nil {
		t.Fatalf("WriteTaskFile failed: %v", err)
	}

	// A file that parses but fails validation, and one that isn't JSON.
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := ReadAllTaskFiles(dir)
	if err != nil {
		t.Fatalf("ReadAllTaskFiles failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 valid task, got %d", len(tasks))
	}
	if tasks[0].ID != good.ID {
		t.Errorf("unexpected task %s", tasks[0].ID)
	}
}

func TestReadAllTaskFilesMissingDir(t *testing.T) {
	tasks, err := ReadAllTaskFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing directory should not error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}
