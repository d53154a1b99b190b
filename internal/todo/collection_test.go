package todo

import (
	"fmt"
	"testing"
)

func TestCollectionUpsertGet(t *testing.T) {
	col := NewCollection()
	task := validTask()

	col.Upsert(task)

	got, ok := col.Get(task.ID)
	if !ok {
		t.Fatal("Get after Upsert: task not found")
	}
	if !got.Equal(task) {
		t.Errorf("Get returned %+v, want %+v", got, task)
	}
}

func TestCollectionUpsertReplaces(t *testing.T) {
	col := NewCollection()
	task := validTask()
	col.Upsert(task)

	task.Title = "Buy oat milk"
	col.Upsert(task)

	if col.Len() != 1 {
		t.Fatalf("expected 1 task after replace, got %d", col.Len())
	}
	got, _ := col.Get(task.ID)
	if got.Title != "Buy oat milk" {
		t.Errorf("replace did not take: title = %q", got.Title)
	}
}

func TestCollectionRemoveIdempotent(t *testing.T) {
	col := NewCollection()
	task := validTask()
	col.Upsert(task)

	col.Remove(task.ID)
	afterFirst := col.All()

	col.Remove(task.ID)
	afterSecond := col.All()

	if len(afterFirst) != 0 || len(afterSecond) != 0 {
		t.Errorf("expected empty collection, got %d then %d tasks", len(afterFirst), len(afterSecond))
	}

	// Removing an absent ID must not bump the version.
	v := col.Version()
	col.Remove("never-existed")
	if col.Version() != v {
		t.Error("Remove of absent ID changed the version")
	}
}

func TestCollectionVersionBumps(t *testing.T) {
	col := NewCollection()
	v0 := col.Version()

	task := validTask()
	col.Upsert(task)
	v1 := col.Version()
	if v1 == v0 {
		t.Error("Upsert did not bump version")
	}

	col.Remove(task.ID)
	if col.Version() == v1 {
		t.Error("Remove did not bump version")
	}
}

func TestCollectionReplace(t *testing.T) {
	col := NewCollection()
	col.Upsert(validTask())

	var tasks []Task
	for i := 0; i < 3; i++ {
		task := validTask()
		task.ID = fmt.Sprintf("task-%d", i)
		tasks = append(tasks, task)
	}

	col.Replace(tasks)

	if col.Len() != 3 {
		t.Fatalf("expected 3 tasks after Replace, got %d", col.Len())
	}
	if _, ok := col.Get("task-1"); !ok {
		t.Error("task-1 missing after Replace")
	}
	if _, ok := col.Get(validTask().ID); ok {
		t.Error("pre-Replace task still present")
	}
}

func TestCollectionAllIsSnapshot(t *testing.T) {
	col := NewCollection()
	task := validTask()
	col.Upsert(task)

	all := col.All()
	all[0].Title = "mutated"
	*all[0].DueDate = all[0].DueDate.AddDate(0, 1, 0)

	got, _ := col.Get(task.ID)
	if got.Title != task.Title {
		t.Error("mutating All() result affected the collection")
	}
	if !got.DueDate.Equal(*task.DueDate) {
		t.Error("mutating All() result's DueDate affected the collection")
	}
}
