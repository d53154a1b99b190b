package todo

import (
	"errors"
	"testing"
	"time"
)

func validTask() Task {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	due := time.Date(2024, 5, 10, 9, 30, 0, 0, time.Local)
	return Task{
		ID:          "task-1",
		OwnerID:     "owner-1",
		Title:       "Buy milk",
		Description: "Oat milk preferred",
		DueDate:     &due,
		Priority:    PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"medium", PriorityMedium, false},
		{"high", PriorityHigh, false},
		{"HIGH", PriorityHigh, false},
		{"  low ", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	task := validTask()
	if err := task.Validate(); err != nil {
		t.Fatalf("valid task failed validation: %v", err)
	}

	empty := validTask()
	empty.Title = "   "
	if err := empty.Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired for blank title, got %v", err)
	}

	bad := validTask()
	bad.Priority = "urgent"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}

	noOwner := validTask()
	noOwner.OwnerID = ""
	if err := noOwner.Validate(); err == nil {
		t.Error("expected error for missing owner")
	}
}

func TestSetDefaults(t *testing.T) {
	var task Task
	task.SetDefaults()

	if task.Priority != PriorityMedium {
		t.Errorf("default priority = %v, want medium", task.Priority)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps not defaulted")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := validTask()
	clone := orig.Clone()

	if !clone.Equal(orig) {
		t.Fatal("clone is not equal to original")
	}

	// Mutating the clone's due date must not affect the original.
	*clone.DueDate = clone.DueDate.AddDate(0, 0, 7)
	if orig.DueDate.Equal(*clone.DueDate) {
		t.Error("clone shares DueDate pointer with original")
	}
}

func TestEqual(t *testing.T) {
	a := validTask()
	b := validTask()
	if !a.Equal(b) {
		t.Fatal("identical tasks not equal")
	}

	b.IsCompleted = true
	if a.Equal(b) {
		t.Error("tasks differing in IsCompleted reported equal")
	}

	c := validTask()
	c.DueDate = nil
	if a.Equal(c) {
		t.Error("tasks differing in DueDate presence reported equal")
	}
}
