package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sbickell/daygrid/internal/store/sqlite"
	"github.com/sbickell/daygrid/internal/sync"
	"github.com/sbickell/daygrid/internal/todo"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	quiet := log.New(io.Discard, "", 0)
	ctrl := sync.New(st, todo.NewCollection(), quiet)

	return NewServer(&Config{OwnerID: "local", Logger: quiet}, ctrl)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func createViaAPI(t *testing.T, s *Server, p taskPayload) todo.Task {
	t.Helper()

	rec := doRequest(t, s, http.MethodPost, "/api/todos", p)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}

	var task todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}
	return task
}

func TestCreateTodoEndpoint(t *testing.T) {
	s := setupTestServer(t)

	task := createViaAPI(t, s, taskPayload{Title: "Buy milk", DueDate: "2024-05-10", Priority: "high"})

	if task.ID == "" {
		t.Error("response task has no ID")
	}
	if task.Priority != todo.PriorityHigh {
		t.Errorf("priority = %v, want high", task.Priority)
	}
	if task.DueDate == nil {
		t.Fatal("due date missing from response")
	}
	y, m, d := task.DueDate.Date()
	if y != 2024 || m != time.May || d != 10 {
		t.Errorf("due date = %v, want 2024-05-10", task.DueDate)
	}
}

func TestCreateTodoRejectsEmptyTitle(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/todos", taskPayload{Title: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if s.col.Len() != 0 {
		t.Error("rejected create must not touch the collection")
	}
}

func TestCreateTodoRejectsBadDueDate(t *testing.T) {
	s := setupTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/todos", taskPayload{Title: "ok", DueDate: "soonish"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListTodosSorted(t *testing.T) {
	s := setupTestServer(t)

	createViaAPI(t, s, taskPayload{Title: "Later", DueDate: "2024-05-20"})
	createViaAPI(t, s, taskPayload{Title: "Sooner", DueDate: "2024-05-05"})
	createViaAPI(t, s, taskPayload{Title: "Undated"})

	rec := doRequest(t, s, http.MethodGet, "/api/todos", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var tasks []todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	if tasks[0].Title != "Sooner" || tasks[1].Title != "Later" || tasks[2].Title != "Undated" {
		t.Errorf("unexpected order: %q, %q, %q", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestGetTodoEndpoint(t *testing.T) {
	s := setupTestServer(t)
	created := createViaAPI(t, s, taskPayload{Title: "Fetch me"})

	rec := doRequest(t, s, http.MethodGet, "/api/todos/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/todos/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for missing task = %d, want 404", rec.Code)
	}
}

func TestUpdateTodoEndpoint(t *testing.T) {
	s := setupTestServer(t)
	created := createViaAPI(t, s, taskPayload{Title: "Old"})

	rec := doRequest(t, s, http.MethodPut, "/api/todos/"+created.ID, taskPayload{
		Title:       "New",
		Priority:    "low",
		IsCompleted: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var updated todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode updated task: %v", err)
	}
	if updated.Title != "New" || !updated.IsCompleted {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestDeleteTodoEndpoint(t *testing.T) {
	s := setupTestServer(t)
	created := createViaAPI(t, s, taskPayload{Title: "Doomed"})

	rec := doRequest(t, s, http.MethodDelete, "/api/todos/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/todos/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestToggleTodoEndpoint(t *testing.T) {
	s := setupTestServer(t)
	created := createViaAPI(t, s, taskPayload{Title: "Flip me"})

	rec := doRequest(t, s, http.MethodPost, "/api/todos/"+created.ID+"/toggle", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var toggled todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("failed to decode toggled task: %v", err)
	}
	if !toggled.IsCompleted {
		t.Error("toggle did not complete the task")
	}

	rec = doRequest(t, s, http.MethodPost, "/api/todos/missing/toggle", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("toggle of missing task = %d, want 404", rec.Code)
	}
}

func TestCalendarMonthEndpoint(t *testing.T) {
	s := setupTestServer(t)

	createViaAPI(t, s, taskPayload{Title: "a", DueDate: "2024-05-10"})
	createViaAPI(t, s, taskPayload{Title: "b", DueDate: "2024-05-10"})
	createViaAPI(t, s, taskPayload{Title: "c", DueDate: "2024-05-15"})
	createViaAPI(t, s, taskPayload{Title: "undated"})

	rec := doRequest(t, s, http.MethodGet, "/api/calendar?month=2024-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Year   int         `json:"year"`
		Month  int         `json:"month"`
		Days   int         `json:"days"`
		Counts map[int]int `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode calendar response: %v", err)
	}

	if resp.Year != 2024 || resp.Month != 5 || resp.Days != 31 {
		t.Errorf("unexpected month shape: %+v", resp)
	}
	if resp.Counts[10] != 2 || resp.Counts[15] != 1 {
		t.Errorf("unexpected counts: %v", resp.Counts)
	}
	if _, ok := resp.Counts[1]; ok {
		t.Error("zero-task days must be omitted from counts")
	}
}

func TestCalendarDayEndpoint(t *testing.T) {
	s := setupTestServer(t)

	createViaAPI(t, s, taskPayload{Title: "Morning", DueDate: "2024-05-10T09:00:00Z"})
	createViaAPI(t, s, taskPayload{Title: "Elsewhere", DueDate: "2024-05-11"})

	day := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC).Local().Format("2006-01-02")
	rec := doRequest(t, s, http.MethodGet, "/api/calendar/day?date="+day, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var tasks []todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode day tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Morning" {
		t.Errorf("unexpected day tasks: %+v", tasks)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/calendar/day?date=2030-01-01", nil)
	var empty []todo.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatalf("failed to decode empty day: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no tasks, got %d", len(empty))
	}
}

func TestCalendarMonthRejectsBadInput(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{"/api/calendar?month=May-2024", "/api/calendar/day?date=10/05/2024"} {
		rec := doRequest(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s returned %d, want 400", path, rec.Code)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := setupTestServer(t)
	createViaAPI(t, s, taskPayload{Title: "One"})

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("health status = %v, want ok", health["status"])
	}
	if fmt.Sprintf("%v", health["tasks"]) != "1" {
		t.Errorf("health tasks = %v, want 1", health["tasks"])
	}
}
