package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/sbickell/daygrid/internal/calendar"
	"github.com/sbickell/daygrid/internal/store"
	"github.com/sbickell/daygrid/internal/todo"
)

// taskPayload is the request body for create and update.
type taskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	IsCompleted bool   `json:"is_completed"`
}

func (p *taskPayload) dueDate() (*time.Time, error) {
	if p.DueDate == "" {
		return nil, nil
	}
	// Full timestamps round-trip verbatim; bare dates are accepted too.
	if t, err := time.Parse(time.RFC3339Nano, p.DueDate); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", p.DueDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due_date %q", p.DueDate)
	}
	return &t, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/todos", s.handleListTodos)
	mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	mux.HandleFunc("GET /api/todos/{id}", s.handleGetTodo)
	mux.HandleFunc("PUT /api/todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("POST /api/todos/{id}/toggle", s.handleToggleTodo)

	mux.HandleFunc("GET /api/calendar", s.handleMonthCounts)
	mux.HandleFunc("GET /api/calendar/day", s.handleDayTasks)

	mux.HandleFunc("GET /", s.handleRoot)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, todo.ErrTitleRequired), errors.Is(err, todo.ErrInvalidPriority):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	tasks := s.col.All()
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	due, err := p.dueDate()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	priority := todo.Priority(p.Priority)
	if p.Priority == "" {
		priority = todo.PriorityMedium
	}

	task, err := s.ctrl.Create(r.Context(), store.CreateParams{
		OwnerID:     s.owner,
		Title:       p.Title,
		Description: p.Description,
		DueDate:     due,
		Priority:    priority,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, ok := s.col.Get(id)
	if !ok {
		writeError(w, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var p taskPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	due, err := p.dueDate()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	task, err := s.ctrl.Update(r.Context(), s.owner, id, store.Fields{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     due,
		Priority:    todo.Priority(p.Priority),
		IsCompleted: p.IsCompleted,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ctrl.Delete(r.Context(), s.owner, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := s.ctrl.ToggleComplete(r.Context(), s.owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// handleMonthCounts serves GET /api/calendar?month=YYYY-MM.
func (s *Server) handleMonthCounts(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	var (
		year  int
		month time.Month
	)
	if monthStr == "" {
		now := time.Now()
		year, month = now.Year(), now.Month()
	} else {
		t, err := time.ParseInLocation("2006-01", monthStr, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid month %q", monthStr)})
			return
		}
		year, month = t.Year(), t.Month()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":   year,
		"month":  int(month),
		"days":   len(calendar.DaysInMonth(year, month)),
		"counts": s.index.CountsForMonth(year, month),
	})
}

// handleDayTasks serves GET /api/calendar/day?date=YYYY-MM-DD.
func (s *Server) handleDayTasks(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date := time.Now()
	if dateStr != "" {
		t, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid date %q", dateStr)})
			return
		}
		date = t
	}

	tasks := s.index.TasksOnDay(date)
	if tasks == nil {
		tasks = []todo.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.ClientCount(),
		"tasks":   s.col.Len(),
	})
}

// handleRoot returns basic server information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>daygrid</title>
</head>
<body>
    <h1>daygrid</h1>
    <p>REST API: <code>/api/todos</code>, <code>/api/calendar</code></p>
    <p>WebSocket endpoint: <code>ws://%s/ws</code></p>
    <p>Health check: <a href="/health">/health</a></p>
</body>
</html>`, r.Host)
}
