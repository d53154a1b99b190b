// Package dashboard provides the HTTP API and real-time WebSocket server
// for daygrid.
//
// The REST surface exposes task CRUD and calendar views; the WebSocket
// endpoint broadcasts committed task changes so connected clients can
// re-render without polling.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	gosync "sync"
	"time"

	"github.com/coder/websocket"

	"github.com/sbickell/daygrid/internal/calendar"
	"github.com/sbickell/daygrid/internal/sync"
	"github.com/sbickell/daygrid/internal/todo"
)

// MessageType defines the type of dashboard message
type MessageType string

const (
	// MessageTypeTaskUpdate indicates a task was created, updated, or deleted
	MessageTypeTaskUpdate MessageType = "task_update"

	// MessageTypeStats indicates updated task statistics
	MessageTypeStats MessageType = "stats"
)

// Message represents a dashboard broadcast message
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// TaskUpdateData contains task change information
type TaskUpdateData struct {
	TaskID      string `json:"task_id"`
	Action      string `json:"action"` // created, updated, deleted
	Title       string `json:"title,omitempty"`
	Priority    string `json:"priority,omitempty"`
	IsCompleted bool   `json:"is_completed"`
	DueDate     string `json:"due_date,omitempty"`
}

// StatsData contains task statistics
type StatsData struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Open      int `json:"open"`
}

// Server manages the HTTP API and WebSocket broadcasting.
type Server struct {
	addr     string
	owner    string
	listener net.Listener
	server   *http.Server

	ctrl  *sync.Controller
	col   *todo.Collection
	index *calendar.Index

	// WebSocket client management
	clients   map[*websocket.Conn]bool
	clientsMu gosync.RWMutex

	// Message broadcasting
	broadcast chan Message

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     gosync.WaitGroup

	logger *log.Logger
}

// Config holds server configuration
type Config struct {
	// Port to listen on (default: 8080)
	Port int

	// OwnerID is the owner context every request operates under.
	OwnerID string

	// Logger for server activity (default: stderr logger)
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Port:   8080,
		Logger: log.Default(),
	}
}

// NewServer creates a dashboard server over the given controller.
func NewServer(config *Config, ctrl *sync.Controller) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	col := ctrl.Collection()

	return &Server{
		addr:      fmt.Sprintf(":%d", config.Port),
		owner:     config.OwnerID,
		ctrl:      ctrl,
		col:       col,
		index:     calendar.NewIndex(col),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 100),
		ctx:       ctx,
		cancel:    cancel,
		logger:    config.Logger,
	}
}

// TaskChanged implements sync.Notifier by broadcasting the change and a
// refreshed stats snapshot.
func (s *Server) TaskChanged(ev sync.Event) {
	data := TaskUpdateData{
		TaskID:      ev.Task.ID,
		Action:      string(ev.Action),
		Title:       ev.Task.Title,
		Priority:    string(ev.Task.Priority),
		IsCompleted: ev.Task.IsCompleted,
	}
	if ev.Task.DueDate != nil {
		data.DueDate = ev.Task.DueDate.Format(time.RFC3339Nano)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Printf("Failed to marshal task update: %v", err)
		return
	}

	s.Broadcast(Message{Type: MessageTypeTaskUpdate, Data: raw})
	s.broadcastStats()
}

func (s *Server) broadcastStats() {
	raw, err := json.Marshal(s.stats())
	if err != nil {
		return
	}
	s.Broadcast(Message{Type: MessageTypeStats, Data: raw})
}

func (s *Server) stats() StatsData {
	var stats StatsData
	for _, t := range s.col.All() {
		stats.Total++
		if t.IsCompleted {
			stats.Completed++
		} else {
			stats.Open++
		}
	}
	return stats
}

// Start begins the HTTP server and WebSocket handler
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start broadcast handler
	s.wg.Add(1)
	go s.broadcastLoop()

	// Start HTTP server
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Printf("Dashboard server listening on %s", s.addr)
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	s.logger.Println("Stopping dashboard server")

	s.cancel()

	// Close all WebSocket connections
	s.clientsMu.Lock()
	for conn := range s.clients {
		_ = conn.Close(websocket.StatusGoingAway, "Server shutting down")
		delete(s.clients, conn)
	}
	s.clientsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.wg.Wait()

	s.logger.Println("Dashboard server stopped")
	return nil
}

// Broadcast sends a message to all connected clients
func (s *Server) Broadcast(msg Message) {
	select {
	case s.broadcast <- msg:
	case <-s.ctx.Done():
		return
	default:
		s.logger.Println("Warning: broadcast channel full, dropping message")
	}
}

// broadcastLoop handles message broadcasting to all clients
func (s *Server) broadcastLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case msg := <-s.broadcast:
			if msg.Timestamp.IsZero() {
				msg.Timestamp = time.Now()
			}

			data, err := json.Marshal(msg)
			if err != nil {
				s.logger.Printf("Failed to marshal message: %v", err)
				continue
			}

			s.clientsMu.RLock()
			clients := make([]*websocket.Conn, 0, len(s.clients))
			for conn := range s.clients {
				clients = append(clients, conn)
			}
			s.clientsMu.RUnlock()

			// Send to clients (outside read lock to avoid blocking broadcasts)
			for _, conn := range clients {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := conn.Write(ctx, websocket.MessageText, data)
				cancel()

				if err != nil {
					s.logger.Printf("Failed to send to client: %v", err)
					s.removeClient(conn)
				}
			}
		}
	}
}

// handleWebSocket upgrades HTTP connections to WebSocket
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	clientCount := len(s.clients)
	s.clientsMu.Unlock()

	s.logger.Printf("Client connected (total: %d)", clientCount)

	// Send an initial stats snapshot so clients can render immediately.
	raw, _ := json.Marshal(s.stats())
	welcome := Message{
		Type:      MessageTypeStats,
		Timestamp: time.Now(),
		Data:      raw,
	}
	welcomeData, _ := json.Marshal(welcome)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = conn.Write(ctx, websocket.MessageText, welcomeData)
	cancel()

	go s.readLoop(conn)
}

// readLoop keeps the WebSocket connection alive and handles client disconnects
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.removeClient(conn)

	for {
		_, _, err := conn.Read(s.ctx)
		if err != nil {
			return
		}
		// Client messages are not processed; the loop only detects disconnects.
	}
}

// removeClient safely removes a client connection
func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	if _, exists := s.clients[conn]; exists {
		delete(s.clients, conn)
		clientCount := len(s.clients)
		s.clientsMu.Unlock()

		_ = conn.Close(websocket.StatusNormalClosure, "")
		s.logger.Printf("Client disconnected (total: %d)", clientCount)
	} else {
		s.clientsMu.Unlock()
	}
}

// GetAddr returns the server's listening address
func (s *Server) GetAddr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ClientCount returns the current number of connected clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}
