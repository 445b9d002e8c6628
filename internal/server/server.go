package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mindwave-games/mindwave/internal/connid"
	"github.com/mindwave-games/mindwave/internal/game"
)

// Server owns the WebSocket listener and the live connection table. It
// implements game.Messenger: the engine addresses clients purely by
// connection id.
type Server struct {
	upgrader    websocket.Upgrader
	connections map[string]*Connection
	mu          sync.RWMutex
	logger      *log.Logger
	engine      *game.Engine
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server
func NewServer(logger *log.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Clients are untrusted anyway; the engine validates everything
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[string]*Connection),
		logger:      logger.WithPrefix("server"),
	}
}

// SetEngine wires the game engine. Must be called before Start.
func (s *Server) SetEngine(engine *game.Engine) {
	s.engine = engine
}

// Start starts the WebSocket server
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	s.logger.Info("starting WebSocket server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listener and closes every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(connid.Generate(), conn, s, s.logger)

	s.mu.Lock()
	s.connections[client.ID()] = client
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("client connected", "id", client.ID(), "total", total)

	client.Start()

	go func() {
		<-client.ctx.Done()
		s.removeConnection(client)
	}()
}

// removeConnection drops the connection and lets the engine clean up the
// player it belonged to.
func (s *Server) removeConnection(client *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[client.ID()]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.connections, client.ID())
	total := len(s.connections)
	s.mu.Unlock()

	_ = client.Close() // Ignore close errors during unregistration
	s.logger.Info("client disconnected", "id", client.ID(), "total", total)

	if s.engine != nil {
		id := client.ID()
		s.engine.Do(func() { s.engine.RemovePlayer(id) })
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// Send implements game.Messenger. Unknown connection ids are dropped.
func (s *Server) Send(connID, event string, payload any) {
	s.mu.RLock()
	conn := s.connections[connID]
	s.mu.RUnlock()
	if conn == nil {
		return
	}

	msg, err := NewMessage(MessageType(event), payload)
	if err != nil {
		s.logger.Error("failed to encode event", "event", event, "error", err)
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		s.logger.Error("failed to send event", "event", event, "id", connID, "error", err)
	}
}

// Disconnect implements game.Messenger by closing the connection outright.
func (s *Server) Disconnect(connID string) {
	s.mu.RLock()
	conn := s.connections[connID]
	s.mu.RUnlock()
	if conn != nil {
		_ = conn.Close() // Ignore close errors
	}
}

// ConnectionCount returns the number of open connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}
