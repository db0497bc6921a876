package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/finnb0y/virtualchips/internal/state"
)

// Server accepts WebSocket clients and fans snapshot broadcasts out to them.
// All game logic lives behind the dispatcher; the server only moves frames.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	dispatcher  *Dispatcher
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a WebSocket server over a dispatcher.
func NewServer(addr string, logger *log.Logger, dispatcher *Dispatcher) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Clients are phones on the venue network; origin checking
				// would only block them.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		dispatcher:  dispatcher,
		ctx:         ctx,
		cancel:      cancel,
	}
	dispatcher.OnApply(s.BroadcastState)
	return s
}

// Start starts the WebSocket server and blocks until it fails or Stop is
// called.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-s.ctx.Done()
		_ = srv.Close()
	}()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the server and closes all connections.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.dispatcher, s.resolveAccessCode)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// resolveAccessCode maps an access code to a sender identity against the
// latest snapshot. Player codes become player identities; a table's dealer
// code becomes that table's dealer identity.
func (s *Server) resolveAccessCode(accessCode string) (string, bool, string, bool) {
	snap := s.dispatcher.Snapshot()
	if snap == nil {
		return "", false, "", false
	}
	for _, p := range snap.Players {
		if p.AccessCode != "" && p.AccessCode == accessCode {
			return p.ID, false, p.TableID, true
		}
	}
	for _, t := range snap.Tables {
		if t.DealerAccessCode != "" && t.DealerAccessCode == accessCode {
			dealerID := t.DealerID
			if dealerID == "" {
				dealerID = "dealer:" + t.ID
			}
			return dealerID, true, t.ID, true
		}
	}
	return "", false, "", false
}

// BroadcastState sends a snapshot to every connected client.
func (s *Server) BroadcastState(snap *state.State) {
	msg, err := StateMessage(snap)
	if err != nil {
		s.logger.Error("Failed to encode state broadcast", "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if conn.SenderID() == "" {
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send state to client", "error", err, "sender", conn.SenderID())
		} else {
			count++
		}
	}
	s.logger.Debug("Broadcasted state", "recipients", count)
}
