// Package server exposes typing sessions to browsers over websockets. Every
// connection owns its own trainer; nothing is shared between connections.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/trainer"
	"github.com/verte-zerg/keytype/internal/typing"
)

const (
	maxMessageSize  = 64 * 1024
	writeWait       = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// SamplerFunc builds the word sampler for a new connection.
type SamplerFunc func() typing.Sampler

// Options configure a Server.
type Options struct {
	Logger    *slog.Logger
	Sampler   SamplerFunc
	WordCount int
	Layout    keyboard.Layout
	// CheckOrigin overrides the upgrader origin check. Nil allows any origin.
	CheckOrigin func(r *http.Request) bool
}

// Server handles websocket typing sessions.
type Server struct {
	logger    *slog.Logger
	sampler   SamplerFunc
	wordCount int
	layout    keyboard.Layout
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

// New returns a Server. Unset options fall back to defaults.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	layout := opts.Layout
	if !layout.Valid() {
		layout = keyboard.QWERTY
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Server{
		logger:    logger,
		sampler:   opts.Sampler,
		wordCount: opts.WordCount,
		layout:    layout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		clients: make(map[string]*client),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Active returns the number of open connections.
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down and
// closes open websocket connections.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeAll()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("stopped")
	return nil
}

// ServeWS upgrades the request and runs one typing session until the peer
// disconnects.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	id := uuid.NewString()
	c := &client{
		id:     id,
		conn:   conn,
		layout: s.layout,
		logger: s.logger.With("session", id),
	}
	var sampler typing.Sampler
	if s.sampler != nil {
		sampler = s.sampler()
	}
	c.trainer = trainer.New(typing.NewMachine(sampler, s.wordCount), trainer.LayoutFunc(c.currentLayout))

	s.register(c)
	defer s.unregister(c)

	unsubscribe := c.trainer.Subscribe(c.onChange)
	defer unsubscribe()

	started := time.Now()
	c.logger.Info("session opened", "remote", r.RemoteAddr)
	c.trainer.Reset()
	c.readLoop()
	c.logger.Info("session closed", "duration", time.Since(started).Round(time.Millisecond))
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	s.mu.Unlock()
	if err := c.conn.Close(); err != nil {
		// Best-effort close; the peer may already be gone.
		_ = err
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.close(websocket.CloseGoingAway, "server shutting down")
	}
}
