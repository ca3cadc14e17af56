package display

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/moleattack/internal/link"
	"golang.org/x/sync/errgroup"
)

// PollInterval is how often a connection's inbound text is handled.
const PollInterval = 10 * time.Millisecond

const shutdownTimeout = 5 * time.Second

// Server exposes a Display to remote controllers over websocket. All
// connections share the one Display.
type Server struct {
	addr     string
	display  *Display
	clock    quartz.Clock
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients int

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server that will listen on addr. A nil clock uses the
// real wall clock.
func NewServer(addr string, d *Display, clock quartz.Clock, logger *log.Logger) *Server {
	if clock == nil {
		clock = quartz.NewReal()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		display: d,
		clock:   clock,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("display"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the HTTP routes: /ws for controllers and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then closes open connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting display server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", s.addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.cancel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Clients returns the number of connected controllers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	ws := link.NewWebSocket(conn)
	defer ws.Close()

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()

	connLog := s.logger.With("remote", r.RemoteAddr)
	connLog.Info("Controller connected")

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go func() {
		select {
		case <-ws.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	pump := NewPump(s.display, ws, s.logger)
	err = s.clock.TickerFunc(ctx, PollInterval, pump.Poll, "display").Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		connLog.Warn("Connection closed", "error", err)
		return
	}
	connLog.Info("Controller disconnected", "reason", ws.Err())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
