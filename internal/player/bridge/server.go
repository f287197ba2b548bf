// Package bridge plays YouTube posts in a browser tab. A local HTTP server
// serves a page embedding the YouTube player; commands reach the page over a
// server-sent event stream and the page relays the player frame's messages
// back with POST requests.
package bridge

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/hark/internal/core/media"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const (
	maxFrameBody   = 64 << 10
	commandBuffer  = 32
	startupTimeout = 100 * time.Millisecond
)

// ErrNoClient is returned by Send while no page is connected.
var ErrNoClient = errors.New("bridge: no page connected")

// Options configures the bridge server.
type Options struct {
	Addr    string
	VideoID string
	Title   string
	// Debug mounts the pprof handlers under /debug/pprof/.
	Debug bool
}

// Server is a media.Target and media.Observer backed by a browser page.
type Server struct {
	opts       Options
	token      string
	logger     zerolog.Logger
	httpServer *http.Server
	listener   net.Listener

	ready atomic.Bool

	mu      sync.Mutex
	clients map[chan []byte]struct{}

	cbMu    sync.RWMutex
	readyFn func(bool)
	eventFn func(media.Event)
}

// New creates a bridge for a single video. Call Start to begin serving.
func New(opts Options, logger zerolog.Logger) *Server {
	s := &Server{
		opts:    opts,
		token:   uuid.NewString(),
		logger:  logger,
		clients: make(map[chan []byte]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /events/{token}", s.handleEvents)
	mux.HandleFunc("POST /frame/{token}", s.handleFrame)

	if opts.Debug {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Token is the per-session secret that scopes the event and frame routes.
func (s *Server) Token() string {
	return s.token
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	addr := s.opts.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	s.logger.Info().Str("addr", listener.Addr().String()).Msg("starting bridge server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("bridge server failed to start: %w", err)
	case <-time.After(startupTimeout):
		return nil
	}
}

// Addr returns the listening address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL is the page to open in a browser.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// Shutdown stops the server and disconnects the page.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down bridge server")

	s.mu.Lock()
	for ch := range s.clients {
		close(ch)
		delete(s.clients, ch)
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// Ready reports whether the player frame has announced onReady.
func (s *Server) Ready() bool {
	return s.ready.Load()
}

// OnReadyChanged implements media.Target.
func (s *Server) OnReadyChanged(fn func(bool)) {
	s.cbMu.Lock()
	s.readyFn = fn
	s.cbMu.Unlock()
}

// OnEvent implements media.Observer.
func (s *Server) OnEvent(fn func(media.Event)) {
	s.cbMu.Lock()
	s.eventFn = fn
	s.cbMu.Unlock()
}

// Send pushes a command envelope to every connected page.
func (s *Server) Send(op media.Op, args ...any) error {
	data, err := encodeCommand(op, args...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) == 0 {
		return ErrNoClient
	}
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			s.logger.Warn().Str("op", string(op)).Msg("bridge client is not draining commands")
		}
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	data := struct {
		Title   string
		VideoID string
		Token   string
		Origin  string
	}{
		Title:   s.opts.Title,
		VideoID: s.opts.VideoID,
		Token:   s.token,
		Origin:  "http://" + r.Host,
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error().Err(err).Msg("render bridge page")
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("token") != s.token {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := make(chan []byte, commandBuffer)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug().Str("remote", r.RemoteAddr).Msg("bridge page connected")

	defer func() {
		s.mu.Lock()
		if _, ok := s.clients[ch]; ok {
			delete(s.clients, ch)
			close(ch)
		}
		s.mu.Unlock()
		s.logger.Debug().Str("remote", r.RemoteAddr).Msg("bridge page disconnected")
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, ok := <-ch:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("token") != s.token {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBody))
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg, err := decodeFrameMessage(body)
	if err != nil {
		s.logger.Debug().Err(err).Msg("ignoring malformed frame message")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	events, change := msg.events()
	switch change {
	case readinessReady:
		s.setReady(true)
	case readinessReset:
		s.setReady(false)
	}
	for _, ev := range events {
		s.emit(ev)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setReady(ready bool) {
	if s.ready.Swap(ready) == ready {
		return
	}

	s.cbMu.RLock()
	fn := s.readyFn
	s.cbMu.RUnlock()

	if fn != nil {
		fn(ready)
	}
}

func (s *Server) emit(ev media.Event) {
	s.cbMu.RLock()
	fn := s.eventFn
	s.cbMu.RUnlock()

	if fn != nil {
		fn(ev)
	}
}
