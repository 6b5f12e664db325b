// Package http serves the diff and highlight engines, and the detect and
// humanize collaborators, as a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly closed.
const ShutdownTimeout = 5 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *mux.Router
	done   chan struct{}

	// Addr is the bind address, e.g. "127.0.0.1:8080".
	Addr string

	Differ        veritas.Differ
	Highlighter   veritas.Highlighter
	Detector      veritas.Detector
	Humanizer     veritas.Humanizer
	HistoryStore  veritas.HistoryStore
	SettingsStore veritas.SettingsStore

	// Limiter throttles /api routes per client IP. Nil disables limiting.
	Limiter *RateLimiter

	// NewID and Now stamp recorded history items.
	NewID func() string
	Now   func() time.Time
}

// NewServer returns a Server with its routes registered. Collaborators are
// assigned by the caller before Open.
func NewServer() *Server {
	s := &Server{
		server:  &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router:  mux.NewRouter(),
		done:    make(chan struct{}),
		Limiter: NewRateLimiter(DefaultRateLimitPerSecond, DefaultRateLimitBurst),
		NewID:   uuid.NewString,
		Now:     time.Now,
	}
	s.server.Handler = http.HandlerFunc(s.serveHTTP)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.limit)
	api.HandleFunc("/diff", s.handleDiff).Methods("POST")
	api.HandleFunc("/highlight", s.handleHighlight).Methods("POST")
	api.HandleFunc("/detect", s.handleDetect).Methods("POST")
	api.HandleFunc("/humanize", s.handleHumanize).Methods("POST")
	api.HandleFunc("/history", s.handleHistoryIndex).Methods("GET")
	api.HandleFunc("/history", s.handleHistoryClear).Methods("DELETE")
	api.HandleFunc("/history/{id}", s.handleHistoryShow).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, veritas.Errorf(veritas.ENOTFOUND, "no route for %s", r.URL.Path))
	})
	// mux falls back to NotFoundHandler on a method mismatch unless this is set.
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path)})
	})
	s.router.MethodNotAllowedHandler = methodNotAllowed
	api.MethodNotAllowedHandler = methodNotAllowed

	return s
}

// Open validates the server's dependencies and begins listening on Addr.
func (s *Server) Open() (err error) {
	if s.Differ == nil || s.Highlighter == nil {
		return errors.New("http: differ and highlighter are required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	if s.Limiter != nil {
		go s.Limiter.run(s.done)
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	close(s.done)
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return "http://" + s.Addr
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.serveHTTP(w, r)
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rw, r)
	log.Infof("%s %s %d %s\n", r.Method, r.URL.Path, rw.status, time.Since(start).Round(time.Millisecond))
}

func (s *Server) limit(next http.Handler) http.Handler {
	if s.Limiter == nil {
		return next
	}
	return s.Limiter.Limit(next)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ListenAndServe opens s and blocks until ctx is cancelled, then shuts it
// down gracefully.
func ListenAndServe(ctx context.Context, s *Server) error {
	if err := s.Open(); err != nil {
		return err
	}
	log.Successf("listening on %s\n", s.URL())
	<-ctx.Done()
	return s.Close()
}
