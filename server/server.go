// Package server exposes the simulator over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mediflow/mediflow-sim/store"
)

// Version is reported by GET /api.
const Version = "1.0.0"

// Config holds the listen address and the results directory.
type Config struct {
	Host            string
	Port            int
	ResultsDir      string
	ShutdownTimeout time.Duration
	// MaxArrivals caps arrival_rate × hours of a single requested run.
	MaxArrivals float64
}

// DefaultMaxArrivals is used when Config.MaxArrivals is zero.
const DefaultMaxArrivals = 1_000_000

// Server is the MediFlow HTTP API.
type Server struct {
	config     Config
	store      *store.Store
	router     *mux.Router
	httpServer *http.Server
	now        func() time.Time
}

// New creates a server backed by a result store in config.ResultsDir.
func New(config Config) (*Server, error) {
	st, err := store.New(config.ResultsDir)
	if err != nil {
		return nil, err
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	if config.MaxArrivals == 0 {
		config.MaxArrivals = DefaultMaxArrivals
	}
	s := &Server{
		config: config,
		store:  st,
		router: mux.NewRouter(),
		now:    time.Now,
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	go func() {
		sig, ok := <-stop
		if !ok {
			return
		}
		logrus.Infof("Received signal: %v. Shutting down server gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logrus.Errorf("Error during shutdown: %v", err)
		}
	}()

	logrus.Infof("MediFlow API listening on http://%s (results in %s)", s.Addr(), s.store.Dir())
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logrus.Info("Server stopped")
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware adds CORS headers so a browser front end can call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request at debug level.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
