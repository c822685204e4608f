package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/b0bbywan/go-spotify-dbus/backend"
	"github.com/b0bbywan/go-spotify-dbus/config"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

type Server struct {
	mux    *http.ServeMux
	config *config.ApiConfig
}

func NewServer(cfg *config.ApiConfig, b *backend.Backend) *Server {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	server := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
	}
	server.register(b)
	return server
}

// Handler exposes the routes, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Info("[api] server %s shutdown error: %v", srv.Addr, err)
		}
	}()

	logger.Info("[api] http server running on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server %s: %w", srv.Addr, err)
	}
	return nil
}

func (s *Server) register(b *backend.Backend) {
	if b == nil {
		return
	}

	// 404 on root and on every unmatched path
	s.mux.HandleFunc("/", http.NotFound)

	s.registerServerRoutes(b)

	if b.Player != nil {
		s.registerPlayerRoutes(b.Player)
	}
}
