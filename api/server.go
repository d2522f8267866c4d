package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modabuy/storefront-backend/api/routes"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logg       *logger.Logger
}

func NewServer(port int, deps routes.Deps, logg *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           routes.New(deps),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logg: logg,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.logg.Info(ctx, "http server listening on "+s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logg.Info(ctx, "http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
