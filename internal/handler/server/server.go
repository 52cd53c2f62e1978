package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/handler"
)

const readHeaderTimeout = 5 * time.Second

type Server struct {
	handler *handler.Handler
	server  *http.Server
}

func NewServer(h *handler.Handler, addr string) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)

	return &Server{
		handler: h,
		server: &http.Server{
			Addr:              addr,
			Handler:           RecoverMiddleware(LoggingMiddleware(mux)),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	slog.Info("server starting", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
