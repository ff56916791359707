package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bagdasarian/crm-service/internal/handler"
	"go.uber.org/zap"
)

type Server struct {
	handler *handler.Handler
	server  *http.Server
	log     *zap.Logger
}

func NewServer(h *handler.Handler, addr string, corsOrigins []string, logger *zap.Logger) *Server {
	return &Server{
		handler: h,
		server: &http.Server{
			Addr:              addr,
			Handler:           SetupRoutes(h, corsOrigins, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: logger,
	}
}

func (s *Server) Start() error {
	s.log.Info("server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
