package web

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fractrade/fraclib/internal/usecase"
)

type Server struct {
	router  *http.ServeMux
	server  *http.Server
	service *usecase.SignalService
	logger  *zap.Logger
}

func NewServer(port int, service *usecase.SignalService, logger *zap.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		service: service,
		logger:  logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /api/signals", s.handleIngest)
	s.router.HandleFunc("GET /api/signals", s.handleList)
}

func (s *Server) Start() error {
	s.logger.Info("web server listening", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
