package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/handler"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" && handlers != nil && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoHTTPAddress
	}

	servers.shutdownTimeout = cfg.ShutdownTimeout
	if servers.shutdownTimeout <= 0 {
		servers.shutdownTimeout = defaultShutdownTimeout
	}
	servers.logger = logger

	return servers, nil
}

// RunServer serves until SIGINT, SIGTERM or SIGQUIT is received or ctx is
// cancelled. A listener failure is returned immediately.
func (s *server) RunServer(ctx context.Context) error {
	// check if any server was created
	if s.httpServer == nil {
		return errNotInitialized
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return <-serveErr
}

func (s *server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
