package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/rs/zerolog/log"
)

const (
	baseWriteTimeout = 15 * time.Second
	// writeTimeoutSlack keeps the write deadline past the request deadline so
	// a timed-out quote still gets its 504 body.
	writeTimeoutSlack = 5 * time.Second
	drainTimeout      = 10 * time.Second
)

// Server is the pricing API's HTTP listener.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	ready           chan net.Addr
}

// NewServer prepares a server for cfg.Port; nothing is bound until Run.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      max(baseWriteTimeout, cfg.RequestTimeout+writeTimeoutSlack),
			IdleTimeout:       time.Minute,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: drainTimeout,
		ready:           make(chan net.Addr, 1),
	}
}

// Ready yields the bound address once Run is accepting connections.
func (s *Server) Ready() <-chan net.Addr { return s.ready }

// Run binds, serves and blocks until ctx ends or SIGINT/SIGTERM arrives,
// then drains in-flight quotes. A bind failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("Pricing API listening")
	s.ready <- ln.Addr()

	served := make(chan error, 1)
	go func() { served <- s.httpServer.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested, draining in-flight requests")
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to the drain timeout for
// in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Drain timed out, closing connections")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
