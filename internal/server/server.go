// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves one handler. The listener is bound by New, so URL is valid
// before Start.
type Server struct {
	httpServer *httpServer
	listener   net.Listener
	logger     *logger.Logger
}

// New binds addr ("127.0.0.1:0" picks a free port) for handler.
func New(ctx context.Context, handler http.Handler, addr string, log *logger.Logger) (*Server, error) {
	if handler == nil {
		return nil, ErrNoHandler
	}
	if log == nil {
		log = logger.Nop()
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return &Server{
		httpServer: newHTTPServer(handler, log),
		listener:   ln,
		logger:     log,
	}, nil
}

// URL is the http origin the server listens on.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Start serves in the background.
func (s *Server) Start() {
	s.logger.Info().Str("addr", s.listener.Addr().String()).Msg("launching HTTP server")
	go s.httpServer.serve(s.listener)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	idleConnectionsClosed := make(chan struct{})

	// listen for stop
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.Shutdown(shutdownCtx)

		close(idleConnectionsClosed)
	}()

	s.Start()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) {
	s.httpServer.shutdown(ctx)
	if err := s.listener.Close(); err != nil && !isClosed(err) {
		s.logger.Err(err).Str("func", "Server.Shutdown").Msg("error closing listener")
	}
}

func isClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed)
}
