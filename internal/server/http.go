package server

import (
	"context"
	"net"
	"net/http"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, log *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: log,
	}
}

func (h *httpServer) serve(ln net.Listener) {
	if err := h.server.Serve(ln); err != nil && !isClosed(err) {
		h.logger.Err(err).Str("func", "httpServer.serve").Msg("HTTP server Serve")
	}
}

func (h *httpServer) shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil && !isClosed(err) {
		// errors closing the listener
		h.logger.Err(err).Str("func", "httpServer.shutdown").Msg("HTTP server Shutdown")
	}
}
