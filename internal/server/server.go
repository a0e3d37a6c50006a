// Package server hosts the HTTP server and its listener security layers.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/notescan/notescan-server/internal/model"
)

// HTTPServer wraps the standard HTTP server behind the model.Server
// interface so the listener security layer stays pluggable.
type HTTPServer struct {
	server *http.Server
	addr   string
}

// NewHTTPServer creates a new HTTPServer serving the given handler on addr.
func NewHTTPServer(handler http.Handler, addr string) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		addr: addr,
	}
}

// Start accepts connections on a listener produced by the security layer.
// It blocks until the server stops; a regular shutdown is not reported as
// an error.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests up
// to the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the address the server listens on.
func (s *HTTPServer) Address() string {
	return s.addr
}
