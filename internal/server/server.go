// Package server implements the codeblocks REST API served by `codeblocks serve`.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/core/logging"
)

// maxBodySize bounds request bodies; code is the largest field.
const maxBodySize = 2 * codeblock.MaxCodeSize

// Server serves the code block API over a codeblock.Store.
type Server struct {
	store      codeblock.Store
	cfg        config.ServerConfig
	log        zerolog.Logger
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server for store. Nothing listens until Start is called.
func New(store codeblock.Store, cfg config.ServerConfig) *Server {
	s := &Server{
		store: store,
		cfg:   cfg,
		log:   logging.Component("server"),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed API with its middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /codeblocks", s.handleList)
	mux.HandleFunc("POST /codeblocks", s.handleCreate)
	mux.HandleFunc("GET /codeblocks/{id}", s.handleGet)
	mux.HandleFunc("PUT /codeblocks/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /codeblocks/{id}", s.handleDelete)
	mux.HandleFunc("GET /categories", s.handleCategories)

	return s.withRecover(s.withRequestLog(s.withCORS(mux)))
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	s.log.Info().Str("addr", listener.Addr().String()).Msg("starting api server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down api server")
	return s.httpServer.Shutdown(ctx)
}
