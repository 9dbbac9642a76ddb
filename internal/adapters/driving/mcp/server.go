// Package mcp exposes qsc to AI assistants over the Model Context Protocol:
// a faceted search tool, a live suggestion tool and the query history as a
// resource.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/ports/driving"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

// Version is reported to MCP clients during initialisation.
const Version = "0.1.0"

// ErrMissingSearchService is returned by NewServer without a search service.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// Ports are the services the tools call. History is optional; without it
// nothing is recorded and the history resource reports it is disabled.
type Ports struct {
	Search  driving.SearchService
	History driving.HistoryService
}

// Validate reports a missing search service.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// Server serves the qsc tools and resources.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu       sync.RWMutex
	settings domain.Settings
}

// NewServer registers the tools and resources. The widget settings decide
// the suggestion minimum length and highlighting; the page settings cap the
// facet values returned per facet.
func NewServer(ports *Ports, settings domain.Settings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:    ports,
		settings: settings,
		server:   mcp.NewServer(&mcp.Implementation{Name: "qsc", Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// SetSettings swaps the settings used by subsequent tool calls.
func (s *Server) SetSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *Server) currentSettings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Run serves JSON-RPC over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
