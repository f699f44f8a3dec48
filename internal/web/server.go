package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/resolver"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

// Server exposes the importer and the catalog over HTTP.
type Server struct {
	Importer *resolver.Importer
	Catalog  *catalog.Catalog
	Store    *store.Store // optional, only used for status
	Addr     string
	Logger   *slog.Logger
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	logger := s.logger()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("GET /api/locations", s.handleLocations)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	return Chain(Recovery(logger), RequestID, Logger(logger))(mux)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
