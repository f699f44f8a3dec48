package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

const maxImportBytes = 1 << 20

type importRequest struct {
	Text string `json:"text"`
}

// handleImport accepts pasted text either as the raw body or as
// {"text": "..."} and returns the rendered lines. ?format=text answers with
// one line per output instead of JSON.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	text := string(body)
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		var req importRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		text = req.Text
	}

	res := s.Importer.Import(text)

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, line := range res.Texts() {
			io.WriteString(w, line+"\n")
		}
		return
	}

	writeJSON(w, res)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		http.Error(w, "missing 'name' parameter", http.StatusBadRequest)
		return
	}

	loc, ok := s.Catalog.Lookup(name)
	if !ok {
		http.Error(w, "no location named "+name, http.StatusNotFound)
		return
	}
	writeJSON(w, loc)
}

type catalogStatus struct {
	Names      int `json:"names"`
	Locations  int `json:"locations"`
	Collisions int `json:"collisions"`
	Gaps       int `json:"gaps"`
}

type statusResponse struct {
	Catalog catalogStatus          `json:"catalog"`
	Store   []store.LanguageStatus `json:"store,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Catalog: catalogStatus{
			Names:      s.Catalog.Len(),
			Locations:  s.Catalog.Locations(),
			Collisions: s.Catalog.Count(catalog.Collision),
			Gaps:       s.Catalog.Count(catalog.Gap),
		},
	}

	if s.Store != nil {
		st, err := s.Store.Status()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Store = st
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS: the API is meant for local overlays and bots.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(v)
}
