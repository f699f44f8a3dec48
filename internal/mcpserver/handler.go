package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/DivineRock/ffxiv-coord-importer/internal/resolver"
)

// Handler adapts MCP tool calls to the importer and the catalog.
type Handler struct {
	Importer *resolver.Importer
	Catalog  resolver.Locations
}

// NewHandler returns a Handler.
func NewHandler(im *resolver.Importer, c resolver.Locations) *Handler {
	return &Handler{Importer: im, Catalog: c}
}

// Import handles import_coordinates: one output line per recognized input
// line, in input order.
func (h *Handler) Import(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	res := h.Importer.Import(text)
	if len(res.Outputs) == 0 {
		// Skips and unrecognized lines are not tool errors.
		return mcp.NewToolResultText(fmt.Sprintf("no map links in %d line(s): %d skipped, %d unrecognized, %d failed",
			res.Stats.Lines, res.Stats.Skipped, res.Stats.Unrecognized, res.Stats.Failed)), nil
	}

	return mcp.NewToolResultText(strings.Join(res.Texts(), "\n")), nil
}

// Lookup handles lookup_location and returns the location as JSON.
func (h *Handler) Lookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}

	loc, ok := h.Catalog.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no location named %q", name)), nil
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("encoding location: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
