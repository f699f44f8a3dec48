// Package mcpserver exposes the importer as Model Context Protocol tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New builds the MCP server and registers its tools. Handlers do the work;
// this only declares the protocol surface.
func New(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"coordimport",
		version,
		server.WithToolCapabilities(false),
	)

	importTool := mcp.NewTool("import_coordinates",
		mcp.WithDescription("Convert pasted hunt sighting lines (Siren, Faloop or Bear Toolkit format) into map links with coordinates. Unrecognized lines are dropped."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("One or more pasted lines, separated by newlines"),
		),
	)

	lookupTool := mcp.NewTool("lookup_location",
		mcp.WithDescription("Look up a map by its exact display name in any supported language."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact map name, e.g. Labyrinthos"),
		),
	)

	s.AddTool(importTool, h.Import)
	s.AddTool(lookupTool, h.Lookup)

	return s
}

// ServeStdio runs s on stdin and stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
