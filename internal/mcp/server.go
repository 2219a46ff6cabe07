package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/charle01ch/gerador-5-app/internal/app"
	"github.com/charle01ch/gerador-5-app/internal/history"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes page generation to AI agents.
type Server struct {
	gen  app.Generator
	hist *history.Store
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies. The history
// store may be nil, in which case generations are simply not recorded.
func NewServer(gen app.Generator, hist *history.Store) *Server {
	s := &Server{
		gen:  gen,
		hist: hist,
	}

	s.mcp = server.NewMCPServer(
		"appgen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generatePageTool, s.handleGeneratePage)
	s.mcp.AddTool(listGenerationsTool, s.handleListGenerations)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
