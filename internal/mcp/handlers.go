package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/charle01ch/gerador-5-app/internal/compose"
)

// handleGeneratePage generates an HTML page from a prompt, optionally
// injecting caller-supplied CSS into the result.
func (s *Server) handleGeneratePage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil || strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	html, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	if s.hist != nil {
		if _, herr := s.hist.Add(ctx, strings.TrimSpace(prompt), s.gen.Model()); herr != nil {
			// Recording is best effort; the generated page is still returned.
			// log writes to stderr, so this stays off the MCP stdio channel.
			log.Printf("mcp: recording generation: %v", herr)
		}
	}

	if css := request.GetString("css", ""); css != "" {
		html = compose.Document(html, css)
	}

	return mcp.NewToolResultText(html), nil
}

// handleListGenerations returns recent generation records.
func (s *Server) handleListGenerations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.hist == nil {
		return mcp.NewToolResultText("No generation history is available."), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	records, err := s.hist.List(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing generations failed: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No generations recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d generation(s):\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(&b, "\n[%s] %s\n  %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Model, rec.Prompt)
	}
	return mcp.NewToolResultText(b.String()), nil
}
