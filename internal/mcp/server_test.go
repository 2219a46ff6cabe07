package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/charle01ch/gerador-5-app/internal/db"
	"github.com/charle01ch/gerador-5-app/internal/history"
)

// mockGenerator implements app.Generator for testing.
type mockGenerator struct {
	html  string
	err   error
	calls int
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.html, nil
}

func (m *mockGenerator) Model() string { return "mock-model" }

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"generate_page", generatePageTool, "generate_page"},
		{"list_generations", listGenerationsTool, "list_generations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	gen := &mockGenerator{}
	srv := NewServer(gen, nil)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.gen != gen {
		t.Error("generator not set correctly")
	}
}

func TestHandleGeneratePage(t *testing.T) {
	ctx := context.Background()
	doc := "<html><head></head><body><h1>Hi</h1></body></html>"

	t.Run("basic generation", func(t *testing.T) {
		srv := NewServer(&mockGenerator{html: doc}, nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"prompt": "a greeting page",
		}

		result, err := srv.handleGeneratePage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if got := textContent(t, result); got != doc {
			t.Errorf("result = %q, want %q", got, doc)
		}
	})

	t.Run("css injection", func(t *testing.T) {
		srv := NewServer(&mockGenerator{html: doc}, nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"prompt": "a greeting page",
			"css":    "h1{color:red}",
		}

		result, err := srv.handleGeneratePage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := textContent(t, result); !strings.Contains(got, "<style>h1{color:red}</style>") {
			t.Errorf("css not injected: %q", got)
		}
	})

	t.Run("missing prompt", func(t *testing.T) {
		gen := &mockGenerator{html: doc}
		srv := NewServer(gen, nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGeneratePage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing prompt")
		}
		if gen.calls != 0 {
			t.Error("generator should not be called without a prompt")
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		srv := NewServer(&mockGenerator{err: fmt.Errorf("boom")}, nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"prompt": "anything",
		}

		result, err := srv.handleGeneratePage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for failed generation")
		}
	})
}

func TestHandleListGenerations(t *testing.T) {
	ctx := context.Background()

	t.Run("no history store", func(t *testing.T) {
		srv := NewServer(&mockGenerator{}, nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleListGenerations(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("missing store should not be a tool error")
		}
	})

	t.Run("records listed after generation", func(t *testing.T) {
		database, err := db.OpenMemory()
		if err != nil {
			t.Fatalf("OpenMemory: %v", err)
		}
		defer database.Close()

		hist := history.NewStore(database)
		doc := "<html><head></head><body></body></html>"
		srv := NewServer(&mockGenerator{html: doc}, hist)

		genReq := mcp.CallToolRequest{}
		genReq.Params.Arguments = map[string]any{
			"prompt": "a pricing page",
		}
		if _, err := srv.handleGeneratePage(ctx, genReq); err != nil {
			t.Fatalf("generate: %v", err)
		}

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}
		result, err := srv.handleListGenerations(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		got := textContent(t, result)
		if !strings.Contains(got, "a pricing page") {
			t.Errorf("listing missing prompt: %q", got)
		}
		if !strings.Contains(got, "mock-model") {
			t.Errorf("listing missing model: %q", got)
		}
	})
}
