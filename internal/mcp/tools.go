package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generatePageTool defines the generate_page MCP tool.
var generatePageTool = mcp.NewTool("generate_page",
	mcp.WithDescription("Generate a complete, self-contained HTML page from a natural-language description. Returns the full HTML document."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Description of the page to generate: its purpose, key features, and desired style"),
	),
	mcp.WithString("css",
		mcp.Description("Optional CSS to inject into the document head after generation"),
	),
)

// listGenerationsTool defines the list_generations MCP tool.
var listGenerationsTool = mcp.NewTool("list_generations",
	mcp.WithDescription("List recent page generations: prompt, model, and timestamp for each."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of records to return (default 10)"),
	),
)
