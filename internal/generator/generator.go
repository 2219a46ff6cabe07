package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/charle01ch/gerador-5-app/internal/llm"
)

// systemInstruction is the fixed instruction sent with every generation
// request. The model must answer with one complete HTML document and
// nothing else.
const systemInstruction = `You are an expert web developer specializing in creating beautiful and functional web pages using only HTML and Tailwind CSS.
Your task is to generate a single, complete HTML file based on the user's request.

Instructions:
1. The output MUST be a single block of HTML code.
2. The HTML must be well-structured with a proper <head> and <body>.
3. Crucially, you MUST include the Tailwind CSS CDN script in the <head>: <script src="https://cdn.tailwindcss.com"></script>.
4. Use placeholder images from 'https://picsum.photos/width/height' where appropriate (e.g., product images, hero backgrounds).
5. The generated page must be fully responsive and use a mobile-first approach.
6. The design should be modern, clean, and aesthetically pleasing. Use a tasteful color palette.
7. Do NOT include any explanations, comments, or markdown formatting (like fenced code blocks) outside of the HTML code itself. Your entire response should be only the HTML code.`

// defaultMaxTokens leaves room for a full landing page in one response.
const defaultMaxTokens = 8192

// GenerationError wraps any failure of a generation request. The caller shows
// a generic message to the user; the wrapped cause goes to the log.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator turns a user prompt into a sanitized HTML document using a single
// stateless call to the configured provider.
type Generator struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
}

// New creates a Generator. A timeout of zero disables the deadline, leaving
// the upstream call free to run until the caller's context is done.
func New(provider llm.Provider, model string, timeout time.Duration) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
		timeout:  timeout,
	}
}

// Generate sends exactly one request to the provider and returns the cleaned
// HTML document. The prompt is assumed non-empty after trimming; that check
// belongs to the caller. Any transport or service failure comes back as a
// *GenerationError.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemInstruction},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	html := Clean(resp.Content)
	if html == "" {
		return "", &GenerationError{Err: fmt.Errorf("provider %s returned an empty document", g.provider.Name())}
	}

	return html, nil
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.model
}
