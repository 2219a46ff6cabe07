package server

import (
	"bytes"
	_ "embed"
	"log"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

//go:embed help.md
var helpMarkdown []byte

const helpShellHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AppGen Help</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-900 text-gray-200 font-sans">
<main class="container mx-auto max-w-3xl px-4 py-8 prose prose-invert">
<p><a href="/" class="text-purple-400">&larr; Back to the studio</a></p>
`

const helpShellFoot = `
</main>
</body>
</html>`

var (
	helpOnce sync.Once
	helpHTML []byte
)

// renderHelp converts the embedded help document to HTML once, on first use.
func renderHelp() []byte {
	helpOnce.Do(func() {
		md := goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("monokai"),
				),
			),
		)

		var buf bytes.Buffer
		buf.WriteString(helpShellHead)
		if err := md.Convert(helpMarkdown, &buf); err != nil {
			log.Printf("studio: rendering help: %v", err)
			buf.Reset()
			buf.WriteString(helpShellHead)
			buf.WriteString("<p>Help is unavailable.</p>")
		}
		buf.WriteString(helpShellFoot)
		helpHTML = buf.Bytes()
	})
	return helpHTML
}

// ServeHelp serves the rendered help page.
func (s *Server) ServeHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(renderHelp())
}
