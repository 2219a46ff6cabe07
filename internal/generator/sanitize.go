package generator

import "strings"

const (
	fence     = "```"
	htmlFence = "```html"
)

// Clean extracts the HTML document from a raw model response. Models often
// wrap their output in a fenced code block even when told not to.
//
// If the response contains a fenced block tagged as html with a matching
// closing fence, the exact text between the fences is returned, trimmed of
// surrounding whitespace. Content inside the fence is never altered.
// Otherwise every bare fence marker is stripped and the remainder trimmed.
func Clean(raw string) string {
	if start := strings.Index(raw, htmlFence); start != -1 {
		rest := raw[start+len(htmlFence):]
		// The opening fence line ends at the first newline; the block body
		// runs from there to the closing fence.
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			body := rest[nl+1:]
			if end := strings.Index(body, fence); end != -1 {
				return strings.TrimSpace(body[:end])
			}
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(raw, fence, ""))
}
