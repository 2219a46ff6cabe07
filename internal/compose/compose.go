// Package compose merges the generated HTML document with the user's CSS
// layer into a single renderable document. The two editable texts stay the
// only source of truth; the composed output is derived on every render and
// never stored.
package compose

import "strings"

const headClose = "</head>"

// Document injects css, wrapped in a style element, immediately before the
// last closing head tag of html. It is a pure function of its inputs:
//
//   - empty html yields the empty string;
//   - blank css yields html unchanged, so no empty style element is emitted;
//   - html without a closing head tag is returned unchanged and the css is
//     silently dropped, an accepted degradation rather than a failure.
//
// The last occurrence wins so that malformed documents with several closing
// head tags bias toward the one nearest the document end. No HTML parsing
// happens beyond the substring search.
func Document(html, css string) string {
	if html == "" {
		return ""
	}
	if strings.TrimSpace(css) == "" {
		return html
	}

	idx := strings.LastIndex(html, headClose)
	if idx == -1 {
		return html
	}

	var b strings.Builder
	b.Grow(len(html) + len(css) + len("<style></style>"))
	b.WriteString(html[:idx])
	b.WriteString("<style>")
	b.WriteString(css)
	b.WriteString("</style>")
	b.WriteString(html[idx:])
	return b.String()
}
