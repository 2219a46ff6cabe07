// Package app owns the mutable session state: the prompt, the generated HTML
// document, and the CSS layer. All mutation goes through the Controller,
// which guards the submit transition, feeds the composer for rendering, and
// schedules debounced persistence on every settled change.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/charle01ch/gerador-5-app/internal/compose"
	"github.com/charle01ch/gerador-5-app/internal/history"
	"github.com/charle01ch/gerador-5-app/internal/state"
)

// Status is the busy flag guarding against overlapping generations.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
)

// Tab is the active editor view.
type Tab string

const (
	TabPrompt Tab = "prompt"
	TabCode   Tab = "code"
	TabStyle  Tab = "style"
)

var (
	// ErrEmptyPrompt rejects a submit with a blank prompt.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrBusy rejects a submit while another generation is in flight.
	ErrBusy = errors.New("a generation is already in progress")
	// ErrTabLocked rejects switching to an editor tab while no document exists.
	ErrTabLocked = errors.New("editor tabs are unavailable until a document is generated")
	// ErrNotReady rejects an export while no document exists or a generation
	// is in flight.
	ErrNotReady = errors.New("no document available to export")
)

// User-facing messages. Internal error detail goes to the log only.
const (
	msgEmptyPrompt      = "Please enter a description for your app."
	msgGenerationFailed = "Failed to generate app. Please check your API key and try again."
)

// Generator is the one outbound collaborator: prompt in, HTML document out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// scheduler is the write side of the debounced persistence layer.
type scheduler interface {
	Set(key, value string)
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Prompt string `json:"prompt"`
	HTML   string `json:"html"`
	CSS    string `json:"css"`
	Status Status `json:"status"`
	Tab    Tab    `json:"tab"`
	Error  string `json:"error,omitempty"`
}

// Controller is the application state machine. It is the sole owner of the
// three text fields; the generator and composer only ever see copies.
type Controller struct {
	mu       sync.Mutex
	gen      Generator
	writer   scheduler
	history  *history.Store
	onChange func()

	prompt    string
	html      string
	css       string
	status    Status
	tab       Tab
	lastError string
}

// New creates a Controller. The history store may be nil.
func New(gen Generator, writer scheduler, hist *history.Store) *Controller {
	return &Controller{
		gen:     gen,
		writer:  writer,
		history: hist,
		status:  StatusIdle,
		tab:     TabPrompt,
	}
}

// OnChange registers a listener invoked after every settled state change.
// Must be called before the controller is shared across goroutines.
func (c *Controller) OnChange(fn func()) {
	c.onChange = fn
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Restore loads the persisted document texts. A missing or unreadable value
// yields the empty default; restore never fails the startup path.
func (c *Controller) Restore(store *state.Store) {
	html, ok, err := store.Load(state.KeyHTML)
	if err != nil {
		log.Printf("app: restoring html: %v", err)
	} else if ok {
		c.html = html
	}

	css, ok, err := store.Load(state.KeyCSS)
	if err != nil {
		log.Printf("app: restoring css: %v", err)
	} else if ok {
		c.css = css
	}

	if c.html != "" {
		c.tab = TabCode
	}
}

// Submit runs the generate transition: it validates the prompt, claims the
// busy flag, clears both document texts, performs exactly one generation
// call, and settles back to idle whatever the outcome.
func (c *Controller) Submit(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompt = prompt
	if strings.TrimSpace(prompt) == "" {
		c.lastError = msgEmptyPrompt
		c.mu.Unlock()
		c.notify()
		return "", ErrEmptyPrompt
	}
	if c.status == StatusGenerating {
		c.mu.Unlock()
		return "", ErrBusy
	}

	// Claim the busy flag; a fresh generation invalidates both texts. The
	// CSS layer is cleared so stale styling never applies to new structure.
	c.status = StatusGenerating
	c.html = ""
	c.css = ""
	c.tab = TabPrompt
	c.lastError = ""
	c.mu.Unlock()
	c.notify()

	html, err := c.gen.Generate(ctx, prompt)

	c.mu.Lock()
	c.status = StatusIdle
	if err != nil {
		c.lastError = msgGenerationFailed
		c.mu.Unlock()
		c.notify()
		log.Printf("app: generation failed: %v", err)
		return "", err
	}
	c.html = html
	c.tab = TabCode
	c.mu.Unlock()
	c.notify()

	c.persist(state.KeyHTML, html)

	if c.history != nil {
		if _, herr := c.history.Add(ctx, strings.TrimSpace(prompt), c.gen.Model()); herr != nil {
			log.Printf("app: recording generation: %v", herr)
		}
	}

	return html, nil
}

// SetPrompt overwrites the prompt text. The prompt is ephemeral input and is
// never persisted.
func (c *Controller) SetPrompt(text string) {
	c.mu.Lock()
	c.prompt = text
	c.mu.Unlock()
	c.notify()
}

// EditHTML overwrites the HTML document and schedules a debounced persist.
// Edits are allowed at any time, busy or not.
func (c *Controller) EditHTML(content string) {
	c.mu.Lock()
	c.html = content
	c.mu.Unlock()
	c.notify()
	c.persist(state.KeyHTML, content)
}

// EditCSS overwrites the CSS layer and schedules a debounced persist.
func (c *Controller) EditCSS(content string) {
	c.mu.Lock()
	c.css = content
	c.mu.Unlock()
	c.notify()
	c.persist(state.KeyCSS, content)
}

// persist schedules a debounced write. Only non-empty values are written,
// so a cleared field keeps its previous stored value rather than erasing it.
func (c *Controller) persist(key, value string) {
	if c.writer == nil || value == "" {
		return
	}
	c.writer.Set(key, value)
}

// SetTab switches the active view. The code and style tabs are unreachable
// while no document exists.
func (c *Controller) SetTab(tab Tab) error {
	switch tab {
	case TabPrompt, TabCode, TabStyle:
	default:
		return fmt.Errorf("unknown tab %q", tab)
	}

	c.mu.Lock()
	if tab != TabPrompt && c.html == "" {
		c.mu.Unlock()
		return ErrTabLocked
	}
	c.tab = tab
	c.mu.Unlock()
	c.notify()
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Prompt: c.prompt,
		HTML:   c.html,
		CSS:    c.css,
		Status: c.status,
		Tab:    c.tab,
		Error:  c.lastError,
	}
}

// Compose returns the renderable document: the HTML text with the CSS layer
// injected. Always recomputed from the two sources, never cached.
func (c *Controller) Compose() string {
	c.mu.Lock()
	html, css := c.html, c.css
	c.mu.Unlock()
	return compose.Document(html, css)
}

// Export returns the composed document for download. It fails while no
// document exists or a generation is in flight.
func (c *Controller) Export() (string, error) {
	c.mu.Lock()
	html, css, status := c.html, c.css, c.status
	c.mu.Unlock()

	if html == "" || status == StatusGenerating {
		return "", ErrNotReady
	}
	return compose.Document(html, css), nil
}
