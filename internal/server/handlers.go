package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charle01ch/gerador-5-app/internal/app"
	"github.com/charle01ch/gerador-5-app/internal/history"
)

// exportFilename is the default name offered for the downloaded document.
const exportFilename = "generated-app.html"

// placeholderDocument renders in the preview frame while no document exists,
// regardless of any CSS the user has typed.
const placeholderDocument = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Preview</title></head>
<body style="display:flex;align-items:center;justify-content:center;height:100vh;margin:0;font-family:sans-serif;color:#6b7280;background:#f9fafb">
<div style="text-align:center;max-width:24rem;padding:2rem">
<h3 style="color:#4b5563">Your App Preview Appears Here</h3>
<p style="font-size:.875rem">Enter a prompt and click &quot;Generate App&quot; to see the magic happen. The generated UI will be displayed live in this window.</p>
</div>
</body>
</html>`

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	HTML string `json:"html"`
	Tab  app.Tab `json:"tab"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

type historyResponse struct {
	Records []history.Record `json:"records"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	html, err := s.ctrl.Submit(r.Context(), req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyPrompt):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": s.ctrl.Snapshot().Error})
		case errors.Is(err, app.ErrBusy):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "a generation is already in progress"})
		default:
			// Generic message only; the detail is already in the log.
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": s.ctrl.Snapshot().Error})
		}
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{HTML: html, Tab: app.TabCode})
}

func (s *Server) handleEditHTML(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	s.ctrl.EditHTML(req.Content)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEditCSS(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	s.ctrl.EditCSS(req.Content)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.ctrl.SetTab(app.Tab(req.Tab)); err != nil {
		if errors.Is(err, app.ErrTabLocked) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview serves the composed document for the sandboxed iframe. The
// CSP sandbox keeps the rendered page walled off from the studio's own
// scripts and storage while still letting its embedded scripts run.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc := s.ctrl.Compose()
	if doc == "" {
		doc = placeholderDocument
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(doc))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ctrl.Export()
	if err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no document available to export"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Write([]byte(doc))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeJSON(w, http.StatusOK, historyResponse{Records: []history.Record{}})
		return
	}

	records, err := s.hist.List(r.Context(), 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Records: records})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
