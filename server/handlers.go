package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/sanalabo-jp/script-to-slides/analyze"
	"github.com/sanalabo-jp/script-to-slides/deck"
	"github.com/sanalabo-jp/script-to-slides/format"
	"github.com/sanalabo-jp/script-to-slides/pptx"
	"github.com/sanalabo-jp/script-to-slides/script"
	"github.com/sanalabo-jp/script-to-slides/template"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// handleListTemplates returns the built-in presets.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, template.Presets())
}

// handleExtractTemplate accepts a multipart pptx upload under the "file"
// field and returns the extracted template with its warnings. Only a broken
// container is rejected; degraded extractions return 200 with isPartial set.
func (s *Server) handleExtractTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	if f := format.Detect(header.Filename); f != format.PPTX {
		s.writeError(w, http.StatusBadRequest, "unsupported file type, expected .pptx")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := pptx.Extract(data, header.Filename)
	if err != nil {
		if errors.Is(err, pptx.ErrInvalidContainer) {
			s.writeError(w, http.StatusBadRequest, "file is not a valid pptx container")
			return
		}
		s.logger.Error("extraction failed", "file", header.Filename, "error", err)
		s.writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	if result.IsPartial {
		s.logger.Warn("partial extraction",
			"file", header.Filename,
			"warnings", pptx.FormatWarnings(result.Warnings))
	}
	s.writeJSON(w, http.StatusOK, result)
}

type analyzeRequest struct {
	Script string `json:"script"`
}

type analyzeResponse struct {
	Analysis *analyze.Result `json:"analysis"`
	Fallback bool            `json:"fallback"`
}

// handleAnalyze parses the script and returns theme suggestions. The
// endpoint answers 501 when analysis is disabled; a failing model call
// degrades to the deterministic fallback instead of erroring.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Analysis.Enabled || s.analyzer == nil {
		s.writeError(w, http.StatusNotImplemented, "analysis is disabled")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	parsed := script.Parse(req.Script)
	if !parsed.IsValid {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("script did not parse: %d of %d lines valid", parsed.ValidLines, parsed.TotalLines))
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), parsed.Slides)
	if err != nil {
		s.logger.Warn("analysis failed, using fallback", "error", err)
		s.writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analyze.Fallback(parsed.Slides), Fallback: true})
		return
	}
	s.writeJSON(w, http.StatusOK, analyzeResponse{Analysis: result})
}

type generateRequest struct {
	Script     string             `json:"script"`
	TemplateID string             `json:"templateId,omitempty"`
	Template   *template.Template `json:"template,omitempty"`
}

// handleGenerate turns a script plus a template choice into a pptx
// download. An inline template wins over a preset id; with neither, the
// blank preset is used.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	parsed := script.Parse(req.Script)
	if !parsed.IsValid {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("script did not parse: %d of %d lines valid", parsed.ValidLines, parsed.TotalLines))
		return
	}

	tpl := req.Template
	if tpl == nil && req.TemplateID != "" {
		tpl = template.ByID(req.TemplateID)
		if tpl == nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown template id %q", req.TemplateID))
			return
		}
	}
	if tpl == nil {
		tpl = template.Blank
	}
	if err := tpl.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid template: %v", err))
		return
	}

	data, err := deck.Generate(parsed, tpl)
	if err != nil {
		s.logger.Error("deck generation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "deck generation failed")
		return
	}

	filename := downloadFilename(parsed.FrontMatter.Topic)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing deck response", "error", err)
	}
}

// downloadFilename derives a safe attachment name from the script topic.
func downloadFilename(topic string) string {
	name := strings.TrimSpace(topic)
	if name == "" {
		name = "presentation"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "presentation.pptx"
	}
	return b.String() + ".pptx"
}
