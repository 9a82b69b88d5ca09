package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codelens-ai/pydebug/domain"
	"github.com/codelens-ai/pydebug/service"
)

// analyzeRequest is the POST /api/v1/analyze payload
type analyzeRequest struct {
	Code         string `json:"code"`
	ErrorMessage string `json:"error_message"`
	Explain      *bool  `json:"explain"`
}

// analyzeResponse wraps the report with the highlighted source for the UI
type analyzeResponse struct {
	Report     *domain.Report `json:"report"`
	SourceHTML string         `json:"source_html,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs the pipeline for one pasted source. The explanation
// request is tied to the HTTP request context, so a client disconnect
// cancels it.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	explain := true
	if req.Explain != nil {
		explain = *req.Explain
	}

	report, err := s.service.Analyze(r.Context(), domain.DebugRequest{
		Source:       req.Code,
		ErrorMessage: req.ErrorMessage,
		Explain:      explain,
	})
	if err != nil {
		var domainErr domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.ErrCodeInvalidInput {
			writeError(w, http.StatusBadRequest, domainErr.Message)
			return
		}
		s.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.history.Add(report)

	sourceHTML, err := highlightPython(report.SourceText)
	if err != nil {
		s.logger.Warn("highlighting failed", "error", err)
		sourceHTML = ""
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Report: report, SourceHTML: sourceHTML})
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Samples())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.Entries())
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report := s.history.Get(chi.URLParam(r, "id"))
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleReportMarkdown serves the downloadable markdown rendering
func (s *Server) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	report := s.history.Get(chi.URLParam(r, "id"))
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "debug_report.md"))
	if err := s.formatter.Write(report, domain.OutputFormatMarkdown, w); err != nil {
		s.logger.Error("failed to write markdown report", "error", err)
	}
}
