package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/lint"
	"github.com/nikogura/folio/pkg/llm"
	"github.com/nikogura/folio/pkg/profile"
	"github.com/nikogura/folio/pkg/renderer"
	"github.com/nikogura/folio/pkg/session"
	"github.com/nikogura/folio/pkg/template"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errEmptyPayload = errors.New("no data provided")

type renderRequest struct {
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

type validateRequest struct {
	Template string `json:"template"`
	// Workflow, when set, checks paths against that workflow's sample data.
	Workflow string `json:"workflow,omitempty"`
}

type validateResponse struct {
	Clean bool `json:"clean"`
	lint.Report
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	GeneratedContent string `json:"generated_content"`
}

type createSessionRequest struct {
	Workflow string `json:"workflow"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	err := decodeBody(w, r, &req)
	if err != nil {
		s.badRequest(w, workflowTemplate, err)
		return
	}

	started := time.Now()
	html := template.Render(req.Template, template.RecordFromMap(req.Data))
	s.metrics.observe(workflowTemplate, started)

	writeHTML(w, html)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var sample template.Record
	switch req.Workflow {
	case "":
	case session.WorkflowResume:
		sample = builder.ResumeRecord(profile.SampleResume(), s.resume)
	case session.WorkflowPortfolio:
		sample = builder.PortfolioRecord(profile.SamplePortfolio(), s.portfolio)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown workflow %q", req.Workflow))
		return
	}

	report := lint.Check(req.Template, sample)
	writeJSON(w, http.StatusOK, validateResponse{Clean: report.Clean(), Report: report})
}

func (s *Server) handleResumePreview(w http.ResponseWriter, r *http.Request) {
	var resume profile.Resume
	err := decodeBody(w, r, &resume)
	if err != nil {
		s.badRequest(w, workflowResume, err)
		return
	}

	s.renderResume(w, resume)
}

func (s *Server) handlePortfolioPreview(w http.ResponseWriter, r *http.Request) {
	var portfolio profile.Portfolio
	err := decodeBody(w, r, &portfolio)
	if err != nil {
		s.badRequest(w, workflowPortfolio, err)
		return
	}

	s.renderPortfolio(w, portfolio, "")
}

func (s *Server) handlePortfolioExport(w http.ResponseWriter, r *http.Request) {
	var portfolio profile.Portfolio
	err := decodeBody(w, r, &portfolio)
	if err != nil {
		s.badRequest(w, workflowPortfolio, err)
		return
	}

	s.renderPortfolio(w, portfolio, renderer.SanitizeFilename(portfolio.PersonalInfo.Name)+"-portfolio.html")
}

func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		writeError(w, http.StatusServiceUnavailable, "pdf generation is not configured")
		return
	}

	var resume profile.Resume
	err := decodeBody(w, r, &resume)
	if err != nil {
		s.badRequest(w, workflowPDF, err)
		return
	}

	started := time.Now()
	markdown, err := builder.ResumeMarkdown(resume, s.resume)
	if err != nil {
		s.badRequest(w, workflowPDF, err)
		return
	}

	pdf, err := s.buildPDF(r, markdown)
	if err != nil {
		s.metrics.fail(workflowPDF)
		s.logger.Error("failed to generate pdf", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate pdf")
		return
	}
	s.metrics.observe(workflowPDF, started)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(renderer.SanitizeFilename(resume.PersonalInfo.Name)+"-resume.pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) buildPDF(r *http.Request, markdown string) (pdf []byte, err error) {
	var dir string
	dir, err = os.MkdirTemp("", "folio-pdf-")
	if err != nil {
		err = errors.Wrap(err, "failed to create work directory")
		return pdf, err
	}
	defer os.RemoveAll(dir)

	markdownPath := filepath.Join(dir, "resume.md")
	outputPath := filepath.Join(dir, "resume.pdf")

	err = renderer.WriteMarkdown(markdown, markdownPath)
	if err != nil {
		return pdf, err
	}

	err = s.pdf(r.Context(), markdownPath, outputPath)
	if err != nil {
		return pdf, err
	}

	pdf, err = os.ReadFile(outputPath)
	if err != nil {
		err = errors.Wrap(err, "failed to read generated pdf")
		return pdf, err
	}

	return pdf, err
}

func (s *Server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	err := decodeBody(w, r, &req)
	if err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "ai content generation is not configured")
		return
	}

	text, err := s.generator.GenerateContent(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "ai content generation is not configured")
			return
		}
		s.logger.Error("content generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "content generation failed")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{GeneratedContent: text})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !session.ValidWorkflow(req.Workflow) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown workflow %q", req.Workflow))
		return
	}

	sess, err := s.store.Create(r.Context(), req.Workflow)
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.logger.Debug("session created", zap.String("id", sess.ID), zap.String("workflow", sess.Workflow))
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// handleUpdateSession merges a patch into a session. Concurrent patches are
// last-writer-wins; a session deleted or expired between the read and the
// write is not recreated and the patch gets 404.
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	err := decodeBody(w, r, &fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	sess.Merge(fields)

	err = s.store.Save(r.Context(), sess)
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionPreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	switch sess.Workflow {
	case session.WorkflowResume:
		var resume profile.Resume
		resume, err = sess.DecodeResume()
		if err != nil {
			s.unprocessable(w, workflowResume, err)
			return
		}
		s.renderResume(w, resume)
	case session.WorkflowPortfolio:
		var portfolio profile.Portfolio
		portfolio, err = sess.DecodePortfolio()
		if err != nil {
			s.unprocessable(w, workflowPortfolio, err)
			return
		}
		s.renderPortfolio(w, portfolio, "")
	default:
		s.unprocessable(w, sess.Workflow, errors.Errorf("unknown workflow %q", sess.Workflow))
	}
}

func (s *Server) renderResume(w http.ResponseWriter, resume profile.Resume) {
	started := time.Now()
	html, err := builder.ResumeHTML(resume, s.resume)
	if err != nil {
		s.unprocessable(w, workflowResume, err)
		return
	}
	s.metrics.observe(workflowResume, started)

	writeHTML(w, html)
}

func (s *Server) renderPortfolio(w http.ResponseWriter, portfolio profile.Portfolio, filename string) {
	started := time.Now()
	html, err := builder.PortfolioHTML(portfolio, s.portfolio)
	if err != nil {
		s.unprocessable(w, workflowPortfolio, err)
		return
	}
	s.metrics.observe(workflowPortfolio, started)

	if filename != "" {
		w.Header().Set("Content-Disposition", attachment(filename))
	}
	writeHTML(w, html)
}

func (s *Server) badRequest(w http.ResponseWriter, workflow string, err error) {
	s.metrics.fail(workflow)
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) unprocessable(w http.ResponseWriter, workflow string, err error) {
	s.metrics.fail(workflow)
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.logger.Error("session store failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "session store unavailable")
}

// decodeBody reads a JSON object into v. An empty body, or an empty
// object, is errEmptyPayload.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) (err error) {
	var raw []byte
	raw, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		err = errors.Wrap(err, "failed to read request body")
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("null")) {
		err = errEmptyPayload
		return err
	}

	err = json.Unmarshal(trimmed, v)
	if err != nil {
		err = errors.Wrap(err, "invalid JSON body")
		return err
	}

	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

func attachment(filename string) (header string) {
	header = fmt.Sprintf("attachment; filename=%q", filename)
	return header
}
