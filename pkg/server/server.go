// Package server exposes the renderer, the document builders and the form
// session workflow over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikogura/folio/pkg/builder"
	"github.com/nikogura/folio/pkg/renderer"
	"github.com/nikogura/folio/pkg/session"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// Generator produces AI text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PDFFunc converts a markdown file into a PDF file.
type PDFFunc func(ctx context.Context, markdownPath, outputPath string) error

// PandocPDF returns a PDFFunc that runs pandoc with the given optional
// LaTeX template, class file and engine.
func PandocPDF(templatePath, classPath, engine string) (fn PDFFunc) {
	fn = func(ctx context.Context, markdownPath, outputPath string) error {
		return renderer.RenderPDFWithContext(ctx, markdownPath, outputPath, templatePath, classPath, engine)
	}
	return fn
}

// Options configures a Server. Store is required; the rest may be zero.
type Options struct {
	Logger *zap.Logger
	Store  session.Store
	// Generator is nil when no AI provider is configured.
	Generator Generator
	// PDF renders resume PDFs. Nil disables /resume/generate-pdf.
	PDF       PDFFunc
	Resume    builder.Options
	Portfolio builder.Options
	// Registry receives the server metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	logger    *zap.Logger
	store     session.Store
	generator Generator
	pdf       PDFFunc
	resume    builder.Options
	portfolio builder.Options
	registry  *prometheus.Registry
	metrics   *metrics
}

// New creates a Server.
func New(opts Options) (s *Server) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s = &Server{
		logger:    logger,
		store:     opts.Store,
		generator: opts.Generator,
		pdf:       opts.PDF,
		resume:    opts.Resume,
		portfolio: opts.Portfolio,
		registry:  registry,
		metrics:   newMetrics(registry),
	}

	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() (h http.Handler) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Post("/render", s.handleRender)
	r.Post("/validate", s.handleValidate)

	r.Route("/resume", func(r chi.Router) {
		r.Post("/preview", s.handleResumePreview)
		r.Post("/generate-pdf", s.handleResumePDF)
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Post("/preview", s.handlePortfolioPreview)
		r.Post("/export", s.handlePortfolioExport)
	})

	r.Post("/ai/generate-content", s.handleGenerateContent)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/{id}", s.handleGetSession)
		r.Patch("/{id}", s.handleUpdateSession)
		r.Delete("/{id}", s.handleDeleteSession)
		r.Get("/{id}/preview", s.handleSessionPreview)
	})

	h = r
	return h
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) (err error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	return err
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(started)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
