// Package server exposes the generators, the form filler and the geo
// component over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/openapi"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// Server owns the router and the shared read-only engine. Every request
// works on its own parsed document.
type Server struct {
	synth        *synth.Synthesizer
	classifier   *classify.Classifier
	orchestrator *orchestrator.Orchestrator
	filler       *openapi.Filler
	dataset      *geo.Dataset
	affirmative  []string
	geoRoute     string
	maxBody      int64
	logger       *zap.Logger
	router       chi.Router
}

// New builds a Server and its routes.
func New(options ...Option) (*Server, error) {
	s := &Server{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.applyDefaults()
	s.filler = openapi.NewFiller(
		openapi.WithClassifier(s.classifier),
		openapi.WithSynthesizer(s.synth),
		openapi.WithLogger(s.logger),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/kinds", s.handleKinds)
	r.Get("/api/generate/{kind}", s.handleGenerate)
	r.Get("/api/classify", s.handleClassify)
	r.Post("/api/fill", s.handleFill)
	r.Post("/api/openapi/{operationId}", s.handleOpenAPI)

	geoOpts := []geo.OptionFn{geo.WithDataset(s.dataset)}
	if s.geoRoute != "" {
		geoOpts = append(geoOpts, geo.WithRoutePath(s.geoRoute))
	}
	if _, err := geo.New(geoOpts...).RegisterRoutes(r, ""); err != nil {
		return nil, fmt.Errorf("server: mount geo routes: %w", err)
	}

	s.router = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
