package server

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
)

const (
	defaultMaxBodyBytes = 2 << 20
	maxGenerateCount    = 100
)

// Option customises a Server.
type Option func(*Server)

func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(srv *Server) {
		srv.synth = s
	}
}

func WithClassifier(c *classify.Classifier) Option {
	return func(srv *Server) {
		srv.classifier = c
	}
}

// WithAffirmativeTokens is forwarded to the fill engine.
func WithAffirmativeTokens(tokens ...string) Option {
	return func(srv *Server) {
		srv.affirmative = append([]string(nil), tokens...)
	}
}

// WithDataset serves geo routes from dataset instead of the embedded one.
func WithDataset(dataset *geo.Dataset) Option {
	return func(srv *Server) {
		srv.dataset = dataset
	}
}

// WithGeoRoutePath mounts the geo component under path.
func WithGeoRoutePath(path string) Option {
	return func(srv *Server) {
		srv.geoRoute = path
	}
}

// WithMaxBodyBytes bounds request bodies for fill and openapi routes.
func WithMaxBodyBytes(n int64) Option {
	return func(srv *Server) {
		if n > 0 {
			srv.maxBody = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(srv *Server) {
		srv.logger = logger
	}
}

func (s *Server) applyDefaults() {
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.synth == nil {
		s.synth = synth.New(synth.WithLogger(s.logger))
	}
	if s.classifier == nil {
		s.classifier = classify.New()
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBodyBytes
	}
	opts := []orchestrator.Option{
		orchestrator.WithClassifier(s.classifier),
		orchestrator.WithSynthesizer(s.synth),
		orchestrator.WithLogger(s.logger),
	}
	if s.affirmative != nil {
		opts = append(opts, orchestrator.WithAffirmativeTokens(s.affirmative...))
	}
	s.orchestrator = orchestrator.New(opts...)
}
