// Package formfill wires the generators, the classifier and the fill engine
// into a single Engine configured from a config.Config. Callers that need
// finer control use the pkg/ packages directly.
package formfill

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/actions"
	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/config"
	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/dom/htmldoc"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/openapi"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/server"
	"github.com/goliatone/go-formfill/pkg/synth"
	"github.com/goliatone/go-formfill/pkg/validation"
)

// Report aliases orchestrator.Report for callers of the root package.
type Report = orchestrator.Report

// Option configures New.
type Option func(*settings)

type settings struct {
	config   *config.Config
	dataset  *geo.Dataset
	prompter prompt.Prompter
	logger   *zap.Logger
	now      func() time.Time
}

// WithConfig replaces config.Default.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithDataset skips loading the configured dataset.
func WithDataset(dataset *geo.Dataset) Option {
	return func(s *settings) {
		s.dataset = dataset
	}
}

// WithPrompter sets where the prompted city actions ask for input.
func WithPrompter(p prompt.Prompter) Option {
	return func(s *settings) {
		s.prompter = p
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock fixes "now" for generators, validators and reports.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// Engine owns one synthesizer and everything built on it. Fill calls are
// serialised by the synthesizer; the rest is read-only after New.
type Engine struct {
	config       *config.Config
	dataset      *geo.Dataset
	synth        *synth.Synthesizer
	classifier   *classify.Classifier
	orchestrator *orchestrator.Orchestrator
	dispatcher   *actions.Dispatcher
	filler       *openapi.Filler
	validator    *validation.Validator
	logger       *zap.Logger
}

// New builds an Engine, loading the configured dataset unless one is given.
func New(ctx context.Context, options ...Option) (*Engine, error) {
	s := settings{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	if s.config == nil {
		s.config = config.Default()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("formfill: %w", err)
	}
	if s.dataset == nil {
		dataset, err := s.config.OpenDataset(ctx)
		if err != nil {
			return nil, fmt.Errorf("formfill: open dataset: %w", err)
		}
		s.dataset = dataset
	}

	synthOpts := []synth.Option{
		synth.WithLookup(s.dataset),
		synth.WithDefaults(s.config.SynthDefaults()),
		synth.WithLogger(s.logger),
	}
	if s.config.Seed != 0 {
		synthOpts = append(synthOpts, synth.WithSeed(s.config.Seed))
	}
	if s.now != nil {
		synthOpts = append(synthOpts, synth.WithClock(s.now))
	}

	e := &Engine{
		config:     s.config,
		dataset:    s.dataset,
		synth:      synth.New(synthOpts...),
		classifier: classify.New(),
		logger:     s.logger,
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithClassifier(e.classifier),
		orchestrator.WithSynthesizer(e.synth),
		orchestrator.WithLogger(s.logger),
	}
	if len(s.config.AffirmativeTokens) > 0 {
		orchOpts = append(orchOpts, orchestrator.WithAffirmativeTokens(s.config.AffirmativeTokens...))
	}
	if s.now != nil {
		orchOpts = append(orchOpts, orchestrator.WithClock(s.now))
	}
	e.orchestrator = orchestrator.New(orchOpts...)

	e.dispatcher = actions.New(
		actions.WithSynthesizer(e.synth),
		actions.WithOrchestrator(e.orchestrator),
		actions.WithPrompter(s.prompter),
		actions.WithLookup(s.dataset),
		actions.WithLogger(s.logger),
	)
	e.filler = openapi.NewFiller(
		openapi.WithClassifier(e.classifier),
		openapi.WithSynthesizer(e.synth),
		openapi.WithLogger(s.logger),
	)

	validatorOpts := []validation.Option{validation.WithLookup(s.dataset)}
	if s.now != nil {
		validatorOpts = append(validatorOpts, validation.WithClock(s.now))
	}
	e.validator = validation.New(validatorOpts...)
	return e, nil
}

func (e *Engine) Config() *config.Config {
	return e.config
}

func (e *Engine) Dataset() *geo.Dataset {
	return e.dataset
}

func (e *Engine) Synthesizer() *synth.Synthesizer {
	return e.synth
}

// Generate produces one value for the named kind.
func (e *Engine) Generate(kind string, c model.Constraints) (string, error) {
	k, ok := model.ParseKind(kind)
	if !ok {
		return "", fmt.Errorf("formfill: %w: %q", synth.ErrUnknownKind, kind)
	}
	return e.synth.Generate(k, c)
}

// Validate checks value against the named kind.
func (e *Engine) Validate(kind, value string) (validation.Result, error) {
	return e.validator.ValidateName(kind, value)
}

// Classify returns the kind the fill engine would assign to desc and the
// rule that decided it.
func (e *Engine) Classify(desc model.FieldDescriptor) (model.Kind, string) {
	return e.classifier.Explain(desc)
}

func (e *Engine) Fill(ctx context.Context, form dom.Form) (Report, error) {
	return e.orchestrator.Fill(ctx, form)
}

// FillHTML parses r, fills the form at formIndex (every form when negative)
// and returns the mutated document with one report per filled form.
func (e *Engine) FillHTML(ctx context.Context, r io.Reader, formIndex int) (*htmldoc.Document, []Report, error) {
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("formfill: %w", err)
	}
	if formIndex < 0 {
		reports, err := e.orchestrator.FillAll(ctx, doc)
		return doc, reports, err
	}
	form, err := doc.Form(formIndex)
	if err != nil {
		return doc, nil, fmt.Errorf("formfill: %w", err)
	}
	report, err := e.orchestrator.Fill(ctx, form)
	return doc, []Report{report}, err
}

// Handle runs one trigger-protocol action.
func (e *Engine) Handle(ctx context.Context, action actions.Action, target actions.Target) (actions.Result, error) {
	return e.dispatcher.Handle(ctx, action, target)
}

// Payload builds an indented sample request body for operationID.
func (e *Engine) Payload(ctx context.Context, doc openapi.Document, operationID string) ([]byte, error) {
	op, err := openapi.FindOperation(ctx, doc, operationID)
	if err != nil {
		return nil, err
	}
	return e.filler.PayloadJSON(op)
}

// Server builds the HTTP service around the engine's synthesizer, classifier
// and dataset, applying the server section of the config first.
func (e *Engine) Server(options ...server.Option) (*server.Server, error) {
	cfg := e.config.Server
	opts := []server.Option{
		server.WithSynthesizer(e.synth),
		server.WithClassifier(e.classifier),
		server.WithDataset(e.dataset),
		server.WithGeoRoutePath(cfg.GeoRoutePath),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
		server.WithLogger(e.logger),
	}
	if len(e.config.AffirmativeTokens) > 0 {
		opts = append(opts, server.WithAffirmativeTokens(e.config.AffirmativeTokens...))
	}
	return server.New(append(opts, options...)...)
}
