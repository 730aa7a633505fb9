package actions

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithSynthesizer sets the value source for single-field actions.
func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(d *Dispatcher) {
		d.synth = s
	}
}

// WithOrchestrator sets the engine behind fillForm. When omitted one is built
// around the dispatcher's synthesizer.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(d *Dispatcher) {
		d.orchestrator = o
	}
}

// WithPrompter sets where prompted actions ask for input. The default replays
// no answers, so prompted actions abort.
func WithPrompter(p prompt.Prompter) Option {
	return func(d *Dispatcher) {
		d.prompter = p
	}
}

// WithLookup overrides the dataset used by prompted city actions.
func WithLookup(lookup geo.Lookup) Option {
	return func(d *Dispatcher) {
		d.lookup = lookup
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}
