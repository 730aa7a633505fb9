package orchestrator

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// DefaultAffirmativeTokens mark checkboxes and radios that should be checked.
var DefaultAffirmativeTokens = []string{"aceite", "aceito", "accept", "agree", "concordo", "sim", "yes", "termos", "terms"}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithClassifier injects a custom classifier.
func WithClassifier(classifier *classify.Classifier) Option {
	return func(o *Orchestrator) {
		o.classifier = classifier
	}
}

// WithSynthesizer injects a custom synthesizer.
func WithSynthesizer(synthesizer *synth.Synthesizer) Option {
	return func(o *Orchestrator) {
		o.synth = synthesizer
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithAffirmativeTokens replaces the tokens that make a checkbox or radio
// eligible for checking.
func WithAffirmativeTokens(tokens ...string) Option {
	return func(o *Orchestrator) {
		cleaned := make([]string, 0, len(tokens))
		for _, token := range tokens {
			if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
				cleaned = append(cleaned, token)
			}
		}
		o.affirmative = cleaned
	}
}

// WithClock sets the clock stamped on reports.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}
