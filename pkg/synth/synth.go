package synth

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/pkg/locale"
	"github.com/goliatone/go-formfill/pkg/model"
	"go.uber.org/zap"
)

// Source is what a generator draws from. Rand, Faker and Format share one
// underlying random stream.
type Source struct {
	Rand     *rand.Rand
	Faker    *gofakeit.Faker
	Format   *locale.Formatter
	Lookup   geo.Lookup
	Defaults Defaults
}

// DateWindow is the range a native date control is drawn from for kind:
// birth date kinds keep their age window, everything else uses the default.
func (src Source) DateWindow(kind model.Kind) locale.Window {
	switch kind {
	case model.KindAdultDate:
		return src.Format.AdultWindow()
	case model.KindMinorDate:
		return src.Format.MinorWindow()
	default:
		return src.Format.DefaultWindow()
	}
}

// Generator produces a candidate value for one field.
type Generator interface {
	Generate(src Source, c model.Constraints) string
}

// GeneratorFunc adapts a plain function into a Generator.
type GeneratorFunc func(src Source, c model.Constraints) string

func (fn GeneratorFunc) Generate(src Source, c model.Constraints) string {
	return fn(src, c)
}

// Synthesizer maps semantic kinds to generators. It is safe for concurrent
// use; generation is serialised on the shared random source.
type Synthesizer struct {
	mu         sync.RWMutex
	generators map[model.Kind]Generator

	genMu    sync.Mutex
	rand     *rand.Rand
	now      func() time.Time
	lookup   geo.Lookup
	defaults Defaults
	logger   *zap.Logger
	src      Source
}

// New builds a Synthesizer with every built-in generator registered.
func New(options ...Option) *Synthesizer {
	s := &Synthesizer{
		generators: make(map[model.Kind]Generator),
		now:        time.Now,
		defaults:   DefaultDefaults(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.lookup == nil {
		dataset, err := geo.DefaultDataset()
		if err != nil {
			s.logger.Debug("embedded dataset unavailable", zap.Error(err))
		}
		s.lookup = dataset
	}

	s.src = Source{
		Rand:     s.rand,
		Faker:    &gofakeit.Faker{Rand: s.rand},
		Format:   locale.New(s.rand, locale.WithClock(s.now)),
		Lookup:   s.lookup,
		Defaults: s.defaults,
	}
	for kind, gen := range builtins() {
		s.generators[kind] = gen
	}
	return s
}

// Register installs or replaces the generator for kind.
func (s *Synthesizer) Register(kind model.Kind, gen Generator) error {
	if kind == model.KindNone {
		return fmt.Errorf("synth: cannot register a generator for kind none")
	}
	if gen == nil {
		return fmt.Errorf("synth: generator for %s is required", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generators[kind] = gen
	return nil
}

// Has reports whether a generator is registered for kind.
func (s *Synthesizer) Has(kind model.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.generators[kind]
	return ok
}

// Kinds lists the kinds with a registered generator, in declaration order.
func (s *Synthesizer) Kinds() []model.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Kind, 0, len(s.generators))
	for kind := range s.generators {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Synthesize returns a value for kind honouring c, or false when the kind is
// None or has no generator.
func (s *Synthesizer) Synthesize(kind model.Kind, c model.Constraints) (string, bool) {
	value, err := s.Generate(kind, c)
	if err != nil {
		return "", false
	}
	return value, true
}

// Generate is Synthesize with an error naming the missing kind.
func (s *Synthesizer) Generate(kind model.Kind, c model.Constraints) (string, error) {
	if kind == model.KindNone {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	s.mu.RLock()
	gen, ok := s.generators[kind]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()
	return gen.Generate(s.src, c), nil
}

// Lookup returns the injected reference dataset.
func (s *Synthesizer) Lookup() geo.Lookup {
	return s.lookup
}

// Do runs fn with exclusive access to the shared source.
func (s *Synthesizer) Do(fn func(src Source)) {
	if fn == nil {
		return
	}
	s.genMu.Lock()
	defer s.genMu.Unlock()
	fn(s.src)
}
