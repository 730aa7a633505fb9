package synth

import (
	"math/rand"
	"time"

	"github.com/goliatone/go-formfill/components/geo"
	"go.uber.org/zap"
)

// Option customises a Synthesizer.
type Option func(*Synthesizer)

// WithLookup injects the reference dataset. A nil lookup keeps the embedded
// dataset.
func WithLookup(lookup geo.Lookup) Option {
	return func(s *Synthesizer) {
		if lookup != nil {
			s.lookup = lookup
		}
	}
}

// WithRand sets the random source shared by every generator.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithSeed seeds a private random source. Zero keeps the clock seed.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		if seed != 0 {
			s.rand = rand.New(rand.NewSource(seed))
		}
	}
}

// WithClock overrides "now" for date generators.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaults replaces the fallback ranges used when a field carries no
// constraints.
func WithDefaults(defaults Defaults) Option {
	return func(s *Synthesizer) {
		s.defaults = defaults.withFallbacks()
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Defaults holds the ranges applied when constraints are absent.
type Defaults struct {
	TextMinLength int
	TextMaxLength int
	IntegerMin    float64
	IntegerMax    float64
	MoneyMin      float64
	MoneyMax      float64
	DecimalMin    float64
	DecimalMax    float64
	Decimals      int
}

// DefaultDefaults returns the stock fallback ranges.
func DefaultDefaults() Defaults {
	return Defaults{
		TextMinLength: 5,
		TextMaxLength: 200,
		IntegerMin:    0,
		IntegerMax:    10000,
		MoneyMin:      1,
		MoneyMax:      10000,
		DecimalMin:    0,
		DecimalMax:    1000,
		Decimals:      2,
	}
}

func (d Defaults) withFallbacks() Defaults {
	base := DefaultDefaults()
	if d.TextMinLength < 0 {
		d.TextMinLength = 0
	}
	if d.TextMaxLength <= 0 {
		d.TextMaxLength = base.TextMaxLength
	}
	if d.IntegerMin == 0 && d.IntegerMax == 0 {
		d.IntegerMin, d.IntegerMax = base.IntegerMin, base.IntegerMax
	}
	if d.MoneyMin == 0 && d.MoneyMax == 0 {
		d.MoneyMin, d.MoneyMax = base.MoneyMin, base.MoneyMax
	}
	if d.DecimalMin == 0 && d.DecimalMax == 0 {
		d.DecimalMin, d.DecimalMax = base.DecimalMin, base.DecimalMax
	}
	if d.Decimals < 0 {
		d.Decimals = base.Decimals
	}
	return d
}
