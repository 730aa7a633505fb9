package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/locale"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// ErrNoRequestBody is returned for operations without a request body schema.
var ErrNoRequestBody = errors.New("openapi: operation has no request body")

const defaultMaxDepth = 6

var stringTypes = map[string]string{
	"email":     "email",
	"date":      string(locale.InputDate),
	"date-time": string(locale.InputDateTime),
	"time":      string(locale.InputTime),
	"uri":       "url",
	"url":       "url",
	"password":  "password",
}

// FillerOption customises a Filler.
type FillerOption func(*Filler)

func WithClassifier(c *classify.Classifier) FillerOption {
	return func(f *Filler) {
		f.classifier = c
	}
}

func WithSynthesizer(s *synth.Synthesizer) FillerOption {
	return func(f *Filler) {
		f.synth = s
	}
}

func WithLogger(logger *zap.Logger) FillerOption {
	return func(f *Filler) {
		f.logger = logger
	}
}

// WithMaxDepth bounds nested objects and arrays.
func WithMaxDepth(depth int) FillerOption {
	return func(f *Filler) {
		if depth > 0 {
			f.maxDepth = depth
		}
	}
}

// WithRequiredOnly leaves optional properties out of objects.
func WithRequiredOnly(enabled bool) FillerOption {
	return func(f *Filler) {
		f.requiredOnly = enabled
	}
}

// Filler builds payloads from schemas.
type Filler struct {
	classifier   *classify.Classifier
	synth        *synth.Synthesizer
	logger       *zap.Logger
	maxDepth     int
	requiredOnly bool
}

// NewFiller constructs a Filler with the built-in classifier and synthesizer
// unless others are injected.
func NewFiller(options ...FillerOption) *Filler {
	f := &Filler{maxDepth: defaultMaxDepth}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.classifier == nil {
		f.classifier = classify.New()
	}
	if f.synth == nil {
		f.synth = synth.New(synth.WithLogger(f.logger))
	}
	return f
}

// Payload synthesizes a request body for op.
func (f *Filler) Payload(op Operation) (any, error) {
	body := op.RequestBody
	if body.Type == "" && len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestBody, op.ID)
	}
	return f.Value("", body), nil
}

// PayloadJSON renders Payload as indented JSON.
func (f *Filler) PayloadJSON(op Operation) ([]byte, error) {
	payload, err := f.Payload(op)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("openapi: encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

// Value synthesizes a value for a property called name.
func (f *Filler) Value(name string, schema Schema) any {
	return f.value(name, schema, 0)
}

// Describe maps a property to the descriptor an equivalent form control
// would produce.
func Describe(name string, schema Schema) model.FieldDescriptor {
	desc := model.FieldDescriptor{
		NameToken: model.NameToken(name, ""),
		Constraints: model.Constraints{
			MinLength: schema.MinLength,
			MaxLength: schema.MaxLength,
			Min:       schema.Minimum,
			Max:       schema.Maximum,
		},
	}
	switch {
	case len(schema.Enum) > 0:
		desc.Tag = model.TagSelect
	case schema.Type == "boolean":
		desc.Tag = model.TagCheckbox
	case schema.Type == "integer" || schema.Type == "number":
		desc.Tag, desc.Type = model.TagTyped, "number"
	default:
		if typ, ok := stringTypes[strings.ToLower(schema.Format)]; ok {
			desc.Tag, desc.Type = model.TagTyped, typ
		} else {
			desc.Tag, desc.Type = model.TagText, "text"
		}
	}
	return desc
}

func (f *Filler) value(name string, schema Schema, depth int) any {
	if depth > f.maxDepth {
		return nil
	}
	switch schema.Type {
	case "object":
		return f.object(schema, depth)
	case "array":
		if schema.Items == nil {
			return []any{}
		}
		n := schema.MinItems
		if n < 1 {
			n = 1
		}
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, f.value(name, *schema.Items, depth+1))
		}
		return items
	case "boolean":
		return isAffirmative(name)
	case "integer", "number":
		return f.number(name, schema)
	case "":
		if len(schema.Properties) == 0 && len(schema.Enum) == 0 {
			return nil
		}
		if len(schema.Properties) > 0 {
			return f.object(schema, depth)
		}
	}
	return f.text(name, schema)
}

func (f *Filler) object(schema Schema, depth int) map[string]any {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if f.requiredOnly && !schema.IsRequired(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = f.value(name, schema.Properties[name], depth+1)
	}
	return out
}

func (f *Filler) text(name string, schema Schema) any {
	desc := Describe(name, schema)
	kind, _ := f.classifier.Explain(desc)

	if len(schema.Enum) > 0 {
		candidate, _ := f.synth.Synthesize(kind, desc.Constraints)
		return pickEnum(schema.Enum, candidate)
	}

	switch desc.Type {
	case string(locale.InputDate), string(locale.InputTime), string(locale.InputDateTime):
		var value string
		f.synth.Do(func(src synth.Source) {
			value = src.Format.DateForInputWithin(locale.InputKind(desc.Type), src.DateWindow(kind), nil, nil)
		})
		if desc.Type == string(locale.InputDateTime) {
			if t, err := time.Parse(locale.InputDateTimeLayout, value); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
		return value
	}

	if kind == model.KindNone {
		kind = model.KindGenericText
	}
	value, ok := f.synth.Synthesize(kind, desc.Constraints)
	if !ok {
		f.logger.Debug("no generator for property", zap.String("name", name), zap.Stringer("kind", kind))
		return ""
	}
	if max := desc.Constraints.MaxLength; max != nil && *max > 0 {
		if runes := []rune(value); len(runes) > *max {
			value = string(runes[:*max])
		}
	}
	return value
}

func (f *Filler) number(name string, schema Schema) any {
	desc := Describe(name, schema)
	kind, _ := f.classifier.Explain(desc)

	if len(schema.Enum) > 0 {
		candidate, _ := f.synth.Synthesize(kind, desc.Constraints)
		return pickEnum(schema.Enum, candidate)
	}

	parsed, ok := f.parsed(kind, desc.Constraints)
	if !ok {
		fallback := model.KindDecimal
		if schema.Type == "integer" {
			fallback = model.KindInteger
		}
		parsed, ok = f.parsed(fallback, desc.Constraints)
		if !ok {
			return 0
		}
	}
	if desc.Constraints.Min != nil && parsed < *desc.Constraints.Min {
		parsed = *desc.Constraints.Min
	}
	if desc.Constraints.Max != nil && parsed > *desc.Constraints.Max {
		parsed = *desc.Constraints.Max
	}
	if schema.Type == "integer" {
		return int64(math.Trunc(parsed))
	}
	return parsed
}

func (f *Filler) parsed(kind model.Kind, c model.Constraints) (float64, bool) {
	raw, ok := f.synth.Synthesize(kind, c)
	if !ok {
		return 0, false
	}
	plain, ok := locale.ParseNumber(raw)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(plain, 64)
	return value, err == nil
}

func pickEnum(values []any, candidate string) any {
	needle := textnorm.Fold(candidate)
	if needle != "" {
		for _, value := range values {
			folded := textnorm.Fold(fmt.Sprint(value))
			if folded != "" && (strings.Contains(folded, needle) || strings.Contains(needle, folded)) {
				return value
			}
		}
	}
	return values[0]
}

func isAffirmative(name string) bool {
	token := textnorm.Fold(name)
	for _, word := range orchestrator.DefaultAffirmativeTokens {
		if strings.Contains(token, word) {
			return true
		}
	}
	return false
}
