package actions

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/components/geo"
	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// cityChoiceLimit caps the list shown when a city name is ambiguous.
const cityChoiceLimit = 10

// CitySearcher is implemented by lookups that can list every city matching a
// partial name. *geo.Dataset does.
type CitySearcher interface {
	SearchCities(query string, limit int) []geo.City
}

var _ CitySearcher = (*geo.Dataset)(nil)

// Target is what an action operates on: the focused control for insertions,
// the enclosing form for fillForm.
type Target struct {
	Control dom.Control
	Form    dom.Form
}

// Result describes a completed action. Aborted is set when a prompt got no
// answer; nothing was written in that case.
type Result struct {
	Action  Action               `json:"action"`
	Value   string               `json:"value,omitempty"`
	Report  *orchestrator.Report `json:"report,omitempty"`
	Aborted bool                 `json:"aborted,omitempty"`
}

// Dispatcher runs actions one at a time to completion.
type Dispatcher struct {
	synth        *synth.Synthesizer
	orchestrator *orchestrator.Orchestrator
	prompter     prompt.Prompter
	lookup       geo.Lookup
	logger       *zap.Logger
}

// New constructs a Dispatcher applying any provided options.
func New(options ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	d.applyDefaults()
	return d
}

func (d *Dispatcher) applyDefaults() {
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.synth == nil {
		d.synth = synth.New(synth.WithLogger(d.logger))
	}
	if d.orchestrator == nil {
		d.orchestrator = orchestrator.New(
			orchestrator.WithSynthesizer(d.synth),
			orchestrator.WithLogger(d.logger),
		)
	}
	if d.prompter == nil {
		d.prompter = prompt.NewScripted()
	}
	if d.lookup == nil {
		d.lookup = d.synth.Lookup()
	}
}

// Handle runs action against target.
func (d *Dispatcher) Handle(ctx context.Context, action Action, target Target) (Result, error) {
	result := Result{Action: action}
	def, ok := byAction[action]
	if !ok {
		return result, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if action == FillForm {
		if target.Form == nil {
			return result, fmt.Errorf("actions: %s: %w", action, ErrNoTarget)
		}
		report, err := d.orchestrator.Fill(ctx, target.Form)
		result.Report = &report
		return result, err
	}

	if target.Control == nil {
		return result, fmt.Errorf("actions: %s: %w", action, ErrNoTarget)
	}
	if !dom.Editable(target.Control) {
		return result, fmt.Errorf("actions: %s: %w", action, dom.ErrNotEditable)
	}

	var value string
	switch action {
	case InsertCityByCep, InsertCityByName:
		city, answered, err := d.promptCity(ctx, action)
		if err != nil || !answered {
			result.Aborted = !answered && err == nil
			return result, err
		}
		value = city.Name + " - " + city.RegionCode
	default:
		desc := dom.Describe(target.Control)
		generated, err := d.synth.Generate(def.Kind, desc.Constraints)
		if err != nil {
			return result, fmt.Errorf("actions: %s: %w", action, err)
		}
		value = generated
	}

	if err := dom.Insert(target.Control, value, dom.WithLogger(d.logger)); err != nil {
		return result, fmt.Errorf("actions: %s: %w", action, err)
	}
	result.Value = value
	d.logger.Debug("action handled", zap.String("action", string(action)), zap.String("value", value))
	return result, nil
}

func (d *Dispatcher) promptCity(ctx context.Context, action Action) (geo.City, bool, error) {
	cfg := prompt.InputConfig{Message: "Informe o CEP", Help: "8 dígitos, com ou sem hífen"}
	if action == InsertCityByName {
		cfg = prompt.InputConfig{Message: "Informe o nome da cidade", Help: "Acentos e maiúsculas são ignorados"}
	}

	answer, err := d.prompter.Input(ctx, cfg)
	if prompt.Aborted(err) {
		return geo.City{}, false, nil
	}
	if err != nil {
		return geo.City{}, false, fmt.Errorf("actions: %s: %w", action, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return geo.City{}, false, nil
	}

	if action == InsertCityByName {
		return d.chooseCity(ctx, action, answer)
	}
	return d.findCity(answer)
}

// chooseCity resolves a partial city name. Several matches without a single
// exact one are offered to the user as a list.
func (d *Dispatcher) chooseCity(ctx context.Context, action Action, answer string) (geo.City, bool, error) {
	searcher, ok := d.lookup.(CitySearcher)
	if !ok {
		return d.findCity(answer)
	}
	matches := searcher.SearchCities(answer, cityChoiceLimit)
	switch len(matches) {
	case 0:
		return d.findCity(answer)
	case 1:
		return matches[0], true, nil
	}

	var exact []geo.City
	for _, city := range matches {
		if textnorm.Fold(city.Name) == textnorm.Fold(answer) {
			exact = append(exact, city)
		}
	}
	if len(exact) == 1 {
		return exact[0], true, nil
	}

	labels := make([]string, len(matches))
	for idx, city := range matches {
		labels[idx] = city.Name + " - " + city.RegionCode
	}
	choice, err := d.prompter.Select(ctx, prompt.SelectConfig{
		Message:  "Selecione a cidade",
		Options:  labels,
		PageSize: cityChoiceLimit,
	})
	if prompt.Aborted(err) {
		return geo.City{}, false, nil
	}
	if err != nil {
		return geo.City{}, false, fmt.Errorf("actions: %s: %w", action, err)
	}
	if choice < 0 || choice >= len(matches) {
		return geo.City{}, false, nil
	}
	return matches[choice], true, nil
}

func (d *Dispatcher) findCity(answer string) (geo.City, bool, error) {
	city, ok := d.lookup.FindCity(answer)
	if !ok {
		return geo.City{}, false, fmt.Errorf("%w: %q", ErrLookupMiss, answer)
	}
	return city, true, nil
}
