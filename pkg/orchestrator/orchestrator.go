package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/classify"
	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// ErrNoForm is returned when Fill receives a nil form.
var ErrNoForm = errors.New("orchestrator: form is required")

// Orchestrator runs the classify, synthesize, adapt and commit pipeline over
// the controls of a form. It applies the built-in classifier and synthesizer
// unless callers inject their own.
type Orchestrator struct {
	classifier  *classify.Classifier
	synth       *synth.Synthesizer
	logger      *zap.Logger
	affirmative []string
	now         func() time.Time
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.classifier == nil {
		o.classifier = classify.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.synth == nil {
		o.synth = synth.New(synth.WithLogger(o.logger))
	}
	if o.affirmative == nil {
		o.affirmative = append([]string(nil), DefaultAffirmativeTokens...)
	}
	if o.now == nil {
		o.now = time.Now
	}
}

// Fill walks the form's controls in document order and fills every empty
// one it can classify. Per-field failures are recorded in the report and never
// stop the walk; only a cancelled context does.
func (o *Orchestrator) Fill(ctx context.Context, form dom.Form) (Report, error) {
	report := Report{ID: uuid.NewString(), StartedAt: o.now()}
	if form == nil {
		return report, ErrNoForm
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for idx, ctrl := range form.Controls() {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = o.now()
			return report, fmt.Errorf("orchestrator: fill interrupted: %w", err)
		}
		result := o.fillControl(idx, ctrl, form)
		o.log(report.ID, result)
		report.add(result)
	}

	report.FinishedAt = o.now()
	return report, nil
}

// FillAll fills every form of a document, one report per form.
func (o *Orchestrator) FillAll(ctx context.Context, doc dom.Forms) ([]Report, error) {
	if doc == nil {
		return nil, ErrNoForm
	}
	forms := doc.Forms()
	reports := make([]Report, 0, len(forms))
	for _, form := range forms {
		report, err := o.Fill(ctx, form)
		reports = append(reports, report)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (o *Orchestrator) fillControl(idx int, ctrl dom.Control, form dom.Form) (result FillResult) {
	result.Index = idx
	defer func() {
		if r := recover(); r != nil {
			result.Skipped = false
			result.Action = ActionNone
			result.Err = fmt.Errorf("orchestrator: control %d panicked: %v", idx, r)
		}
	}()

	if ctrl == nil {
		return skip(result, "missing control")
	}
	result.NameToken = model.NameToken(ctrl.Name(), ctrl.ID())

	if dom.Skipped(ctrl) {
		return skip(result, "not fillable")
	}
	if !dom.Empty(ctrl, form) {
		return skip(result, "has value")
	}

	desc := dom.Describe(ctrl)
	switch desc.Tag {
	case model.TagCheckbox, model.TagRadio:
		return o.fillCheckable(result, ctrl, desc)
	}

	kind, rule := o.classifier.Explain(desc)
	result.Kind, result.Rule = kind, rule
	if kind == model.KindNone {
		return skip(result, "no kind")
	}

	value, ok := o.synth.Synthesize(kind, desc.Constraints)
	if !ok {
		return skip(result, "no generator")
	}

	if desc.Tag == model.TagSelect {
		return o.fillSelect(result, ctrl, value)
	}

	value, reason := o.adaptText(ctrl, desc, kind, value)
	if reason != "" {
		return skip(result, reason)
	}
	if err := o.write(ctrl, value); err != nil {
		result.Err = err
		return result
	}
	result.Value = value
	result.Action = ActionSet
	return result
}

// write goes through the single-field insertion path for editable controls.
// Date, time and range inputs have no selection to splice into and are
// committed directly.
func (o *Orchestrator) write(ctrl dom.Control, value string) error {
	if dom.Editable(ctrl) {
		return dom.Insert(ctrl, value, dom.WithLogger(o.logger))
	}
	return dom.Commit(ctrl, value, dom.WithLogger(o.logger))
}

func (o *Orchestrator) fillCheckable(result FillResult, ctrl dom.Control, desc model.FieldDescriptor) FillResult {
	if !o.isAffirmative(desc.NameToken) {
		return skip(result, "not affirmative")
	}
	if err := dom.CommitChecked(ctrl, true, dom.WithLogger(o.logger)); err != nil {
		result.Err = err
		return result
	}
	result.Value = ctrl.Value()
	result.Action = ActionChecked
	return result
}

func (o *Orchestrator) fillSelect(result FillResult, ctrl dom.Control, candidate string) FillResult {
	idx := MatchOption(ctrl.Options(), candidate)
	if idx < 0 {
		return skip(result, "no matching option")
	}
	if err := dom.CommitSelected(ctrl, idx, dom.WithLogger(o.logger)); err != nil {
		result.Err = err
		return result
	}
	result.Value = ctrl.Value()
	result.Action = ActionSelected
	return result
}

func (o *Orchestrator) log(reportID string, result FillResult) {
	fields := []zap.Field{
		zap.String("report", reportID),
		zap.Int("index", result.Index),
		zap.String("name", result.NameToken),
		zap.Stringer("kind", result.Kind),
	}
	switch {
	case result.Err != nil:
		o.logger.Debug("field failed", append(fields, zap.Error(result.Err))...)
	case result.Skipped:
		o.logger.Debug("field skipped", append(fields, zap.String("reason", result.Reason))...)
	default:
		o.logger.Debug("field filled", append(fields, zap.String("rule", result.Rule), zap.String("action", result.Action))...)
	}
}

func skip(result FillResult, reason string) FillResult {
	result.Skipped = true
	result.Reason = reason
	return result
}
