package orchestrator

import (
	"time"

	"github.com/goliatone/go-formfill/pkg/model"
)

// Actions recorded on a FillResult.
const (
	ActionSet      = "set"
	ActionSelected = "selected"
	ActionChecked  = "checked"
	ActionNone     = ""
)

// FillResult is the outcome for one control.
type FillResult struct {
	Index     int        `json:"index"`
	NameToken string     `json:"name"`
	Kind      model.Kind `json:"-"`
	KindName  string     `json:"kind"`
	Rule      string     `json:"rule,omitempty"`
	Value     string     `json:"value,omitempty"`
	Action    string     `json:"action,omitempty"`
	Skipped   bool       `json:"skipped"`
	Reason    string     `json:"reason,omitempty"`
	Err       error      `json:"-"`
	Error     string     `json:"error,omitempty"`
}

// Report collects the per-field results of one Fill call. Nothing in it is
// retained by the engine.
type Report struct {
	ID         string       `json:"id"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Results    []FillResult `json:"results"`
	Filled     int          `json:"filled"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
}

func (r *Report) add(result FillResult) {
	result.KindName = result.Kind.String()
	if result.Err != nil {
		result.Error = result.Err.Error()
	}
	switch {
	case result.Err != nil:
		r.Failed++
	case result.Skipped:
		r.Skipped++
	default:
		r.Filled++
	}
	r.Results = append(r.Results, result)
}

// Result returns the first result for name, if any.
func (r Report) Result(name string) (FillResult, bool) {
	for _, result := range r.Results {
		if result.NameToken == name {
			return result, true
		}
	}
	return FillResult{}, false
}
