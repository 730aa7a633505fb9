package orchestrator

import (
	"strings"
	"time"

	"github.com/goliatone/go-formfill/internal/textnorm"
	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/locale"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/synth"
)

// shortToken is the longest affirmative word matched only as a whole segment,
// so "sim" checks "resposta_sim" but not "simulacao".
const shortToken = 3

var boundLayouts = map[locale.InputKind][]string{
	locale.InputDate:     {locale.InputDateLayout},
	locale.InputTime:     {locale.InputTimeLayout, "15:04:05"},
	locale.InputDateTime: {locale.InputDateTimeLayout, "2006-01-02T15:04:05"},
}

// MatchOption picks the option for candidate: a case- and accent-insensitive
// substring match in value or label, then an exact match for two letter
// candidates, then the first option after the placeholder. Options with an
// empty value are never picked. Returns -1 when nothing fits.
func MatchOption(options []dom.SelectOption, candidate string) int {
	needle := textnorm.Fold(candidate)
	if needle != "" {
		for idx, opt := range options {
			if opt.Value == "" {
				continue
			}
			if strings.Contains(textnorm.Fold(opt.Value), needle) || strings.Contains(textnorm.Fold(opt.Label), needle) {
				return idx
			}
		}
		if len([]rune(needle)) == 2 {
			for idx, opt := range options {
				if opt.Value == "" {
					continue
				}
				if strings.EqualFold(strings.TrimSpace(opt.Value), needle) || strings.EqualFold(strings.TrimSpace(opt.Label), needle) {
					return idx
				}
			}
		}
	}
	if len(options) > 1 && options[1].Value != "" {
		return 1
	}
	return -1
}

// adaptText shapes a synthesized value for a text-like control. A non-empty
// reason means the value cannot be used.
func (o *Orchestrator) adaptText(ctrl dom.Control, desc model.FieldDescriptor, kind model.Kind, value string) (string, string) {
	if desc.Tag == model.TagTyped {
		switch desc.Type {
		case "number", "range":
			plain, ok := locale.ParseNumber(value)
			if !ok {
				return "", "value is not numeric"
			}
			value = plain
		case string(locale.InputDate), string(locale.InputTime), string(locale.InputDateTime):
			input := locale.InputKind(desc.Type)
			min := parseBound(ctrl, "min", input)
			max := parseBound(ctrl, "max", input)
			o.synth.Do(func(src synth.Source) {
				value = src.Format.DateForInputWithin(input, src.DateWindow(kind), min, max)
			})
		}
	}
	return truncate(value, desc.Constraints.MaxLength), ""
}

func parseBound(ctrl dom.Control, name string, kind locale.InputKind) *time.Time {
	raw, ok := ctrl.Attr(name)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range boundLayouts[kind] {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func truncate(value string, maxLength *int) string {
	if maxLength == nil || *maxLength <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= *maxLength {
		return value
	}
	return string(runes[:*maxLength])
}

func (o *Orchestrator) isAffirmative(token string) bool {
	token = textnorm.Fold(token)
	if token == "" {
		return false
	}
	for _, word := range o.affirmative {
		if len([]rune(word)) <= shortToken {
			if textnorm.HasSegment(token, word) {
				return true
			}
			continue
		}
		if strings.Contains(token, word) {
			return true
		}
	}
	return false
}
