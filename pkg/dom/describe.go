package dom

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

var (
	skippedTypes = map[string]struct{}{
		"hidden": {}, "submit": {}, "button": {}, "file": {}, "reset": {}, "image": {},
	}
	textLikeTypes = map[string]struct{}{
		"": {}, "text": {}, "search": {}, "url": {}, "tel": {}, "email": {}, "password": {}, "number": {},
	}
)

// Describe snapshots a control into the descriptor the classifier reads.
// Constraint attributes that are missing or not numeric stay nil.
func Describe(ctrl Control) model.FieldDescriptor {
	if ctrl == nil {
		return model.FieldDescriptor{}
	}
	typ := strings.ToLower(strings.TrimSpace(ctrl.Type()))
	desc := model.FieldDescriptor{
		Tag:          tagOf(ctrl, typ),
		NameToken:    model.NameToken(ctrl.Name(), ctrl.ID()),
		CurrentValue: ctrl.Value(),
		Constraints: model.Constraints{
			MinLength: intAttr(ctrl, "minlength"),
			MaxLength: intAttr(ctrl, "maxlength"),
			Min:       floatAttr(ctrl, "min"),
			Max:       floatAttr(ctrl, "max"),
		},
	}
	if desc.Tag == model.TagTyped || desc.Tag == model.TagText {
		desc.Type = typ
	}
	if desc.Tag == model.TagRadio || desc.Tag == model.TagCheckbox {
		desc.GroupName = ctrl.Name()
	}
	return desc
}

func tagOf(ctrl Control, typ string) model.Tag {
	switch strings.ToLower(ctrl.Tag()) {
	case "textarea":
		return model.TagTextarea
	case "select":
		return model.TagSelect
	}
	switch typ {
	case "checkbox":
		return model.TagCheckbox
	case "radio":
		return model.TagRadio
	case "", "text":
		return model.TagText
	default:
		return model.TagTyped
	}
}

func intAttr(ctrl Control, name string) *int {
	raw, ok := ctrl.Attr(name)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func floatAttr(ctrl Control, name string) *float64 {
	raw, ok := ctrl.Attr(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}

// Skipped reports controls the fill engine must never touch: disabled or
// read-only controls and non-data inputs (hidden, submit, button, file,
// reset, image).
func Skipped(ctrl Control) bool {
	if ctrl == nil || ctrl.Disabled() || ctrl.ReadOnly() {
		return true
	}
	if strings.ToLower(ctrl.Tag()) != "input" {
		return false
	}
	_, skip := skippedTypes[strings.ToLower(strings.TrimSpace(ctrl.Type()))]
	return skip
}

// Editable reports whether direct text insertion is allowed: a textarea or a
// text-like input that is neither read-only nor disabled.
func Editable(ctrl Control) bool {
	if ctrl == nil || ctrl.Disabled() || ctrl.ReadOnly() {
		return false
	}
	switch strings.ToLower(ctrl.Tag()) {
	case "textarea":
		return true
	case "input":
		_, ok := textLikeTypes[strings.ToLower(strings.TrimSpace(ctrl.Type()))]
		return ok
	default:
		return false
	}
}

// Empty reports whether ctrl still needs a value. Radios are empty while no
// radio of the same group in form is checked.
func Empty(ctrl Control, form Form) bool {
	if ctrl == nil {
		return false
	}
	switch tagOf(ctrl, strings.ToLower(strings.TrimSpace(ctrl.Type()))) {
	case model.TagSelect:
		return SelectEmpty(ctrl)
	case model.TagCheckbox:
		return !ctrl.Checked()
	case model.TagRadio:
		if ctrl.Name() == "" {
			return !ctrl.Checked()
		}
		return !GroupChecked(form, ctrl.Name())
	default:
		return strings.TrimSpace(ctrl.Value()) == ""
	}
}

// SelectEmpty reports whether no real option is selected. A selected option
// with an empty value counts as a placeholder.
func SelectEmpty(ctrl Control) bool {
	options := ctrl.Options()
	idx := ctrl.SelectedIndex()
	if idx < 0 || idx >= len(options) {
		return true
	}
	return options[idx].Value == ""
}

// GroupChecked reports whether any radio named name in form is checked.
func GroupChecked(form Form, name string) bool {
	if form == nil || name == "" {
		return false
	}
	for _, ctrl := range form.Controls() {
		if strings.ToLower(ctrl.Type()) != "radio" || ctrl.Name() != name {
			continue
		}
		if ctrl.Checked() {
			return true
		}
	}
	return false
}
