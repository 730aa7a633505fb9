package model

import "strings"

// Tag is the simplified control family used by the classifier.
type Tag string

const (
	TagText     Tag = "text"
	TagTextarea Tag = "textarea"
	TagSelect   Tag = "select"
	TagCheckbox Tag = "checkbox"
	TagRadio    Tag = "radio"
	TagTyped    Tag = "typed"
)

// Constraints mirrors the minlength/maxlength/min/max attributes of a control.
// A nil pointer means the attribute is absent or could not be parsed.
type Constraints struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// MinLengthOr returns MinLength when set, otherwise fallback.
func (c Constraints) MinLengthOr(fallback int) int {
	if c.MinLength == nil {
		return fallback
	}
	return *c.MinLength
}

// MaxLengthOr returns MaxLength when set and positive, otherwise fallback.
func (c Constraints) MaxLengthOr(fallback int) int {
	if c.MaxLength == nil || *c.MaxLength <= 0 {
		return fallback
	}
	return *c.MaxLength
}

// MinOr returns Min when set, otherwise fallback.
func (c Constraints) MinOr(fallback float64) float64 {
	if c.Min == nil {
		return fallback
	}
	return *c.Min
}

// MaxOr returns Max when set, otherwise fallback.
func (c Constraints) MaxOr(fallback float64) float64 {
	if c.Max == nil {
		return fallback
	}
	return *c.Max
}

// FieldDescriptor captures everything the classifier may look at for a single
// control. NameToken is the lowercased name (or id when name is empty) and is
// the only semantic signal besides Tag and Type.
type FieldDescriptor struct {
	Tag          Tag         `json:"tag"`
	Type         string      `json:"type,omitempty"`
	NameToken    string      `json:"nameToken"`
	Constraints  Constraints `json:"constraints"`
	CurrentValue string      `json:"currentValue,omitempty"`
	GroupName    string      `json:"groupName,omitempty"`
}

// NameToken derives the classifier token from a control's name and id.
func NameToken(name, id string) string {
	token := strings.TrimSpace(name)
	if token == "" {
		token = strings.TrimSpace(id)
	}
	return strings.ToLower(token)
}

// IntPtr is a small helper for building constraints in tests and adapters.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr is a small helper for building constraints in tests and adapters.
func FloatPtr(v float64) *float64 {
	return &v
}
