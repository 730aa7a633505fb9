package dom

import "errors"

// ErrNotEditable is returned by Insert when the target cannot take text.
var ErrNotEditable = errors.New("dom: control is not editable")

const (
	EventInput  = "input"
	EventChange = "change"
)

// Event is a synthetic DOM event.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
}

// SelectOption is one entry of a select control.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// Control is a single form control. Tag is the lowercase element name
// (input, textarea, select); Type is the lowercase type attribute.
type Control interface {
	Tag() string
	Type() string
	Name() string
	ID() string
	Attr(name string) (string, bool)

	Value() string
	SetValue(value string) error

	Checked() bool
	SetChecked(checked bool) error

	Options() []SelectOption
	SelectedIndex() int
	SetSelectedIndex(index int) error

	// Selection reports the current selection in runes; ok is false when the
	// host exposes no selection.
	Selection() (start, end int, ok bool)
	SetSelection(start, end int) error

	ReadOnly() bool
	Disabled() bool

	Dispatch(event Event) error
}

// Form exposes its controls in document order.
type Form interface {
	Controls() []Control
}

// Forms is implemented by documents holding several forms.
type Forms interface {
	Forms() []Form
}
