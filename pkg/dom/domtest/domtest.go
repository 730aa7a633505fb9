// Package domtest provides in-memory dom.Control and dom.Form fakes that
// record every write and event, for tests of code built on pkg/dom.
package domtest

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// Control is a scriptable fake control. Fields are exported so tests can set
// up odd states directly.
type Control struct {
	TagName  string
	TypeAttr string
	NameAttr string
	IDAttr   string
	Attrs    map[string]string

	Val        string
	IsChecked  bool
	Opts       []dom.SelectOption
	Selected   int
	SelStart   int
	SelEnd     int
	HasCaret   bool
	IsReadOnly bool
	IsDisabled bool

	// DispatchErr and SelectionErr make the corresponding calls fail.
	DispatchErr  error
	SelectionErr error
	// PanicOnSet makes SetValue panic, simulating a broken host.
	PanicOnSet bool

	Events []dom.Event
	Log    []string

	form *Form
}

var _ dom.Control = (*Control)(nil)

// Input returns an <input> of the given type.
func Input(typ, name string) *Control {
	return &Control{TagName: "input", TypeAttr: typ, NameAttr: name, Selected: -1}
}

func Textarea(name string) *Control {
	return &Control{TagName: "textarea", TypeAttr: "textarea", NameAttr: name, Selected: -1}
}

func Checkbox(name string) *Control {
	return Input("checkbox", name)
}

// Radio returns a radio input carrying value.
func Radio(name, value string) *Control {
	c := Input("radio", name)
	c.Val = value
	return c
}

// Select returns a <select>. The first option flagged Selected is selected,
// otherwise the first option, mirroring browsers.
func Select(name string, options ...dom.SelectOption) *Control {
	c := &Control{TagName: "select", TypeAttr: "select-one", NameAttr: name, Opts: options, Selected: -1}
	for idx, opt := range options {
		if opt.Selected {
			c.Selected = idx
			break
		}
	}
	if c.Selected < 0 && len(options) > 0 {
		c.Selected = 0
	}
	return c
}

// Opt builds a select option.
func Opt(value, label string) dom.SelectOption {
	return dom.SelectOption{Value: value, Label: label}
}

// WithAttr sets an attribute and returns c for chaining.
func (c *Control) WithAttr(name, value string) *Control {
	if c.Attrs == nil {
		c.Attrs = make(map[string]string)
	}
	c.Attrs[strings.ToLower(name)] = value
	return c
}

func (c *Control) WithValue(value string) *Control {
	c.Val = value
	return c
}

func (c *Control) WithID(id string) *Control {
	c.IDAttr = id
	return c
}

func (c *Control) Tag() string  { return c.TagName }
func (c *Control) Type() string { return c.TypeAttr }
func (c *Control) Name() string { return c.NameAttr }
func (c *Control) ID() string   { return c.IDAttr }

func (c *Control) Attr(name string) (string, bool) {
	value, ok := c.Attrs[strings.ToLower(name)]
	return value, ok
}

func (c *Control) Value() string {
	if c.TagName == "select" {
		if c.Selected >= 0 && c.Selected < len(c.Opts) {
			return c.Opts[c.Selected].Value
		}
		return ""
	}
	return c.Val
}

func (c *Control) SetValue(value string) error {
	if c.PanicOnSet {
		panic("domtest: SetValue exploded")
	}
	c.Val = value
	c.HasCaret = false
	c.Log = append(c.Log, "value="+value)
	return nil
}

func (c *Control) Checked() bool { return c.IsChecked }

func (c *Control) SetChecked(checked bool) error {
	if c.TypeAttr != "checkbox" && c.TypeAttr != "radio" {
		return fmt.Errorf("domtest: %s is not checkable", c.TypeAttr)
	}
	if checked && c.TypeAttr == "radio" && c.form != nil {
		for _, other := range c.form.Items {
			if other != c && other.TypeAttr == "radio" && other.NameAttr == c.NameAttr {
				other.IsChecked = false
			}
		}
	}
	c.IsChecked = checked
	c.Log = append(c.Log, fmt.Sprintf("checked=%t", checked))
	return nil
}

func (c *Control) Options() []dom.SelectOption {
	out := make([]dom.SelectOption, len(c.Opts))
	copy(out, c.Opts)
	for idx := range out {
		out[idx].Selected = idx == c.Selected
	}
	return out
}

func (c *Control) SelectedIndex() int { return c.Selected }

func (c *Control) SetSelectedIndex(index int) error {
	if index < -1 || index >= len(c.Opts) {
		return fmt.Errorf("domtest: option %d out of range", index)
	}
	c.Selected = index
	c.Log = append(c.Log, fmt.Sprintf("selected=%d", index))
	return nil
}

func (c *Control) Selection() (int, int, bool) {
	if !c.HasCaret {
		return 0, 0, false
	}
	return c.SelStart, c.SelEnd, true
}

// Select sets a selection range, like a user dragging over text.
func (c *Control) Select(start, end int) *Control {
	c.SelStart, c.SelEnd, c.HasCaret = start, end, true
	return c
}

func (c *Control) SetSelection(start, end int) error {
	if c.SelectionErr != nil {
		return c.SelectionErr
	}
	c.SelStart, c.SelEnd, c.HasCaret = start, end, true
	c.Log = append(c.Log, fmt.Sprintf("caret=%d,%d", start, end))
	return nil
}

func (c *Control) ReadOnly() bool { return c.IsReadOnly }
func (c *Control) Disabled() bool { return c.IsDisabled }

func (c *Control) Dispatch(event dom.Event) error {
	if c.DispatchErr != nil {
		return c.DispatchErr
	}
	c.Events = append(c.Events, event)
	c.Log = append(c.Log, "event="+event.Type)
	return nil
}

// EventCount returns how many events of typ were dispatched.
func (c *Control) EventCount(typ string) int {
	n := 0
	for _, event := range c.Events {
		if event.Type == typ {
			n++
		}
	}
	return n
}

// Touched reports whether anything was written to or dispatched on c.
func (c *Control) Touched() bool {
	return len(c.Log) > 0
}

// Form is an ordered list of fake controls.
type Form struct {
	Items []*Control
}

var _ dom.Form = (*Form)(nil)

// NewForm links controls into a form so radio groups behave.
func NewForm(items ...*Control) *Form {
	f := &Form{}
	for _, item := range items {
		f.Add(item)
	}
	return f
}

func (f *Form) Add(item *Control) {
	if item == nil {
		return
	}
	item.form = f
	f.Items = append(f.Items, item)
}

func (f *Form) Controls() []dom.Control {
	out := make([]dom.Control, 0, len(f.Items))
	for _, item := range f.Items {
		out = append(out, item)
	}
	return out
}

// Find returns the first control named name.
func (f *Form) Find(name string) *Control {
	for _, item := range f.Items {
		if item.NameAttr == name {
			return item
		}
	}
	return nil
}
