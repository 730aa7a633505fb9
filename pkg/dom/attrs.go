package dom

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

// DescribeAttrs builds a descriptor from a bare tag, type, name and
// attribute set, for callers that classify a control they do not host.
func DescribeAttrs(tag, typ, name string, attrs map[string]string) model.FieldDescriptor {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "input"
	}
	return Describe(attrControl{tag: tag, typ: typ, name: name, attrs: attrs})
}

type attrControl struct {
	tag, typ, name string
	attrs          map[string]string
}

func (c attrControl) Tag() string  { return c.tag }
func (c attrControl) Type() string { return c.typ }
func (c attrControl) Name() string { return c.name }
func (c attrControl) ID() string   { return c.attrs["id"] }

func (c attrControl) Attr(name string) (string, bool) {
	v, ok := c.attrs[name]
	return v, ok
}

func (c attrControl) Value() string             { return c.attrs["value"] }
func (attrControl) SetValue(string) error       { return ErrNotEditable }
func (attrControl) Checked() bool               { return false }
func (attrControl) SetChecked(bool) error       { return ErrNotEditable }
func (attrControl) Options() []SelectOption     { return nil }
func (attrControl) SelectedIndex() int          { return -1 }
func (attrControl) SetSelectedIndex(int) error  { return ErrNotEditable }
func (attrControl) Selection() (int, int, bool) { return 0, 0, false }
func (attrControl) SetSelection(int, int) error { return ErrNotEditable }
func (attrControl) ReadOnly() bool              { return false }
func (attrControl) Disabled() bool              { return false }
func (attrControl) Dispatch(Event) error        { return nil }
