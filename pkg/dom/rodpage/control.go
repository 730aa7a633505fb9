package rodpage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// Control is a live input, textarea or select element. Getter failures are
// logged at debug level and read as zero values.
type Control struct {
	el     *rod.Element
	logger *zap.Logger
}

var _ dom.Control = (*Control)(nil)

func (c *Control) eval(js string, args ...interface{}) (string, error) {
	res, err := c.el.Eval(js, args...)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (c *Control) str(js string) string {
	value, err := c.eval(js)
	if err != nil {
		c.logger.Debug("element read failed", zap.String("script", js), zap.Error(err))
		return ""
	}
	return value
}

func (c *Control) flag(js string) bool {
	res, err := c.el.Eval(js)
	if err != nil {
		c.logger.Debug("element read failed", zap.String("script", js), zap.Error(err))
		return false
	}
	return res.Value.Bool()
}

func (c *Control) Tag() string  { return strings.ToLower(c.str(`() => this.tagName`)) }
func (c *Control) Type() string { return strings.ToLower(c.str(`() => this.type || ""`)) }
func (c *Control) Name() string { return c.str(`() => this.getAttribute("name") || ""`) }
func (c *Control) ID() string   { return c.str(`() => this.id || ""`) }

func (c *Control) Attr(name string) (string, bool) {
	value, err := c.el.Attribute(name)
	if err != nil || value == nil {
		return "", false
	}
	return *value, true
}

func (c *Control) Value() string { return c.str(`() => this.value == null ? "" : String(this.value)`) }

func (c *Control) SetValue(value string) error {
	if _, err := c.eval(`(v) => { this.value = v; return "" }`, value); err != nil {
		return fmt.Errorf("rodpage: set value: %w", err)
	}
	return nil
}

func (c *Control) Checked() bool { return c.flag(`() => !!this.checked`) }

func (c *Control) SetChecked(checked bool) error {
	if _, err := c.eval(`(v) => { this.checked = v; return "" }`, checked); err != nil {
		return fmt.Errorf("rodpage: set checked: %w", err)
	}
	return nil
}

type optionJSON struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

func (c *Control) Options() []dom.SelectOption {
	raw := c.str(`() => JSON.stringify(Array.from(this.options || []).map(o => ({value: o.value, label: o.label, selected: o.selected})))`)
	if raw == "" {
		return nil
	}
	var parsed []optionJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		c.logger.Debug("decode options failed", zap.Error(err))
		return nil
	}
	out := make([]dom.SelectOption, 0, len(parsed))
	for _, opt := range parsed {
		out = append(out, dom.SelectOption{Value: opt.Value, Label: opt.Label, Selected: opt.Selected})
	}
	return out
}

func (c *Control) SelectedIndex() int {
	res, err := c.el.Eval(`() => typeof this.selectedIndex === "number" ? this.selectedIndex : -1`)
	if err != nil {
		c.logger.Debug("element read failed", zap.Error(err))
		return -1
	}
	return res.Value.Int()
}

func (c *Control) SetSelectedIndex(index int) error {
	if _, err := c.eval(`(i) => { this.selectedIndex = i; return "" }`, index); err != nil {
		return fmt.Errorf("rodpage: set selected index: %w", err)
	}
	return nil
}

func (c *Control) Selection() (int, int, bool) {
	raw := c.str(`() => {
		try {
			if (typeof this.selectionStart !== "number") return "";
			return JSON.stringify([this.selectionStart, this.selectionEnd]);
		} catch (e) { return ""; }
	}`)
	if raw == "" {
		return 0, 0, false
	}
	var pair [2]int
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return 0, 0, false
	}
	return pair[0], pair[1], true
}

func (c *Control) SetSelection(start, end int) error {
	if _, err := c.eval(`(s, e) => { this.setSelectionRange(s, e); return "" }`, start, end); err != nil {
		return fmt.Errorf("rodpage: set selection: %w", err)
	}
	return nil
}

func (c *Control) ReadOnly() bool { return c.flag(`() => !!this.readOnly`) }
func (c *Control) Disabled() bool { return c.flag(`() => !!this.disabled || !!this.matches(":disabled")`) }

func (c *Control) Dispatch(event dom.Event) error {
	_, err := c.eval(`(t, b, x) => { this.dispatchEvent(new Event(t, {bubbles: b, cancelable: x})); return "" }`,
		event.Type, event.Bubbles, event.Cancelable)
	if err != nil {
		return fmt.Errorf("rodpage: dispatch %s: %w", event.Type, err)
	}
	return nil
}
