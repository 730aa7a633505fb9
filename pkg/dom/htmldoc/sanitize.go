package htmldoc

import (
	"bytes"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// Sanitize strips scripts, handlers and unknown markup while keeping forms,
// their controls and common layout elements.
func Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(formSanitizer().Sanitize(trimmed))
}

// RenderSanitized renders the document through Sanitize.
func (d *Document) RenderSanitized() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return Sanitize(buf.String()), nil
}

func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()

		policy.AllowElements("form", "fieldset", "legend", "label", "input", "textarea", "select", "option", "optgroup", "button")
		policy.AllowAttrs("id", "class", "name").Globally()
		policy.AllowAttrs("action", "method", "novalidate", "autocomplete").OnElements("form")
		policy.AllowAttrs("disabled").OnElements("fieldset", "input", "textarea", "select", "option", "optgroup", "button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs(
			"type", "value", "checked", "placeholder", "readonly", "required",
			"min", "max", "minlength", "maxlength", "step", "pattern", "size",
		).OnElements("input")
		policy.AllowAttrs("rows", "cols", "placeholder", "readonly", "required", "minlength", "maxlength").OnElements("textarea")
		policy.AllowAttrs("multiple", "required", "size").OnElements("select")
		policy.AllowAttrs("value", "selected", "label").OnElements("option")
		policy.AllowAttrs("label").OnElements("optgroup")
		policy.AllowAttrs("type").OnElements("button")

		formPolicy = policy
	})
	return formPolicy
}
