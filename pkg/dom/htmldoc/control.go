package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// Control is an input, textarea or select element of a parsed document.
type Control struct {
	doc  *Document
	form *Form
	node *html.Node
}

var _ dom.Control = (*Control)(nil)

func (c *Control) Tag() string { return c.node.Data }

func (c *Control) Type() string {
	switch c.node.DataAtom {
	case atom.Textarea:
		return "textarea"
	case atom.Select:
		if hasAttr(c.node, "multiple") {
			return "select-multiple"
		}
		return "select-one"
	}
	typ, _ := attr(c.node, "type")
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return "text"
	}
	return typ
}

func (c *Control) Name() string {
	name, _ := attr(c.node, "name")
	return name
}

func (c *Control) ID() string {
	id, _ := attr(c.node, "id")
	return id
}

func (c *Control) Attr(name string) (string, bool) {
	return attr(c.node, name)
}

func (c *Control) Value() string {
	switch c.node.DataAtom {
	case atom.Textarea:
		return textContent(c.node)
	case atom.Select:
		options := c.Options()
		if idx := c.SelectedIndex(); idx >= 0 && idx < len(options) {
			return options[idx].Value
		}
		return ""
	}
	value, _ := attr(c.node, "value")
	return value
}

func (c *Control) SetValue(value string) error {
	switch c.node.DataAtom {
	case atom.Textarea:
		for child := c.node.FirstChild; child != nil; {
			next := child.NextSibling
			c.node.RemoveChild(child)
			child = next
		}
		c.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return nil
	case atom.Select:
		for idx, opt := range c.Options() {
			if opt.Value == value {
				return c.SetSelectedIndex(idx)
			}
		}
		return fmt.Errorf("htmldoc: no option with value %q", value)
	}
	setAttr(c.node, "value", value)
	return nil
}

func (c *Control) Checked() bool {
	return hasAttr(c.node, "checked")
}

func (c *Control) SetChecked(checked bool) error {
	typ := c.Type()
	if typ != "checkbox" && typ != "radio" {
		return fmt.Errorf("htmldoc: %s input is not checkable", typ)
	}
	if !checked {
		removeAttr(c.node, "checked")
		return nil
	}
	if typ == "radio" && c.form != nil {
		for _, other := range c.form.controls {
			if other != c && other.Type() == "radio" && other.Name() == c.Name() {
				removeAttr(other.node, "checked")
			}
		}
	}
	setAttr(c.node, "checked", "")
	return nil
}

func (c *Control) optionNodes() []*html.Node {
	if c.node.DataAtom != atom.Select {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			switch child.DataAtom {
			case atom.Option:
				out = append(out, child)
			case atom.Optgroup:
				walk(child)
			}
		}
	}
	walk(c.node)
	return out
}

// Options lists the select options. An option without a value attribute
// takes its trimmed text as value, as browsers do.
func (c *Control) Options() []dom.SelectOption {
	nodes := c.optionNodes()
	selected := c.SelectedIndex()
	out := make([]dom.SelectOption, 0, len(nodes))
	for idx, n := range nodes {
		label := strings.Join(strings.Fields(textContent(n)), " ")
		value, ok := attr(n, "value")
		if !ok {
			value = label
		}
		out = append(out, dom.SelectOption{Value: value, Label: label, Selected: idx == selected})
	}
	return out
}

// SelectedIndex is the first option carrying the selected attribute, else 0
// for single selects with options, else -1.
func (c *Control) SelectedIndex() int {
	nodes := c.optionNodes()
	for idx, n := range nodes {
		if hasAttr(n, "selected") {
			return idx
		}
	}
	if len(nodes) > 0 && !hasAttr(c.node, "multiple") {
		return 0
	}
	return -1
}

func (c *Control) SetSelectedIndex(index int) error {
	nodes := c.optionNodes()
	if index < -1 || index >= len(nodes) {
		return fmt.Errorf("htmldoc: option %d out of range", index)
	}
	for idx, n := range nodes {
		if idx == index {
			setAttr(n, "selected", "")
		} else {
			removeAttr(n, "selected")
		}
	}
	return nil
}

// Selection is unavailable in a static document.
func (c *Control) Selection() (int, int, bool) {
	return 0, 0, false
}

// SetSelection is a no-op: a static document has no caret.
func (c *Control) SetSelection(int, int) error {
	return nil
}

func (c *Control) ReadOnly() bool {
	return hasAttr(c.node, "readonly")
}

// Disabled covers the disabled attribute and disabled ancestor fieldsets.
func (c *Control) Disabled() bool {
	if hasAttr(c.node, "disabled") {
		return true
	}
	for n := c.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == atom.Fieldset && hasAttr(n, "disabled") {
			return true
		}
	}
	return false
}

func (c *Control) Dispatch(event dom.Event) error {
	target := c.Name()
	if target == "" {
		target = c.ID()
	}
	c.doc.events = append(c.doc.events, DispatchedEvent{Target: target, Type: event.Type})
	return nil
}
