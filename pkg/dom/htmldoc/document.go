// Package htmldoc hosts the dom.Control interface on a static HTML document
// parsed with golang.org/x/net/html. Writes change attributes and text nodes
// in the tree (value, checked, selected, textarea content) so the filled
// document can be rendered back out; dispatched events are recorded on the
// Document instead of running scripts.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// DispatchedEvent is an event recorded against a control.
type DispatchedEvent struct {
	Target string
	Type   string
}

// Document is a parsed page with its forms indexed in document order.
type Document struct {
	root   *html.Node
	forms  []*Form
	events []DispatchedEvent
}

var _ dom.Forms = (*Document)(nil)

// Parse reads an HTML document. A page without <form> elements is exposed
// as a single implicit form holding every control.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("htmldoc: missing reader")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	doc := &Document{root: root}
	doc.index()
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func (d *Document) index() {
	var walk func(n *html.Node, current *Form)
	walk = func(n *html.Node, current *Form) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Form:
				form := &Form{doc: d, node: n}
				d.forms = append(d.forms, form)
				current = form
			case atom.Input, atom.Textarea, atom.Select:
				if current != nil {
					current.controls = append(current.controls, &Control{doc: d, form: current, node: n})
				}
				return
			case atom.Script, atom.Style, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, current)
		}
	}
	walk(d.root, nil)

	if len(d.forms) == 0 {
		implicit := &Form{doc: d, node: d.root}
		walk = func(n *html.Node, _ *Form) {
			if n.Type == html.ElementNode {
				switch n.DataAtom {
				case atom.Input, atom.Textarea, atom.Select:
					implicit.controls = append(implicit.controls, &Control{doc: d, form: implicit, node: n})
					return
				case atom.Script, atom.Style, atom.Template:
					return
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, nil)
			}
		}
		walk(d.root, nil)
		if len(implicit.controls) > 0 {
			d.forms = append(d.forms, implicit)
		}
	}
}

// Forms returns the forms in document order.
func (d *Document) Forms() []dom.Form {
	out := make([]dom.Form, 0, len(d.forms))
	for _, form := range d.forms {
		out = append(out, form)
	}
	return out
}

// Form returns the form at index.
func (d *Document) Form(index int) (*Form, error) {
	if index < 0 || index >= len(d.forms) {
		return nil, fmt.Errorf("htmldoc: form %d out of range (document has %d)", index, len(d.forms))
	}
	return d.forms[index], nil
}

// FormCount returns the number of forms found.
func (d *Document) FormCount() int {
	return len(d.forms)
}

// Events returns the events dispatched so far.
func (d *Document) Events() []DispatchedEvent {
	return append([]DispatchedEvent(nil), d.events...)
}

// Render writes the (possibly modified) document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldoc: render: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Form is a <form> element, or the implicit form of a form-less page.
type Form struct {
	doc      *Document
	node     *html.Node
	controls []*Control
}

var _ dom.Form = (*Form)(nil)

func (f *Form) Controls() []dom.Control {
	out := make([]dom.Control, 0, len(f.controls))
	for _, ctrl := range f.controls {
		out = append(out, ctrl)
	}
	return out
}

// Attr returns an attribute of the form element (id, action, name).
func (f *Form) Attr(name string) (string, bool) {
	return attr(f.node, name)
}

func attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, name string) bool {
	_, ok := attr(n, name)
	return ok
}

func setAttr(n *html.Node, name, value string) {
	for idx, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
