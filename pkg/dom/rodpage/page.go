package rodpage

import (
	"fmt"

	"github.com/go-rod/rod"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/dom"
)

const controlSelector = "input, textarea, select"

// Page exposes the forms of a rod page.
type Page struct {
	page   *rod.Page
	logger *zap.Logger
}

var _ dom.Forms = (*Page)(nil)

// Wrap adapts an existing rod page.
func Wrap(page *rod.Page, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Page{page: page, logger: logger}
}

// Forms lists the <form> elements, or one implicit form covering the page
// when it has none.
func (p *Page) Forms() []dom.Form {
	forms, err := p.page.Elements("form")
	if err != nil {
		p.logger.Debug("list forms failed", zap.Error(err))
		return nil
	}
	if len(forms) == 0 {
		return []dom.Form{&Form{page: p}}
	}
	out := make([]dom.Form, 0, len(forms))
	for _, el := range forms {
		out = append(out, &Form{page: p, el: el})
	}
	return out
}

// Form returns the form at index.
func (p *Page) Form(index int) (*Form, error) {
	forms := p.Forms()
	if index < 0 || index >= len(forms) {
		return nil, fmt.Errorf("rodpage: form %d out of range (page has %d)", index, len(forms))
	}
	return forms[index].(*Form), nil
}

// HTML returns the current outer HTML of the document.
func (p *Page) HTML() (string, error) {
	res, err := p.page.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("rodpage: outer html: %w", err)
	}
	return res.Value.Str(), nil
}

// Form is a <form> element or, when el is nil, the whole page.
type Form struct {
	page *Page
	el   *rod.Element
}

var _ dom.Form = (*Form)(nil)

func (f *Form) Controls() []dom.Control {
	var (
		els rod.Elements
		err error
	)
	if f.el != nil {
		els, err = f.el.Elements(controlSelector)
	} else {
		els, err = f.page.page.Elements(controlSelector)
	}
	if err != nil {
		f.page.logger.Debug("list controls failed", zap.Error(err))
		return nil
	}
	out := make([]dom.Control, 0, len(els))
	for _, el := range els {
		out = append(out, &Control{el: el, logger: f.page.logger})
	}
	return out
}
