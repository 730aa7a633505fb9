// Package report renders fill reports as text, HTML or JSON through pongo2
// templates.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formfill/pkg/orchestrator"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Format selects the report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatText, "":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", raw)
	}
}

// Entry is one filled form. Form is -1 when the source had a single form.
type Entry struct {
	Source string              `json:"source"`
	Form   int                 `json:"form"`
	Report orchestrator.Report `json:"report"`
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	title     string
	now       func() time.Time
}

// WithBaseDir loads templates from a directory, ahead of the built-in ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files, ahead of the built-in ones.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

func WithTitle(title string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(title) != "" {
			cfg.title = title
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// Engine renders reports. Templates are parsed once and cached.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	title     string
	now       func() time.Time
}

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{title: "Relatório de preenchimento", now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("report: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	builtin, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("report: open built-in templates: %w", err)
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))

	registerFilters()
	return &Engine{
		set:       pongo2.NewSet("formfill-report", loaders...),
		templates: make(map[string]*pongo2.Template),
		title:     cfg.title,
		now:       cfg.now,
	}, nil
}

// Render writes entries to w in format.
func (e *Engine) Render(w io.Writer, format Format, entries []Entry) error {
	if e == nil || e.set == nil {
		return errors.New("report: engine is nil")
	}
	if entries == nil {
		entries = []Entry{}
	}
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	}

	name := string(format) + ".tpl"
	if format == "" {
		name = string(FormatText) + ".tpl"
	}
	tmpl, err := e.template(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteWriter(pongo2.Context{
		"entries":   entries,
		"title":     e.title,
		"generated": e.now(),
	}, &buf)
	if err != nil {
		return fmt.Errorf("report: execute %s: %w", name, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// RenderString is Render into a string.
func (e *Engine) RenderString(format Format, entries []Entry) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, format, entries); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

var registerOnce sync.Once

func registerFilters() {
	registerOnce.Do(func() {
		if !pongo2.FilterExists("quote") {
			_ = pongo2.RegisterFilter("quote", filterQuote)
		}
	})
}

func filterQuote(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(strconv.Quote(in.String())), nil
}
