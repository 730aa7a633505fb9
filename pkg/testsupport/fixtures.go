// Package testsupport loads HTML and OpenAPI fixtures for tests of the fill
// engine and compares repeated runs.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/dom/htmldoc"
	"github.com/goliatone/go-formfill/pkg/openapi"
)

// LoadHTML parses an HTML fixture. Testing helpers fail the test on error to
// keep integration tests concise.
func LoadHTML(t *testing.T, path string) *htmldoc.Document {
	t.Helper()

	doc, err := LoadHTMLFromPath(path)
	if err != nil {
		t.Fatalf("load html: %v", err)
	}
	return doc
}

// LoadHTMLFromPath returns a parsed document without requiring testing.T.
func LoadHTMLFromPath(path string) (*htmldoc.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: html path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open html: %w", err)
	}
	defer f.Close()

	doc, err := htmldoc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse html: %w", err)
	}
	return doc, nil
}

// LoadDocument reads an OpenAPI fixture using a file source.
func LoadDocument(t *testing.T, path string) openapi.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	doc, err := openapi.NewDocument(openapi.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

// MustReadFile returns the raw bytes of a fixture.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// Diff returns a cmp diff, empty when want and got match.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// FixedClock returns a clock frozen at a mid-June 2024 afternoon in UTC.
func FixedClock() func() time.Time {
	at := time.Date(2024, time.June, 15, 13, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}
