// Package prompt asks the user for the few answers an action cannot
// synthesize on its own, such as the postal code behind "insert city by CEP".
package prompt

import (
	"context"
	"errors"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a single line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// Prompter abstracts the terminal so actions can be tested without one.
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Notice(ctx context.Context, msg string) error
}

// Aborted reports whether err means the user gave no answer.
func Aborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
