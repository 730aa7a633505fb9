package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Survey drives prompts on a terminal through survey/v2.
type Survey struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

var _ Prompter = (*Survey)(nil)

// SurveyOption customises a Survey prompter.
type SurveyOption func(*Survey)

// WithStdio replaces the process standard streams.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) SurveyOption {
	return func(s *Survey) {
		if in != nil {
			s.in = in
		}
		if out != nil {
			s.out = out
		}
		if errOut != nil {
			s.err = errOut
		}
	}
}

// NewSurvey returns a prompter bound to os.Stdin and os.Stdout unless
// overridden.
func NewSurvey(options ...SurveyOption) *Survey {
	s := &Survey{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Survey) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	question := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	opts := []survey.AskOpt{survey.WithStdio(s.in, s.out, s.err)}
	if cfg.Validator != nil {
		validate := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			text, _ := ans.(string)
			return validate(text)
		}))
	}
	if err := survey.AskOne(question, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (s *Survey) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(cfg.Options) == 0 {
		return -1, errors.New("prompt: select requires options")
	}
	var out string
	question := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		question.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		question.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(question, &out, survey.WithStdio(s.in, s.out, s.err)); err != nil {
		return -1, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

// Notice prints msg on its own line.
func (s *Survey) Notice(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return fmt.Errorf("prompt: %w", err)
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
