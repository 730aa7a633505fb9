package prompt

import (
	"context"
	"sync"
)

// Scripted replays canned answers. It backs tests and non-interactive runs
// where answers come from flags.
type Scripted struct {
	mu      sync.Mutex
	answers []string
	choices []int
	notices []string
	asked   []string
}

var _ Prompter = (*Scripted)(nil)

// NewScripted queues answers for Input calls in order. Once they run out,
// Input reports ErrAborted.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: append([]string(nil), answers...)}
}

// WithChoices queues answers for Select calls.
func (s *Scripted) WithChoices(choices ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choices = append(s.choices, choices...)
	return s
}

func (s *Scripted) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, cfg.Message)
	if len(s.answers) == 0 {
		return "", ErrAborted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (s *Scripted) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, cfg.Message)
	if len(s.choices) == 0 {
		return -1, ErrAborted
	}
	choice := s.choices[0]
	s.choices = s.choices[1:]
	return choice, nil
}

func (s *Scripted) Notice(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, msg)
	return nil
}

// Asked returns the messages of every prompt shown so far.
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Notices returns every notice shown so far.
func (s *Scripted) Notices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}
