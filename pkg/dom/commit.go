package dom

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures Commit and Insert.
type Option func(*settings)

type settings struct {
	logger *zap.Logger
}

// WithLogger receives swallowed event and caret failures at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	return s
}

// Commit sets the control value and fires input then change.
func Commit(ctrl Control, value string, opts ...Option) error {
	return commit(ctrl, newSettings(opts), func() error { return ctrl.SetValue(value) }, nil)
}

// CommitSelected selects the option at index and fires input then change.
func CommitSelected(ctrl Control, index int, opts ...Option) error {
	return commit(ctrl, newSettings(opts), func() error { return ctrl.SetSelectedIndex(index) }, nil)
}

// CommitChecked toggles a checkbox or radio and fires input then change.
func CommitChecked(ctrl Control, checked bool, opts ...Option) error {
	return commit(ctrl, newSettings(opts), func() error { return ctrl.SetChecked(checked) }, nil)
}

// commit applies set, runs after (caret placement) and dispatches the event
// pair. Only a failed set is an error; dispatch failures are logged.
func commit(ctrl Control, s settings, set func() error, after func()) error {
	if ctrl == nil {
		return fmt.Errorf("dom: missing control")
	}
	if err := set(); err != nil {
		return fmt.Errorf("dom: set %s: %w", describeTarget(ctrl), err)
	}
	if after != nil {
		after()
	}
	for _, typ := range []string{EventInput, EventChange} {
		if err := ctrl.Dispatch(Event{Type: typ, Bubbles: true, Cancelable: true}); err != nil {
			s.logger.Debug("dispatch failed",
				zap.String("event", typ),
				zap.String("target", describeTarget(ctrl)),
				zap.Error(err),
			)
		}
	}
	return nil
}

func describeTarget(ctrl Control) string {
	if name := ctrl.Name(); name != "" {
		return ctrl.Tag() + "[name=" + name + "]"
	}
	if id := ctrl.ID(); id != "" {
		return ctrl.Tag() + "#" + id
	}
	return ctrl.Tag()
}
