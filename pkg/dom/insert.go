package dom

import (
	"go.uber.org/zap"
)

// Insert replaces the current selection of an editable control with text,
// moves the caret after it and commits. Without selection info the text is
// appended.
func Insert(ctrl Control, text string, opts ...Option) error {
	if !Editable(ctrl) {
		return ErrNotEditable
	}
	s := newSettings(opts)

	current := []rune(ctrl.Value())
	start, end, ok := ctrl.Selection()
	if !ok {
		start, end = len(current), len(current)
	}
	start = clamp(start, 0, len(current))
	end = clamp(end, start, len(current))

	inserted := []rune(text)
	next := make([]rune, 0, len(current)-(end-start)+len(inserted))
	next = append(next, current[:start]...)
	next = append(next, inserted...)
	next = append(next, current[end:]...)
	caret := start + len(inserted)

	return commit(ctrl, s,
		func() error { return ctrl.SetValue(string(next)) },
		func() {
			if err := ctrl.SetSelection(caret, caret); err != nil {
				s.logger.Debug("caret placement failed",
					zap.String("target", describeTarget(ctrl)),
					zap.Int("caret", caret),
					zap.Error(err),
				)
			}
		},
	)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
