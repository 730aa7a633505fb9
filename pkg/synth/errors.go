package synth

import "errors"

// ErrUnknownKind is returned by Generate when no generator is registered for
// the requested kind.
var ErrUnknownKind = errors.New("synth: unknown kind")
