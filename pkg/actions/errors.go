package actions

import "errors"

var (
	// ErrUnknownAction is returned for identifiers outside the action table.
	ErrUnknownAction = errors.New("actions: unknown action")
	// ErrLookupMiss is returned when a prompted city lookup finds nothing.
	ErrLookupMiss = errors.New("actions: city not found")
	// ErrNoTarget is returned when an action needs a control or form that the
	// target does not carry.
	ErrNoTarget = errors.New("actions: target is required")
)
