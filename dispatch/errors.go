package dispatch

import "errors"

// ErrNoSelection means update or delete was attempted with no customer row selected.
var ErrNoSelection = errors.New("no customer selected")

// PreconditionError is raised before any database call is made.
type PreconditionError struct {
	Routine string
	Err     error
}

func (e *PreconditionError) Error() string { return e.Err.Error() }

func (e *PreconditionError) Unwrap() error { return e.Err }

// InputError wraps a field that could not be bound for a routine.
type InputError struct {
	Routine string
	Err     error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }
