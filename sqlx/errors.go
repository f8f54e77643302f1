package sqlx

import (
	"errors"
	"fmt"
)

// ConnectionError reports that the database was unreachable or rejected the credentials.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProcedureError is any failure surfaced by a routine call. The message is the raw
// driver text; no classification is attempted.
type ProcedureError struct {
	Routine string
	Err     error
}

func (e *ProcedureError) Error() string {
	return e.Err.Error()
}

func (e *ProcedureError) Unwrap() error { return e.Err }

func procErr(r Routine, format string, args ...any) error {
	return &ProcedureError{Routine: r.Name, Err: fmt.Errorf(format, args...)}
}

// wrapProc attributes a non-nil err to routine r.
func wrapProc(r Routine, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProcedureError
	if errors.As(err, &pe) {
		return err
	}
	return &ProcedureError{Routine: r.Name, Err: err}
}
