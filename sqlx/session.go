package sqlx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrSessionClosed is returned by any call made after Close.
var ErrSessionClosed = errors.New("session is closed")

// Session is one synchronous conversation with the database. Writes run inside a
// transaction that begins on the first Exec and ends with Commit or Close.
type Session struct {
	raw     *sql.DB
	tx      *sql.Tx
	dialect Dialect
	logger  *zap.Logger
	closed  bool
}

func (s *Session) querier() Querier {
	if s.tx != nil {
		return WithTracing(s.tx, s.logger)
	}
	return WithTracing(s.raw, s.logger)
}

func (s *Session) statement(r Routine, kind Kind, args []any) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	if r.Kind != kind {
		return "", fmt.Errorf("routine %s cannot be invoked this way", r.Name)
	}
	if len(args) != r.Arity {
		return "", fmt.Errorf("routine %s takes %d arguments, got %d", r.Name, r.Arity, len(args))
	}
	return s.dialect.Statement(r)
}

// Query runs a result-set routine and reads it fully.
func (s *Session) Query(ctx context.Context, r Routine, args ...any) (ResultSet, error) {
	stmt, err := s.statement(r, Rows, args)
	if err != nil {
		return ResultSet{}, err
	}
	rows, err := s.querier().QueryContext(ctx, stmt, args...)
	if err != nil {
		return ResultSet{}, &ProcedureError{Routine: r.Name, Err: err}
	}
	defer func() { _ = rows.Close() }()
	rs, err := readAll(rows)
	if err != nil {
		return ResultSet{}, &ProcedureError{Routine: r.Name, Err: err}
	}
	return rs, nil
}

// Exec runs a write routine inside the session transaction.
func (s *Session) Exec(ctx context.Context, r Routine, args ...any) error {
	stmt, err := s.statement(r, Write, args)
	if err != nil {
		return err
	}
	if s.tx == nil {
		tx, err := s.raw.BeginTx(ctx, nil)
		if err != nil {
			return &ProcedureError{Routine: r.Name, Err: err}
		}
		s.tx = tx
	}
	if _, err := s.querier().ExecContext(ctx, stmt, args...); err != nil {
		return &ProcedureError{Routine: r.Name, Err: err}
	}
	return nil
}

// Scalar runs a function and returns its single value as text. A NULL result is reported
// as an invalid NullString.
func (s *Session) Scalar(ctx context.Context, r Routine, args ...any) (sql.NullString, error) {
	var out sql.NullString
	stmt, err := s.statement(r, Scalar, args)
	if err != nil {
		return out, err
	}
	rows, err := s.querier().QueryContext(ctx, stmt, args...)
	if err != nil {
		return out, &ProcedureError{Routine: r.Name, Err: err}
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return out, &ProcedureError{Routine: r.Name, Err: err}
		}
		return out, procErr(r, "%s returned no value", r.Name)
	}
	var v any
	if err := rows.Scan(&v); err != nil {
		return out, &ProcedureError{Routine: r.Name, Err: err}
	}
	if v != nil {
		out = sql.NullString{String: Cell(v), Valid: true}
	}
	return out, wrapProc(r, rows.Err())
}

// Commit makes the session's writes durable. It is a no-op when nothing was written.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	return tx.Commit()
}

// Close rolls back uncommitted writes and releases the connection. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var rbErr error
	if s.tx != nil {
		rbErr = s.tx.Rollback()
		s.tx = nil
	}
	err := s.raw.Close()
	s.logger.Debug("session closed", zap.Error(err))
	return errors.Join(rbErr, err)
}
