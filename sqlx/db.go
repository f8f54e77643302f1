package sqlx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kcmvp/orderdesk/app"
	"go.uber.org/zap"
)

// Querier is the statement surface shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// tracingQuerier is a thin wrapper around Querier that logs SQL statements at debug level.
// It does not attempt to pretty-print SQL.
type tracingQuerier struct {
	inner  Querier
	logger *zap.Logger
}

func (q tracingQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := q.inner.ExecContext(ctx, query, args...)
	q.logger.Debug("sqlx exec", zap.Duration("dur", time.Since(start)), zap.Error(err),
		zap.String("sql", query), zap.Any("args", args))
	return res, err
}

func (q tracingQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := q.inner.QueryContext(ctx, query, args...)
	q.logger.Debug("sqlx query", zap.Duration("dur", time.Since(start)), zap.Error(err),
		zap.String("sql", query), zap.Any("args", args))
	return rows, err
}

// WithTracing wraps q with a SQL logger if logger is not nil.
func WithTracing(q Querier, logger *zap.Logger) Querier {
	if logger == nil {
		return q
	}
	return tracingQuerier{inner: q, logger: logger}
}

// Opener hands out database sessions.
type Opener interface {
	Open(ctx context.Context) (*Session, error)
}

// Provider opens one brand-new session per call. Sessions are never pooled or reused
// across actions: each owns its own *sql.DB capped at a single connection.
type Provider struct {
	ds      app.DataSource
	dialect Dialect
	logger  *zap.Logger
}

var _ Opener = (*Provider)(nil)

// NewProvider validates the driver and prepares its dialect. It does not touch the network;
// connection problems surface from Open.
func NewProvider(ds app.DataSource, logger *zap.Logger) (*Provider, error) {
	if ds.Driver == "" {
		return nil, fmt.Errorf("datasource driver is required")
	}
	dialect, err := NewDialect(ds)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{ds: ds, dialect: dialect, logger: logger}, nil
}

// Dialect returns the dialect sessions use to render routine calls.
func (p *Provider) Dialect() Dialect { return p.dialect }

// Open connects and pings the database. Any failure is a *ConnectionError; nothing is retried.
func (p *Provider) Open(ctx context.Context) (*Session, error) {
	dsn, err := DSN(p.ds)
	if err != nil {
		return nil, &ConnectionError{Driver: p.ds.Driver, Err: fmt.Errorf("invalid dsn: %w", err)}
	}
	raw, err := sql.Open(p.ds.Driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Driver: p.ds.Driver, Err: err}
	}
	raw.SetMaxOpenConns(1)
	raw.SetMaxIdleConns(1)
	if err := raw.PingContext(ctx); err != nil {
		_ = raw.Close()
		p.logger.Warn("database unreachable", zap.String("driver", p.ds.Driver), zap.Error(err))
		return nil, &ConnectionError{Driver: p.ds.Driver, Err: err}
	}
	p.logger.Debug("session opened", zap.String("driver", p.ds.Driver))
	return &Session{raw: raw, dialect: p.dialect, logger: p.logger}, nil
}
