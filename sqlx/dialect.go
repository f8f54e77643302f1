package sqlx

import (
	"fmt"
	"strings"

	"github.com/kcmvp/orderdesk/app"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Kind tells a dialect how a routine is invoked and what it yields.
type Kind int

const (
	// Rows is a procedure that returns a result set.
	Rows Kind = iota
	// Write is a procedure that changes data and returns nothing of interest.
	Write
	// Scalar is a function returning a single value.
	Scalar
)

// Routine names a stored procedure or function on the database boundary.
// Arity is the number of positional arguments it takes.
type Routine struct {
	Name  string
	Kind  Kind
	Arity int
}

func (r Routine) String() string { return r.Name }

// Dialect renders a routine call to SQL text. Arguments are always bound, never interpolated.
type Dialect interface {
	Name() string
	Statement(r Routine) (string, error)
}

// NewDialect returns the dialect for ds.Driver with its configured routine overrides applied.
func NewDialect(ds app.DataSource) (Dialect, error) {
	var base Dialect
	switch ds.Driver {
	case "mysql":
		base = mysqlDialect{}
	case "postgres":
		base = postgresDialect{}
	case "sqlite3":
		base = sqliteDialect{}
	default:
		return nil, fmt.Errorf("unsupported driver %q", ds.Driver)
	}
	if len(ds.Routines) == 0 {
		return base, nil
	}
	return overrideDialect{Dialect: base, ds: ds}, nil
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Statement(r Routine) (string, error) {
	args := placeholders(r.Arity, func(int) string { return "?" })
	if r.Kind == Scalar {
		return fmt.Sprintf("SELECT %s(%s)", r.Name, args), nil
	}
	return fmt.Sprintf("CALL %s(%s)", r.Name, args), nil
}

// postgresDialect maps result-set routines to set-returning functions, since postgres
// procedures cannot return rows.
type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Statement(r Routine) (string, error) {
	name := pq.QuoteIdentifier(strings.ToLower(r.Name))
	args := placeholders(r.Arity, func(i int) string { return fmt.Sprintf("$%d", i+1) })
	switch r.Kind {
	case Rows:
		return fmt.Sprintf("SELECT * FROM %s(%s)", name, args), nil
	case Scalar:
		return fmt.Sprintf("SELECT %s(%s)", name, args), nil
	default:
		return fmt.Sprintf("CALL %s(%s)", name, args), nil
	}
}

// sqliteDialect has no stored routines at all; every routine must be configured.
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite3" }

func (sqliteDialect) Statement(r Routine) (string, error) {
	return "", fmt.Errorf("routine %s has no statement configured for sqlite3", r.Name)
}

type overrideDialect struct {
	Dialect
	ds app.DataSource
}

func (d overrideDialect) Statement(r Routine) (string, error) {
	if stmt, ok := d.ds.Routine(r.Name); ok {
		return strings.TrimSpace(stmt), nil
	}
	return d.Dialect.Statement(r)
}

func placeholders(n int, mark func(int) string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = mark(i)
	}
	return strings.Join(parts, ", ")
}
