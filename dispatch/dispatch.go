// Package dispatch turns one clerk action into exactly one routine call, the matching UI
// feedback and one activity log line.
//
// Every action follows the same linear sequence: open a fresh session, call the routine,
// commit or not, render, close, notify, record. Failures of any kind stop at the action
// boundary: they are shown with their raw message, recorded with an ERROR: prefix and
// returned to the caller. Nothing is retried.
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kcmvp/orderdesk/audit"
	"github.com/kcmvp/orderdesk/sqlx"
	"go.uber.org/zap"
)

// The routines on the database boundary, with their positional arity.
var (
	ProcReadAllCustomers     = sqlx.Routine{Name: "ReadAllCustomers", Kind: sqlx.Rows}
	ProcCreateCustomer       = sqlx.Routine{Name: "CreateCustomer", Kind: sqlx.Write, Arity: 5}
	ProcUpdateCustomer       = sqlx.Routine{Name: "UpdateCustomer", Kind: sqlx.Write, Arity: 5}
	ProcDeleteCustomer       = sqlx.Routine{Name: "DeleteCustomer", Kind: sqlx.Write, Arity: 1}
	ProcPlaceOrder           = sqlx.Routine{Name: "PlaceOrder", Kind: sqlx.Write, Arity: 5}
	ProcCancelOrder          = sqlx.Routine{Name: "CancelOrder", Kind: sqlx.Write, Arity: 1}
	ProcGetOrdersJoinDetails = sqlx.Routine{Name: "GetOrdersJoinDetails", Kind: sqlx.Rows}
	FuncCustomerTotalSpent   = sqlx.Routine{Name: "GetCustomerTotalSpent", Kind: sqlx.Scalar, Arity: 1}
)

// Table headers of the two grids.
var (
	CustomerColumns = []string{"ID", "Fname", "Lname", "DoB", "Age", "City", "Pincode"}
	ReportColumns   = []string{"OID", "CustomerID", "CustomerName", "Item", "Qty", "Status",
		"SellerID", "SellerName", "DeliveryID", "DeliveryPartner"}
)

// Notifier shows blocking dialogs to the clerk.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Error(title, message string)
}

// Grid is a results table that is rebuilt from scratch on every refresh.
type Grid interface {
	Clear()
	Append(row sqlx.Row)
}

// Dispatcher is the application-side handler set. It holds no per-action state; the
// view models are passed in on every call.
type Dispatcher struct {
	opener   sqlx.Opener
	log      *audit.Log
	ui       Notifier
	logger   *zap.Logger
	currency string
}

type Option func(*Dispatcher)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithCurrency sets the symbol prefixed to amounts.
func WithCurrency(symbol string) Option {
	return func(d *Dispatcher) { d.currency = symbol }
}

func New(opener sqlx.Opener, log *audit.Log, ui Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		opener:   opener,
		log:      log,
		ui:       ui,
		logger:   zap.NewNop(),
		currency: "₹",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// With returns a copy of d that reports to ui, for surfaces where every request has its
// own dialog sink.
func (d *Dispatcher) With(ui Notifier) *Dispatcher {
	cp := *d
	cp.ui = ui
	return &cp
}

// Reject reports an input that could not be bound for routine r, as the action's failure.
// No session is opened.
func (d *Dispatcher) Reject(r sqlx.Routine, err error) error {
	_, done := d.trace(r)
	err = d.fail(r, &InputError{Routine: r.Name, Err: err})
	done(err)
	return err
}

// trace returns a logger correlated to one action and a func logging its outcome.
func (d *Dispatcher) trace(r sqlx.Routine) (*zap.Logger, func(error)) {
	logger := d.logger.With(zap.String("action_id", uuid.NewString()), zap.Stringer("routine", r))
	start := time.Now()
	return logger, func(err error) {
		if err != nil {
			logger.Warn("action failed", zap.Duration("dur", time.Since(start)), zap.Error(err))
			return
		}
		logger.Info("action completed", zap.Duration("dur", time.Since(start)))
	}
}

// open is the connection provider at the action boundary: a connection failure is shown
// and recorded here, then propagated.
func (d *Dispatcher) open(ctx context.Context) (*sqlx.Session, error) {
	session, err := d.opener.Open(ctx)
	if err != nil {
		var ce *sqlx.ConnectionError
		if !errors.As(err, &ce) {
			err = &sqlx.ConnectionError{Err: err}
		}
		d.ui.Error("Connection Error", "Database connection failed:\n"+err.Error())
		d.log.Errorf("Database connection failed — %v", err)
		return nil, err
	}
	return session, nil
}

// withSession runs fn on a fresh session and always releases it.
func (d *Dispatcher) withSession(ctx context.Context, logger *zap.Logger, fn func(*sqlx.Session) error) error {
	session, err := d.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("session close failed", zap.Error(cerr))
		}
	}()
	return fn(session)
}

// fail shows and records err for r. Connection errors were already reported by open.
func (d *Dispatcher) fail(r sqlx.Routine, err error) error {
	var ce *sqlx.ConnectionError
	if errors.As(err, &ce) {
		return err
	}
	d.ui.Error("Error", err.Error())
	d.log.Errorf("%s failed — %v", r.Name, err)
	return err
}

// fill rebuilds grid from a result-set routine.
func fill(ctx context.Context, s *sqlx.Session, r sqlx.Routine, grid Grid) error {
	rs, err := s.Query(ctx, r)
	if err != nil {
		return err
	}
	grid.Clear()
	for _, row := range rs.Rows {
		grid.Append(row)
	}
	return nil
}

// write runs a write routine and commits it.
func write(ctx context.Context, s *sqlx.Session, r sqlx.Routine, args ...any) error {
	if err := s.Exec(ctx, r, args...); err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return &sqlx.ProcedureError{Routine: r.Name, Err: err}
	}
	return nil
}
