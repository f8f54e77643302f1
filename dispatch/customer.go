package dispatch

import (
	"context"
	"fmt"

	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
	"go.uber.org/zap"
)

// ListCustomers clears grid and refills it with every customer, verbatim.
func (d *Dispatcher) ListCustomers(ctx context.Context, grid Grid) (err error) {
	logger, done := d.trace(ProcReadAllCustomers)
	defer func() { done(err) }()

	grid.Clear()
	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		return fill(ctx, s, ProcReadAllCustomers, grid)
	})
	if err != nil {
		return d.fail(ProcReadAllCustomers, err)
	}
	d.log.Record("ReadAllCustomers() executed")
	return nil
}

// CreateCustomer creates a customer and refreshes grid on the same session. Once the
// create is committed the action has succeeded, even if the refresh fails.
func (d *Dispatcher) CreateCustomer(ctx context.Context, c form.Customer, grid Grid) (err error) {
	logger, done := d.trace(ProcCreateCustomer)
	defer func() { done(err) }()

	var refreshErr error
	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		if err := write(ctx, s, ProcCreateCustomer, c.FirstName, c.LastName, c.DOB(), c.City, c.PostalCode); err != nil {
			return err
		}
		refreshErr = fill(ctx, s, ProcReadAllCustomers, grid)
		return nil
	})
	if err != nil {
		return d.fail(ProcCreateCustomer, err)
	}
	d.ui.Info("Success", "Customer added successfully!")
	d.log.Recordf("CreateCustomer(%s, %s) executed", c.FirstName, c.LastName)
	d.refreshFailed(logger, refreshErr)
	return nil
}

// UpdateCustomer updates the selected customer. Date of birth is not updatable.
func (d *Dispatcher) UpdateCustomer(ctx context.Context, sel form.Selection, c form.Customer, grid Grid) (err error) {
	logger, done := d.trace(ProcUpdateCustomer)
	defer func() { done(err) }()

	id, ok := sel.ID()
	if !ok {
		return d.warnNoSelection(ProcUpdateCustomer, "update")
	}
	var refreshErr error
	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		if err := write(ctx, s, ProcUpdateCustomer, id, c.FirstName, c.LastName, c.City, c.PostalCode); err != nil {
			return err
		}
		refreshErr = fill(ctx, s, ProcReadAllCustomers, grid)
		return nil
	})
	if err != nil {
		return d.fail(ProcUpdateCustomer, err)
	}
	d.ui.Info("Updated", "Customer updated successfully!")
	d.log.Recordf("UpdateCustomer(%s) executed", id)
	d.refreshFailed(logger, refreshErr)
	return nil
}

// DeleteCustomer deletes the selected customer.
func (d *Dispatcher) DeleteCustomer(ctx context.Context, sel form.Selection, grid Grid) (err error) {
	logger, done := d.trace(ProcDeleteCustomer)
	defer func() { done(err) }()

	id, ok := sel.ID()
	if !ok {
		return d.warnNoSelection(ProcDeleteCustomer, "delete")
	}
	var refreshErr error
	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		if err := write(ctx, s, ProcDeleteCustomer, id); err != nil {
			return err
		}
		refreshErr = fill(ctx, s, ProcReadAllCustomers, grid)
		return nil
	})
	if err != nil {
		return d.fail(ProcDeleteCustomer, err)
	}
	d.ui.Info("Deleted", "Customer deleted successfully!")
	d.log.Recordf("DeleteCustomer(%s) executed", id)
	d.refreshFailed(logger, refreshErr)
	return nil
}

// refreshFailed reports a grid refresh that failed after the write was committed. The
// write keeps its outcome and its log line.
func (d *Dispatcher) refreshFailed(logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	d.ui.Error("Error", err.Error())
	logger.Warn("grid refresh failed", zap.String("refresh", ProcReadAllCustomers.Name), zap.Error(err))
}

func (d *Dispatcher) warnNoSelection(r sqlx.Routine, verb string) error {
	d.ui.Warn("Select", fmt.Sprintf("Select a customer to %s.", verb))
	d.log.Recordf("WARN: %s aborted — %v", r.Name, ErrNoSelection)
	d.logger.Debug("precondition failed", zap.String("routine", r.Name))
	return &PreconditionError{Routine: r.Name, Err: ErrNoSelection}
}
