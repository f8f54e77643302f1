package dispatch

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
)

// ListOrderReport rebuilds grid from the joined order report. No filtering, paging or caching.
func (d *Dispatcher) ListOrderReport(ctx context.Context, grid Grid) (err error) {
	logger, done := d.trace(ProcGetOrdersJoinDetails)
	defer func() { done(err) }()

	grid.Clear()
	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		return fill(ctx, s, ProcGetOrdersJoinDetails, grid)
	})
	if err != nil {
		return d.fail(ProcGetOrdersJoinDetails, err)
	}
	d.log.Record("GetOrdersJoinDetails() executed (JOIN query)")
	return nil
}

// TotalSpent shows what a customer has spent and returns the formatted amount.
// The customer id is bound as a parameter, never spliced into the SQL text.
func (d *Dispatcher) TotalSpent(ctx context.Context, t form.Total) (amount string, err error) {
	logger, done := d.trace(FuncCustomerTotalSpent)
	defer func() { done(err) }()

	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		v, err := s.Scalar(ctx, FuncCustomerTotalSpent, t.CustomerID)
		if err != nil {
			return err
		}
		if amount, err = FormatAmount(d.currency, v); err != nil {
			return &sqlx.ProcedureError{Routine: FuncCustomerTotalSpent.Name, Err: err}
		}
		return nil
	})
	if err != nil {
		return "", d.fail(FuncCustomerTotalSpent, err)
	}
	d.ui.Info("Total Spent", fmt.Sprintf("Customer %d has spent %s", t.CustomerID, amount))
	d.log.Recordf("GetCustomerTotalSpent(%d) executed (Aggregate function)", t.CustomerID)
	return amount, nil
}

// FormatAmount renders a decimal with exactly two places, halves rounded away from zero.
// NULL counts as zero.
func FormatAmount(symbol string, v sql.NullString) (string, error) {
	raw := "0"
	if v.Valid {
		raw = strings.TrimSpace(v.String)
	}
	r, ok := new(big.Rat).SetString(raw)
	if !ok {
		return "", fmt.Errorf("unexpected amount %q", raw)
	}
	return symbol + r.FloatString(2), nil
}
