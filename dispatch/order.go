package dispatch

import (
	"context"

	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
)

// PlaceOrder places one order. Nothing is rendered beyond the confirmation.
func (d *Dispatcher) PlaceOrder(ctx context.Context, o form.Order) (err error) {
	logger, done := d.trace(ProcPlaceOrder)
	defer func() { done(err) }()

	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		return write(ctx, s, ProcPlaceOrder, o.CustomerID, o.SellerID, o.Item, o.DeliveryID, o.Quantity)
	})
	if err != nil {
		return d.fail(ProcPlaceOrder, err)
	}
	d.ui.Info("Success", "Order placed successfully!")
	d.log.Recordf("PlaceOrder(CID=%d, Item=%s) executed", o.CustomerID, o.Item)
	return nil
}

// CancelOrder cancels one order by id.
func (d *Dispatcher) CancelOrder(ctx context.Context, c form.Cancel) (err error) {
	logger, done := d.trace(ProcCancelOrder)
	defer func() { done(err) }()

	err = d.withSession(ctx, logger, func(s *sqlx.Session) error {
		return write(ctx, s, ProcCancelOrder, c.OrderID)
	})
	if err != nil {
		return d.fail(ProcCancelOrder, err)
	}
	d.ui.Info("Cancelled", "Order cancelled successfully!")
	d.log.Recordf("CancelOrder(OID=%d) executed", c.OrderID)
	return nil
}
