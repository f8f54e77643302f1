package server

import (
	"context"

	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
)

var (
	customerFields = []string{form.FirstName, form.LastName, form.DateOfBirth, form.City, form.PostalCode}
	orderFields    = []string{form.CustomerID, form.SellerID, form.Item, form.DeliveryID, form.Quantity}
)

func (s *Server) routes() {
	customers := s.engine.Group("/customers")
	customers.GET("", s.handle(dispatch.ProcReadAllCustomers, nil, listCustomers))
	customers.POST("", s.handle(dispatch.ProcCreateCustomer, customerFields, createCustomer))
	customers.PUT("/:"+form.CustomerID, s.handle(dispatch.ProcUpdateCustomer, customerFields, updateCustomer))
	customers.DELETE("/:"+form.CustomerID, s.handle(dispatch.ProcDeleteCustomer, nil, deleteCustomer))

	orders := s.engine.Group("/orders")
	orders.POST("", s.handle(dispatch.ProcPlaceOrder, orderFields, placeOrder))
	orders.DELETE("/:"+form.OrderID, s.handle(dispatch.ProcCancelOrder, nil, cancelOrder))

	reports := s.engine.Group("/reports")
	reports.GET("/orders", s.handle(dispatch.ProcGetOrdersJoinDetails, nil, orderReport))
	reports.GET("/customers/:"+form.CustomerID+"/total", s.handle(dispatch.FuncCustomerTotalSpent, nil, totalSpent))
}

func listCustomers(ctx context.Context, d *dispatch.Dispatcher, _ form.Values, out *Reply) error {
	out.Columns = dispatch.CustomerColumns
	return d.ListCustomers(ctx, out)
}

func createCustomer(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	c, err := form.BindCustomer(v, true).Get()
	if err != nil {
		return d.Reject(dispatch.ProcCreateCustomer, err)
	}
	out.Columns = dispatch.CustomerColumns
	return d.CreateCustomer(ctx, c, out)
}

func updateCustomer(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	sel, err := form.BindSelection(v).Get()
	if err != nil {
		return d.Reject(dispatch.ProcUpdateCustomer, err)
	}
	c, err := form.BindCustomer(v, false).Get()
	if err != nil {
		return d.Reject(dispatch.ProcUpdateCustomer, err)
	}
	out.Columns = dispatch.CustomerColumns
	return d.UpdateCustomer(ctx, sel, c, out)
}

func deleteCustomer(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	sel, err := form.BindSelection(v).Get()
	if err != nil {
		return d.Reject(dispatch.ProcDeleteCustomer, err)
	}
	out.Columns = dispatch.CustomerColumns
	return d.DeleteCustomer(ctx, sel, out)
}

func placeOrder(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	o, err := form.BindOrder(v).Get()
	if err != nil {
		return d.Reject(dispatch.ProcPlaceOrder, err)
	}
	return d.PlaceOrder(ctx, o)
}

func cancelOrder(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	c, err := form.BindCancel(v).Get()
	if err != nil {
		return d.Reject(dispatch.ProcCancelOrder, err)
	}
	return d.CancelOrder(ctx, c)
}

func orderReport(ctx context.Context, d *dispatch.Dispatcher, _ form.Values, out *Reply) error {
	out.Columns = dispatch.ReportColumns
	return d.ListOrderReport(ctx, out)
}

func totalSpent(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error {
	t, err := form.BindTotal(v).Get()
	if err != nil {
		return d.Reject(dispatch.FuncCustomerTotalSpent, err)
	}
	amount, err := d.TotalSpent(ctx, t)
	out.Amount = amount
	return err
}
