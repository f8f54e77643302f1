package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
)

const orderHelp = "tab: next field • ctrl+p: place order • ctrl+x: cancel order"

type orderPanel struct {
	fields fieldSet
}

func newOrderPanel() orderPanel {
	return orderPanel{fields: newFieldSet(
		fieldSpec{key: form.CustomerID, label: "Customer ID"},
		fieldSpec{key: form.SellerID, label: "Seller ID"},
		fieldSpec{key: form.Item, label: "Item"},
		fieldSpec{key: form.DeliveryID, label: "Delivery ID"},
		fieldSpec{key: form.Quantity, label: "Quantity"},
		fieldSpec{key: form.OrderID, label: "Order ID", hint: "to cancel"},
	)}
}

func (p orderPanel) update(ctx context.Context, a Actions, msg tea.Msg) (orderPanel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		n := len(p.fields.inputs)
		switch key.String() {
		case "tab":
			return p, p.fields.focusAt((p.fields.focus + 1) % n)
		case "shift+tab":
			return p, p.fields.focusAt((p.fields.focus + n - 1) % n)
		case "ctrl+p":
			o, err := form.BindOrder(p.fields.values()).Get()
			if err != nil {
				_ = a.Reject(dispatch.ProcPlaceOrder, err)
			} else {
				_ = a.PlaceOrder(ctx, o)
			}
			return p, nil
		case "ctrl+x":
			c, err := form.BindCancel(p.fields.values()).Get()
			if err != nil {
				_ = a.Reject(dispatch.ProcCancelOrder, err)
			} else {
				_ = a.CancelOrder(ctx, c)
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.fields, cmd = p.fields.update(msg)
	return p, cmd
}

func (p orderPanel) view(st Styles) string { return p.fields.view(st) }
