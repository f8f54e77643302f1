package main

import (
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/spf13/cobra"
)

// orderCmd represents the order command group
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and cancel orders.",
}

var orderFlags = map[string]string{
	"customer": form.CustomerID,
	"seller":   form.SellerID,
	"item":     form.Item,
	"delivery": form.DeliveryID,
	"quantity": form.Quantity,
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order for a customer.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d := deskFrom(cmd).dispatcher(console{out: cmd.OutOrStdout()})
		o, err := form.BindOrder(flagValues(cmd, orderFlags)).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcPlaceOrder, err))
		}
		return reported(d.PlaceOrder(cmd.Context(), o))
	},
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel an order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := deskFrom(cmd).dispatcher(console{out: cmd.OutOrStdout()})
		c, err := form.BindCancel(form.Values{form.OrderID: args[0]}).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcCancelOrder, err))
		}
		return reported(d.CancelOrder(cmd.Context(), c))
	},
}

func init() {
	orderPlaceCmd.Flags().String("customer", "", "customer id")
	orderPlaceCmd.Flags().String("seller", "", "seller id")
	orderPlaceCmd.Flags().String("item", "", "item name")
	orderPlaceCmd.Flags().String("delivery", "", "delivery partner id")
	orderPlaceCmd.Flags().String("quantity", "", "quantity")
	orderCmd.AddCommand(orderPlaceCmd, orderCancelCmd)
}
