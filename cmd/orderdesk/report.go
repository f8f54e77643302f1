package main

import (
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command group
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Order reports and customer totals.",
}

var reportOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show every order with its customer, seller and delivery partner.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		grid := &rows{headers: dispatch.ReportColumns}
		err := deskFrom(cmd).dispatcher(console{out: out}).ListOrderReport(cmd.Context(), grid)
		if err == nil {
			grid.render(out)
		}
		return reported(err)
	},
}

var reportTotalCmd = &cobra.Command{
	Use:   "total <customer-id>",
	Short: "Show what a customer has spent on orders that are not cancelled.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := deskFrom(cmd).dispatcher(console{out: cmd.OutOrStdout()})
		t, err := form.BindTotal(form.Values{form.CustomerID: args[0]}).Get()
		if err != nil {
			return reported(d.Reject(dispatch.FuncCustomerTotalSpent, err))
		}
		_, err = d.TotalSpent(cmd.Context(), t)
		return reported(err)
	},
}

func init() {
	reportCmd.AddCommand(reportOrdersCmd, reportTotalCmd)
}
