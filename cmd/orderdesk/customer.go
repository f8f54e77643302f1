package main

import (
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/spf13/cobra"
)

// customerCmd represents the customer command group
var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "List, create, update and delete customers.",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every customer.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		grid := &rows{headers: dispatch.CustomerColumns}
		err := deskFrom(cmd).dispatcher(console{out: out}).ListCustomers(cmd.Context(), grid)
		if err == nil {
			grid.render(out)
		}
		return reported(err)
	},
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a customer.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		d := deskFrom(cmd).dispatcher(console{out: out})
		c, err := form.BindCustomer(flagValues(cmd, customerFlags), true).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcCreateCustomer, err))
		}
		grid := &rows{headers: dispatch.CustomerColumns}
		if err = d.CreateCustomer(cmd.Context(), c, grid); err == nil {
			grid.render(out)
		}
		return reported(err)
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update <customer-id>",
	Short: "Update a customer's name, city and pincode. The date of birth cannot be changed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		d := deskFrom(cmd).dispatcher(console{out: out})
		v := flagValues(cmd, customerFlags)
		v[form.CustomerID] = args[0]
		sel, err := form.BindSelection(v).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcUpdateCustomer, err))
		}
		c, err := form.BindCustomer(v, false).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcUpdateCustomer, err))
		}
		grid := &rows{headers: dispatch.CustomerColumns}
		if err = d.UpdateCustomer(cmd.Context(), sel, c, grid); err == nil {
			grid.render(out)
		}
		return reported(err)
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete <customer-id>",
	Short: "Delete a customer.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		d := deskFrom(cmd).dispatcher(console{out: out})
		sel, err := form.BindSelection(form.Values{form.CustomerID: args[0]}).Get()
		if err != nil {
			return reported(d.Reject(dispatch.ProcDeleteCustomer, err))
		}
		grid := &rows{headers: dispatch.CustomerColumns}
		if err = d.DeleteCustomer(cmd.Context(), sel, grid); err == nil {
			grid.render(out)
		}
		return reported(err)
	},
}

// flag name -> form field
var customerFlags = map[string]string{
	"first-name": form.FirstName,
	"last-name":  form.LastName,
	"dob":        form.DateOfBirth,
	"city":       form.City,
	"pincode":    form.PostalCode,
}

// flagValues reads the changed flags of cmd into form values.
func flagValues(cmd *cobra.Command, names map[string]string) form.Values {
	v := form.Values{}
	for flag, field := range names {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v[field] = f.Value.String()
		}
	}
	return v
}

func init() {
	for _, c := range []*cobra.Command{customerCreateCmd, customerUpdateCmd} {
		c.Flags().String("first-name", "", "first name")
		c.Flags().String("last-name", "", "last name")
		c.Flags().String("city", "", "city")
		c.Flags().String("pincode", "", "postal code")
	}
	customerCreateCmd.Flags().String("dob", "", "date of birth, YYYY-MM-DD")
	customerCmd.AddCommand(customerListCmd, customerCreateCmd, customerUpdateCmd, customerDeleteCmd)
}
