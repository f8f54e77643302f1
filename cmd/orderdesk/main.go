package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	sandboxPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orderdesk",
	Short: "orderdesk is the clerk's desk for customers, orders and order reports.",
	Long: `orderdesk drives the order database through its stored routines. Every action
opens its own connection, calls one routine, shows the outcome and appends one line to
the activity log. Without a subcommand the terminal UI is started.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default application.yml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug level diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&sandboxPath, "sandbox", "", "use (and create if needed) a local sqlite database at this path")

	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// action failures were already shown as dialogs
		var shown *reportedError
		if !errors.As(err, &shown) {
			color.Red("Error: %v", err)
		}
		os.Exit(1)
	}
}
