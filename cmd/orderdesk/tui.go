package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kcmvp/orderdesk/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI (default).",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	k := deskFrom(cmd)
	k.quiet()
	dialogs := tui.NewDialogs()
	model := tui.New(cmd.Context(), k.dispatcher(dialogs), dialogs)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
