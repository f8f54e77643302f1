package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/kcmvp/orderdesk/sqlx"
)

// console prints dialogs as colored lines.
type console struct {
	out io.Writer
}

func (c console) Info(title, message string) {
	fmt.Fprintf(c.out, "%s %s\n", color.GreenString("[%s]", title), message)
}

func (c console) Warn(title, message string) {
	fmt.Fprintf(c.out, "%s %s\n", color.YellowString("[%s]", title), message)
}

func (c console) Error(title, message string) {
	fmt.Fprintf(c.out, "%s %s\n", color.RedString("[%s]", title), message)
}

// rows collects a result grid and prints it as a bordered table.
type rows struct {
	headers []string
	data    []sqlx.Row
}

func (r *rows) Clear() { r.data = nil }

func (r *rows) Append(row sqlx.Row) { r.data = append(r.data, row) }

func (r *rows) render(w io.Writer) {
	if len(r.data) == 0 {
		fmt.Fprintln(w, color.HiBlackString("(no rows)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(r.headers...)
	for _, row := range r.data {
		t.Row(row...)
	}
	fmt.Fprintln(w, t.Render())
}
