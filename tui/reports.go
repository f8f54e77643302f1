package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
)

const reportHelp = "tab: field/table • ctrl+o: show all orders • ctrl+t: total spent"

type reportPanel struct {
	fields fieldSet
	table  table.Model
	grid   *grid
	total  string
}

func newReportPanel() reportPanel {
	return reportPanel{
		fields: newFieldSet(fieldSpec{key: form.CustomerID, label: "Customer ID"}),
		table: table.New(
			table.WithColumns(columns(dispatch.ReportColumns, 8)),
			table.WithHeight(12),
			table.WithStyles(TableStyles()),
		),
		grid: &grid{},
	}
}

func (p *reportPanel) focus(i int) tea.Cmd {
	if i%2 != 0 {
		p.fields.focusAt(-1)
		p.table.Focus()
		return nil
	}
	p.table.Blur()
	return p.fields.focusAt(0)
}

func (p reportPanel) update(ctx context.Context, a Actions, msg tea.Msg) (reportPanel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if p.table.Focused() {
				return p, p.focus(0)
			}
			return p, p.focus(1)
		case "ctrl+o":
			_ = a.ListOrderReport(ctx, p.grid)
			p.table.SetRows(p.grid.tableRows())
			return p, nil
		case "ctrl+t":
			t, err := form.BindTotal(p.fields.values()).Get()
			if err != nil {
				_ = a.Reject(dispatch.FuncCustomerTotalSpent, err)
				return p, nil
			}
			if amount, err := a.TotalSpent(ctx, t); err == nil {
				p.total = amount
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	if p.table.Focused() {
		p.table, cmd = p.table.Update(msg)
	} else {
		p.fields, cmd = p.fields.update(msg)
	}
	return p, cmd
}

func (p reportPanel) view(st Styles) string {
	total := p.total
	if total == "" {
		total = "-"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.fields.view(st),
		st.Label.Render("Total Spent")+total,
		"",
		p.table.View(),
	)
}
