package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
)

const customerHelp = "tab: next field • enter: select row • ctrl+a: add • ctrl+u: update • ctrl+d: delete • ctrl+r: refresh"

type customerPanel struct {
	fields    fieldSet
	table     table.Model
	grid      *grid
	selection form.Selection
}

func newCustomerPanel() customerPanel {
	return customerPanel{
		fields: newFieldSet(
			fieldSpec{key: form.FirstName, label: "First Name"},
			fieldSpec{key: form.LastName, label: "Last Name"},
			fieldSpec{key: form.DateOfBirth, label: "Date of Birth", hint: "YYYY-MM-DD"},
			fieldSpec{key: form.City, label: "City"},
			fieldSpec{key: form.PostalCode, label: "Pincode"},
		),
		table: table.New(
			table.WithColumns(columns(dispatch.CustomerColumns, 10)),
			table.WithHeight(10),
			table.WithStyles(TableStyles()),
		),
		grid: &grid{},
	}
}

// focus moves to input i, or to the table when i is past the last input.
func (p *customerPanel) focus(i int) tea.Cmd {
	n := len(p.fields.inputs) + 1
	i = (i%n + n) % n
	if i == n-1 {
		p.fields.focusAt(-1)
		p.table.Focus()
		return nil
	}
	p.table.Blur()
	return p.fields.focusAt(i)
}

func (p *customerPanel) position() int {
	if p.table.Focused() {
		return len(p.fields.inputs)
	}
	return p.fields.focus
}

func (p customerPanel) update(ctx context.Context, a Actions, msg tea.Msg) (customerPanel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			return p, p.focus(p.position() + 1)
		case "shift+tab":
			return p, p.focus(p.position() - 1)
		case "ctrl+a":
			p.create(ctx, a)
			return p, nil
		case "ctrl+u":
			p.edit(ctx, a)
			return p, nil
		case "ctrl+d":
			p.remove(ctx, a)
			return p, nil
		case "ctrl+r":
			p.list(ctx, a)
			return p, nil
		case "enter":
			if p.table.Focused() {
				p.selection = form.Select(sqlx.Row(p.table.SelectedRow()))
				return p, nil
			}
		case "esc":
			if p.table.Focused() {
				p.selection = form.None()
				return p, nil
			}
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

func (p *customerPanel) list(ctx context.Context, a Actions) {
	p.sync(a.ListCustomers(ctx, p.grid))
}

func (p *customerPanel) create(ctx context.Context, a Actions) {
	c, err := form.BindCustomer(p.fields.values(), true).Get()
	if err != nil {
		_ = a.Reject(dispatch.ProcCreateCustomer, err)
		return
	}
	p.sync(a.CreateCustomer(ctx, c, p.grid))
}

func (p *customerPanel) edit(ctx context.Context, a Actions) {
	c, err := form.BindCustomer(p.fields.values(), false).Get()
	if err != nil {
		_ = a.Reject(dispatch.ProcUpdateCustomer, err)
		return
	}
	p.sync(a.UpdateCustomer(ctx, p.selection, c, p.grid))
}

func (p *customerPanel) remove(ctx context.Context, a Actions) {
	p.sync(a.DeleteCustomer(ctx, p.selection, p.grid))
}

// sync shows the grid as the last action left it. A rebuilt grid drops the selection.
func (p *customerPanel) sync(err error) {
	p.table.SetRows(p.grid.tableRows())
	if err == nil || len(p.grid.rows) == 0 {
		p.selection = form.None()
	}
}

func (p customerPanel) view(st Styles) string {
	selected := "none"
	if id, ok := p.selection.ID(); ok {
		selected = st.Selected.Render("customer " + id)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.fields.view(st),
		st.Label.Render("Selected")+selected,
		"",
		p.table.View(),
	)
}
