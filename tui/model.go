// Package tui is the terminal front end of the desk: four tabs of text inputs and result
// tables over the dispatcher. Actions run synchronously inside Update, so the screen is
// blocked for the duration of one database round trip.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
)

// Actions is the dispatcher as seen from the screen.
type Actions interface {
	ListCustomers(ctx context.Context, grid dispatch.Grid) error
	CreateCustomer(ctx context.Context, c form.Customer, grid dispatch.Grid) error
	UpdateCustomer(ctx context.Context, sel form.Selection, c form.Customer, grid dispatch.Grid) error
	DeleteCustomer(ctx context.Context, sel form.Selection, grid dispatch.Grid) error
	PlaceOrder(ctx context.Context, o form.Order) error
	CancelOrder(ctx context.Context, c form.Cancel) error
	ListOrderReport(ctx context.Context, grid dispatch.Grid) error
	TotalSpent(ctx context.Context, t form.Total) (string, error)
	Reject(r sqlx.Routine, err error) error
}

var _ Actions = (*dispatch.Dispatcher)(nil)

type tab int

const (
	tabCustomers tab = iota
	tabProducts
	tabOrders
	tabReports
	tabCount
)

var tabTitles = [tabCount]string{"Customers", "Products", "Orders", "Reports"}

type refreshMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	actions Actions
	dialogs *Dialogs
	styles  Styles

	active    tab
	customers customerPanel
	orders    orderPanel
	reports   reportPanel
}

// New builds the desk. dialogs must be the Notifier the dispatcher behind actions reports to.
func New(ctx context.Context, actions Actions, dialogs *Dialogs) Model {
	m := Model{
		ctx:       ctx,
		actions:   actions,
		dialogs:   dialogs,
		styles:    NewStyles(),
		customers: newCustomerPanel(),
		orders:    newOrderPanel(),
		reports:   newReportPanel(),
	}
	m.customers.fields.focusAt(0)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return refreshMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.customers.list(m.ctx, m.actions)
		return m, nil
	case tea.KeyMsg:
		if _, ok := m.dialogs.Current(); ok {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc", " ":
				m.dialogs.Dismiss()
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1", "f2", "f3", "f4":
			return m, m.switchTo(tab(msg.String()[1] - '1'))
		case "ctrl+right":
			return m, m.switchTo((m.active + 1) % tabCount)
		case "ctrl+left":
			return m, m.switchTo((m.active + tabCount - 1) % tabCount)
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case tabCustomers:
		m.customers, cmd = m.customers.update(m.ctx, m.actions, msg)
	case tabOrders:
		m.orders, cmd = m.orders.update(m.ctx, m.actions, msg)
	case tabReports:
		m.reports, cmd = m.reports.update(m.ctx, m.actions, msg)
	}
	return m, cmd
}

func (m *Model) switchTo(t tab) tea.Cmd {
	m.active = t
	switch t {
	case tabCustomers:
		return m.customers.focus(0)
	case tabOrders:
		return m.orders.fields.focusAt(0)
	case tabReports:
		return m.reports.focus(0)
	}
	return nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.tabBar())
	sb.WriteString("\n")

	var body, help string
	switch m.active {
	case tabCustomers:
		body, help = m.customers.view(m.styles), customerHelp
	case tabProducts:
		body, help = "Product management is not available yet.", ""
	case tabOrders:
		body, help = m.orders.view(m.styles), orderHelp
	case tabReports:
		body, help = m.reports.view(m.styles), reportHelp
	}
	sb.WriteString(m.styles.Panel.Render(body))

	if d, ok := m.dialogs.Current(); ok {
		sb.WriteString("\n")
		sb.WriteString(m.dialogView(d))
		help = "enter: dismiss"
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(strings.TrimSpace("f1-f4: switch tab • ctrl+c: quit • " + help)))
	return sb.String()
}

func (m Model) tabBar() string {
	tabs := make([]string, 0, tabCount)
	for i, title := range tabTitles {
		if tab(i) == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) dialogView(d Dialog) string {
	st := m.styles.DialogInfo
	switch d.Severity {
	case SeverityWarn:
		st = m.styles.DialogWarn
	case SeverityError:
		st = m.styles.DialogError
	}
	return st.Render(lipgloss.NewStyle().Bold(true).Render(d.Title) + "\n" + d.Message)
}
