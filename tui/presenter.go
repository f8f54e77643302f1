package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/samber/lo"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

type Dialog struct {
	Severity Severity
	Title    string
	Message  string
}

// Dialogs queues the dialogs raised by the dispatcher until the clerk dismisses them.
// The model shows the head of the queue and swallows keys while it is not empty.
type Dialogs struct {
	queue []Dialog
}

func NewDialogs() *Dialogs { return &Dialogs{} }

func (d *Dialogs) Info(title, message string)  { d.push(SeverityInfo, title, message) }
func (d *Dialogs) Warn(title, message string)  { d.push(SeverityWarn, title, message) }
func (d *Dialogs) Error(title, message string) { d.push(SeverityError, title, message) }

func (d *Dialogs) push(s Severity, title, message string) {
	d.queue = append(d.queue, Dialog{Severity: s, Title: title, Message: message})
}

// Current returns the dialog on screen, if any.
func (d *Dialogs) Current() (Dialog, bool) {
	if len(d.queue) == 0 {
		return Dialog{}, false
	}
	return d.queue[0], true
}

// Dismiss closes the dialog on screen.
func (d *Dialogs) Dismiss() {
	if len(d.queue) > 0 {
		d.queue = d.queue[1:]
	}
}

// grid collects the rows of one refresh before they are handed to a bubbles table.
type grid struct {
	rows []sqlx.Row
}

func (g *grid) Clear() { g.rows = g.rows[:0] }

func (g *grid) Append(row sqlx.Row) { g.rows = append(g.rows, row) }

func (g *grid) tableRows() []table.Row {
	return lo.Map(g.rows, func(r sqlx.Row, _ int) table.Row { return table.Row(r) })
}

func columns(titles []string, width int) []table.Column {
	return lo.Map(titles, func(t string, _ int) table.Column {
		return table.Column{Title: t, Width: max(width, len(t)+1)}
	})
}
