package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type transactionsTable struct {
	table table.Model
}

func newTransactionsTable(rows []table.Row, width, height int) transactionsTable {
	t := table.New(
		table.WithColumns(createTransactionsColumns(width)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	return transactionsTable{
		table: t,
	}
}

func (r transactionsTable) Cursor() int {
	return r.table.Cursor()
}

func (r transactionsTable) SetRows(rows []table.Row) transactionsTable {
	r.table.SetRows(rows)
	return r
}

func (r transactionsTable) Update(msg tea.Msg) (transactionsTable, tea.Cmd) {
	var cmd tea.Cmd
	r.table.Focus()
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

func (r transactionsTable) UpdateDimensions(width, height int) transactionsTable {
	r.table.SetColumns(createTransactionsColumns(width))
	r.table.SetWidth(width)
	r.table.SetHeight(height)
	return r
}

func (r transactionsTable) View() string {
	return r.table.View()
}

func createTransactionsColumns(width int) []table.Column {
	w := width / 6

	return []table.Column{
		{Title: "Date", Width: w},
		{Title: "Description", Width: w * 2},
		{Title: "Amount", Width: w},
		{Title: "Category", Width: w * 2},
	}
}
