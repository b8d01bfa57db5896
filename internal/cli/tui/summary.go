package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/GustavoCaso/spendsort/internal/report"
	"github.com/GustavoCaso/spendsort/internal/util"
)

// summary shows the expenses per category next to the payments received.
type summary struct {
	table  table.Model
	report report.Report
}

func newSummary(r report.Report, width, height int) summary {
	t := table.New(
		table.WithColumns(createSummaryColumns(width)),
		table.WithRows(summaryRows(r.Expenses, r.Currency)),
		table.WithHeight(height),
	)

	return summary{
		table:  t,
		report: r,
	}
}

func (s summary) UpdateDimensions(width, height int) summary {
	s.table.SetColumns(createSummaryColumns(width))
	s.table.SetWidth(width)
	s.table.SetHeight(height)
	return s
}

func (s summary) View() string {
	expenses := lipgloss.JoinVertical(
		lipgloss.Left,
		s.table.View(),
		fmt.Sprintf("Total expenses: %s", util.FormatCurrency(s.report.ExpensesTotal, s.report.Currency)),
	)

	items := []any{}
	for _, tx := range s.report.Payments.Transactions {
		items = append(items, fmt.Sprintf("%s | %s", tx.Description, util.FormatCurrency(tx.Amount, s.report.Currency)))
	}

	payments := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("Total payments: %s", util.FormatCurrency(s.report.Payments.Total, s.report.Currency)),
		list.New(items...).String(),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		modelStyle.Render(expenses),
		modelStyle.Render(payments),
	)
}

func createSummaryColumns(width int) []table.Column {
	w := width / 4

	return []table.Column{
		{Title: "Category", Width: w},
		{Title: "Amount", Width: w},
		{Title: "Share", Width: w / 2},
	}
}
