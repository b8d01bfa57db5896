package tui

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/GustavoCaso/spendsort/internal/report"
	"github.com/GustavoCaso/spendsort/internal/transaction"
	"github.com/GustavoCaso/spendsort/internal/util"
)

const pendingMarker = " *"

func transactionRow(tx transaction.Transaction, currency, pending string) table.Row {
	name := tx.Category
	if pending != "" {
		name = pending + pendingMarker
	}

	return table.Row{
		tx.Date.Format("2006-01-02"),
		tx.Description,
		util.FormatCurrency(tx.Amount, currency),
		name,
	}
}

func summaryRows(totals []report.CategoryTotal, currency string) []table.Row {
	rows := make([]table.Row, len(totals))

	for i, total := range totals {
		rows[i] = table.Row{
			total.Name,
			util.ColorOutput(util.FormatCurrency(total.Amount, currency), util.AmountColor(total.Amount)),
			util.FormatPercentage(total.PercentageOfTotal),
		}
	}

	return rows
}
