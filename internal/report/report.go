package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/spendsort/internal/transaction"
)

const percentageOfTotal = 100

type CategoryTotal struct {
	Name              string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Count             int             `json:"count"`
	PercentageOfTotal float64         `json:"percentage_of_total"`
}

type PaymentsSummary struct {
	Total        decimal.Decimal           `json:"total"`
	Transactions []transaction.Transaction `json:"transactions"`
}

type Report struct {
	Expenses      []CategoryTotal `json:"expenses"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Payments      PaymentsSummary `json:"payments"`
	Verbose       bool            `json:"-"`
	Currency      string          `json:"currency"`
}

// Generate builds the expense summary from debit transactions and the payments
// summary from credit transactions.
func Generate(transactions []transaction.Transaction) Report {
	debits := transaction.Filter(transactions, transaction.Debit)

	return Report{
		Expenses:      Summarize(debits),
		ExpensesTotal: Sum(debits),
		Payments:      Payments(transactions),
	}
}

// Summarize groups transactions by category and sums their amounts. The result
// is sorted by amount descending, then by name.
func Summarize(transactions []transaction.Transaction) []CategoryTotal {
	index := map[string]int{}
	totals := []CategoryTotal{}
	magnitude := decimal.Zero

	for _, tx := range transactions {
		i, ok := index[tx.Category]
		if !ok {
			totals = append(totals, CategoryTotal{Name: tx.Category, Amount: decimal.Zero})
			i = len(totals) - 1
			index[tx.Category] = i
		}

		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
		totals[i].Count++
	}

	for _, total := range totals {
		magnitude = magnitude.Add(total.Amount.Abs())
	}

	if !magnitude.IsZero() {
		for i := range totals {
			share := totals[i].Amount.Abs().Div(magnitude).Mul(decimal.NewFromInt(percentageOfTotal))
			totals[i].PercentageOfTotal = share.InexactFloat64()
		}
	}

	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return totals
}

// Payments totals the credit transactions.
func Payments(transactions []transaction.Transaction) PaymentsSummary {
	credits := transaction.Filter(transactions, transaction.Credit)

	return PaymentsSummary{
		Total:        Sum(credits),
		Transactions: credits,
	}
}

func Sum(transactions []transaction.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}
