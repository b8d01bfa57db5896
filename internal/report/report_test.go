package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

func newTransaction(description, amount string, direction transaction.Direction, name string) transaction.Transaction {
	return transaction.Transaction{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Direction:   direction,
		Category:    name,
	}
}

func TestSummarize(t *testing.T) {
	transactions := []transaction.Transaction{
		newTransaction("Market", "40.00", transaction.Debit, "Groceries"),
		newTransaction("Cinema", "10.00", transaction.Debit, "Leisure"),
		newTransaction("Bakery", "10.00", transaction.Debit, "Groceries"),
		newTransaction("Bus", "10.00", transaction.Debit, "Transport"),
		newTransaction("Unknown", "30.00", transaction.Debit, category.Uncategorized),
	}

	totals := Summarize(transactions)

	want := []struct {
		name       string
		amount     string
		count      int
		percentage float64
	}{
		{"Groceries", "50", 2, 50},
		{category.Uncategorized, "30", 1, 30},
		{"Leisure", "10", 1, 10},
		{"Transport", "10", 1, 10},
	}

	if len(totals) != len(want) {
		t.Fatalf("Summarize() returned %d totals, want %d: %+v", len(totals), len(want), totals)
	}

	for i, w := range want {
		got := totals[i]
		if got.Name != w.name {
			t.Errorf("totals[%d].Name = %q, want %q", i, got.Name, w.name)
		}
		if !got.Amount.Equal(decimal.RequireFromString(w.amount)) {
			t.Errorf("totals[%d].Amount = %s, want %s", i, got.Amount, w.amount)
		}
		if got.Count != w.count {
			t.Errorf("totals[%d].Count = %d, want %d", i, got.Count, w.count)
		}
		if got.PercentageOfTotal != w.percentage {
			t.Errorf("totals[%d].PercentageOfTotal = %v, want %v", i, got.PercentageOfTotal, w.percentage)
		}
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	tests := []struct {
		name         string
		transactions []transaction.Transaction
		wantLen      int
		wantPercent  float64
	}{
		{
			name:         "no transactions",
			transactions: nil,
			wantLen:      0,
		},
		{
			name: "zero amounts",
			transactions: []transaction.Transaction{
				newTransaction("Refund", "0", transaction.Debit, "Groceries"),
			},
			wantLen:     1,
			wantPercent: 0,
		},
		{
			name: "negative amounts use magnitude",
			transactions: []transaction.Transaction{
				newTransaction("Market", "-25.00", transaction.Debit, "Groceries"),
				newTransaction("Bus", "-75.00", transaction.Debit, "Transport"),
			},
			wantLen:     2,
			wantPercent: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Summarize(tt.transactions)

			if len(totals) != tt.wantLen {
				t.Fatalf("Summarize() returned %d totals, want %d", len(totals), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			if totals[0].PercentageOfTotal != tt.wantPercent {
				t.Errorf("totals[0].PercentageOfTotal = %v, want %v", totals[0].PercentageOfTotal, tt.wantPercent)
			}
		})
	}
}

func TestPayments(t *testing.T) {
	transactions := []transaction.Transaction{
		newTransaction("Market", "40.00", transaction.Debit, "Groceries"),
		newTransaction("Card payment", "100.50", transaction.Credit, category.Uncategorized),
		newTransaction("Refund", "9.50", transaction.Credit, "Groceries"),
	}

	payments := Payments(transactions)

	if !payments.Total.Equal(decimal.RequireFromString("110")) {
		t.Errorf("Payments().Total = %s, want 110", payments.Total)
	}
	if len(payments.Transactions) != 2 {
		t.Fatalf("Payments().Transactions = %d, want 2", len(payments.Transactions))
	}
	if payments.Transactions[0].Description != "Card payment" {
		t.Errorf("Payments().Transactions[0] = %q, want Card payment", payments.Transactions[0].Description)
	}
}

func TestGenerate(t *testing.T) {
	transactions := []transaction.Transaction{
		newTransaction("Market", "40.00", transaction.Debit, "Groceries"),
		newTransaction("Cinema", "12.25", transaction.Debit, "Leisure"),
		newTransaction("Card payment", "100.00", transaction.Credit, category.Uncategorized),
	}

	report := Generate(transactions)

	if len(report.Expenses) != 2 {
		t.Fatalf("Report.Expenses = %d categories, want 2", len(report.Expenses))
	}
	if report.Expenses[0].Name != "Groceries" {
		t.Errorf("Report.Expenses[0].Name = %q, want Groceries", report.Expenses[0].Name)
	}
	if !report.ExpensesTotal.Equal(decimal.RequireFromString("52.25")) {
		t.Errorf("Report.ExpensesTotal = %s, want 52.25", report.ExpensesTotal)
	}
	if !report.Payments.Total.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Report.Payments.Total = %s, want 100", report.Payments.Total)
	}
	for _, total := range report.Expenses {
		if total.Name == category.Uncategorized {
			t.Errorf("credit transactions leaked into expenses: %+v", report.Expenses)
		}
	}
}
