package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{name: "debit", input: "Debit", want: Debit},
		{name: "credit", input: "Credit", want: Credit},
		{name: "lower case with spaces", input: "  credit ", want: Credit},
		{name: "unknown value", input: "Transfer", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDirection(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDirection(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{Date: date, Description: "Netflix", Amount: decimal.RequireFromString("-15"), Direction: Debit},
		{Date: date, Description: "Salary", Amount: decimal.RequireFromString("3000"), Direction: Credit},
		{Date: date, Description: "Coffee", Amount: decimal.RequireFromString("-3.5"), Direction: Debit},
	}

	debits := Filter(txs, Debit)
	if len(debits) != 2 {
		t.Fatalf("Filter(Debit) returned %d transactions, want 2", len(debits))
	}
	if debits[0].Description != "Netflix" || debits[1].Description != "Coffee" {
		t.Errorf("Filter(Debit) did not keep the input order: %+v", debits)
	}

	credits := Filter(txs, Credit)
	if len(credits) != 1 || credits[0].Description != "Salary" {
		t.Errorf("Filter(Credit) = %+v, want only Salary", credits)
	}
}

func TestClone(t *testing.T) {
	txs := []Transaction{{Description: "Netflix", Category: "Uncategorized"}}

	cloned := Clone(txs)
	cloned[0].Category = "Subscriptions"

	if txs[0].Category != "Uncategorized" {
		t.Errorf("Clone shares memory with the original slice")
	}
}
