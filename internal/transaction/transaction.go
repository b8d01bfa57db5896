package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction int

const (
	Debit Direction = iota
	Credit
)

func (d Direction) String() string {
	switch d {
	case Debit:
		return "Debit"
	case Credit:
		return "Credit"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "Debit" or "Credit", ignoring case and surrounding spaces.
func ParseDirection(v string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debit":
		return Debit, nil
	case "credit":
		return Credit, nil
	default:
		return Debit, fmt.Errorf("unknown direction %q", v)
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transaction is one row of an imported ledger.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Category    string          `json:"category"`
}

// Filter returns the transactions with the given direction.
func Filter(txs []Transaction, direction Direction) []Transaction {
	result := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Direction == direction {
			result = append(result, tx)
		}
	}
	return result
}

// Clone returns a copy of txs that can be modified without touching the original.
func Clone(txs []Transaction) []Transaction {
	result := make([]Transaction, len(txs))
	copy(result, txs)
	return result
}
