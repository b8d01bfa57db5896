package correction

import (
	"errors"
	"fmt"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/matcher"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

var ErrInvalidIndex = errors.New("transaction index out of range")

// Correction reassigns the transaction at Index of a snapshot to Category.
type Correction struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
}

// Apply moves tx to newCategory and teaches store that tx's description belongs
// there. It reports whether a new keyword was learned. On error tx is unchanged.
func Apply(tx *transaction.Transaction, newCategory string, store *category.Store) (bool, error) {
	if tx.Category == newCategory {
		return false, nil
	}

	learned, err := store.AddKeyword(newCategory, tx.Description)
	if err != nil {
		return false, err
	}

	tx.Category = newCategory

	return learned, nil
}

// Result is the outcome of applying a batch of corrections.
type Result struct {
	Transactions []transaction.Transaction
	// Learned holds the keywords added to the store, by category.
	Learned map[string][]string
}

// ApplyAll applies corrections in order to a copy of snapshot. Rows that were not
// corrected are then matched again so keywords learned from one row reach every
// row with the same description. The snapshot itself is never modified.
// On error the Result holds the corrections applied before the failing one.
func ApplyAll(
	snapshot []transaction.Transaction,
	corrections []Correction,
	store *category.Store,
) (Result, error) {
	result := Result{
		Transactions: transaction.Clone(snapshot),
		Learned:      map[string][]string{},
	}

	corrected := make(map[int]bool, len(corrections))

	for _, c := range corrections {
		if c.Index < 0 || c.Index >= len(result.Transactions) {
			return result, fmt.Errorf("%w: %d", ErrInvalidIndex, c.Index)
		}

		tx := &result.Transactions[c.Index]
		learned, err := Apply(tx, c.Category, store)
		if err != nil {
			return result, fmt.Errorf("correcting transaction %d: %w", c.Index, err)
		}

		corrected[c.Index] = true
		if learned {
			result.Learned[c.Category] = append(result.Learned[c.Category], tx.Description)
		}
	}

	if len(result.Learned) == 0 {
		return result, nil
	}

	m := matcher.New(store.Snapshot())
	for i := range result.Transactions {
		if corrected[i] {
			continue
		}
		if name, ok := m.Match(result.Transactions[i].Description); ok {
			result.Transactions[i].Category = name
		}
	}

	return result, nil
}
