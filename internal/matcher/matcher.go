package matcher

import (
	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

type matcher struct {
	keywords map[string]struct{}
	category string
}

// Matcher assigns a category to a description by exact, case-insensitive
// comparison against each category's keywords. Categories are tried in store
// order and the first one containing the description wins.
type Matcher struct {
	matchers []matcher
}

func New(categories []category.Entry) *Matcher {
	matchers := make([]matcher, 0, len(categories))

	for _, c := range categories {
		if c.Name == category.Uncategorized || len(c.Keywords) == 0 {
			continue
		}

		keywords := make(map[string]struct{}, len(c.Keywords))
		for _, keyword := range c.Keywords {
			keywords[category.Normalize(keyword)] = struct{}{}
		}

		matchers = append(matchers, matcher{
			keywords: keywords,
			category: c.Name,
		})
	}

	return &Matcher{
		matchers: matchers,
	}
}

// Match returns the category for description, or false when nothing matches.
func (m *Matcher) Match(description string) (string, bool) {
	normalized := category.Normalize(description)

	for _, matcher := range m.matchers {
		if _, ok := matcher.keywords[normalized]; ok {
			return matcher.category, true
		}
	}

	return "", false
}

// Categorize returns a copy of transactions with every category recomputed.
// Transactions that match nothing are Uncategorized.
func (m *Matcher) Categorize(transactions []transaction.Transaction) []transaction.Transaction {
	result := transaction.Clone(transactions)

	for i := range result {
		result[i].Category = m.categoryFor(result[i].Description)
	}

	return result
}

func (m *Matcher) categoryFor(description string) string {
	if name, ok := m.Match(description); ok {
		return name
	}
	return category.Uncategorized
}

// Categorize applies the keywords currently in store to transactions.
// It does not modify store or transactions.
func Categorize(transactions []transaction.Transaction, store *category.Store) []transaction.Transaction {
	return New(store.Snapshot()).Categorize(transactions)
}
