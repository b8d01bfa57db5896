package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	importutil "github.com/GustavoCaso/spendsort/internal/import"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

// ColumnCategory is appended to the import columns on export.
const ColumnCategory = "Category"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name such as "csv" or "json".
func ParseFormat(name string) (Format, error) {
	switch format := Format(name); format {
	case FormatCSV, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", name)
	}
}

// Write exports transactions in the given format. Dates use dateFormat, the
// layout of the import Date column, so an export can be ingested again.
func Write(writer io.Writer, format Format, dateFormat string, transactions []transaction.Transaction) error {
	if dateFormat == "" {
		dateFormat = importutil.DefaultDateFormat
	}

	switch format {
	case FormatCSV:
		return CSV(writer, dateFormat, transactions)
	case FormatJSON:
		return JSON(writer, dateFormat, transactions)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// record is one exported row keyed by the import column names.
type record struct {
	Date      string `json:"Date"`
	Details   string `json:"Details"`
	Amount    string `json:"Amount"`
	Direction string `json:"Debit/Credit"`
	Category  string `json:"Category"`
}

func toRecord(tx transaction.Transaction, dateFormat string) record {
	return record{
		Date:      tx.Date.Format(dateFormat),
		Details:   tx.Description,
		Amount:    tx.Amount.StringFixed(2),
		Direction: tx.Direction.String(),
		Category:  tx.Category,
	}
}

// CSV exports transactions with the import columns plus their category
// format: Date,Details,Amount,Debit/Credit,Category
func CSV(writer io.Writer, dateFormat string, transactions []transaction.Transaction) error {
	w := csv.NewWriter(writer)

	records := make([][]string, 0, len(transactions)+1)

	records = append(records, []string{
		importutil.ColumnDate,
		importutil.ColumnDetails,
		importutil.ColumnAmount,
		importutil.ColumnDirection,
		ColumnCategory,
	})

	for _, tx := range transactions {
		r := toRecord(tx, dateFormat)
		records = append(records, []string{r.Date, r.Details, r.Amount, r.Direction, r.Category})
	}

	// WriteAll flushes
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

// JSON exports transactions as an indented array of objects keyed by the
// import column names.
func JSON(writer io.Writer, dateFormat string, transactions []transaction.Transaction) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	records := make([]record, 0, len(transactions))
	for _, tx := range transactions {
		records = append(records, toRecord(tx, dateFormat))
	}

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	return nil
}
