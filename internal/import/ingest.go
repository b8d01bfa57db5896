package importutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

const (
	ColumnDate      = "Date"
	ColumnDetails   = "Details"
	ColumnAmount    = "Amount"
	ColumnDirection = "Debit/Credit"
)

var requiredColumns = []string{ColumnDate, ColumnDetails, ColumnAmount, ColumnDirection}

const DefaultDateFormat = "02/01/2006"

var ErrMissingColumn = errors.New("missing required column")

// ParseError rejects a whole import. Row is 1-based over data rows; 0 means
// the error is not tied to a single row.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString("error processing file: ")
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	switch {
	case e.Column != "" && e.Row > 0:
		fmt.Fprintf(&b, "invalid %s %q: ", e.Column, e.Value)
	case e.Column != "":
		fmt.Fprintf(&b, "column %q: ", e.Column)
	}
	b.WriteString(e.Err.Error())

	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Options struct {
	// DateFormat is the time layout of the Date column.
	DateFormat string
}

type columns struct {
	date, details, amount, direction int
}

// Ingest converts parsed rows into transactions. Either every row converts or
// no transaction is returned.
func Ingest(data *ParsedData, opts Options) ([]transaction.Transaction, error) {
	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}

	cols, err := findColumns(data.Headers)
	if err != nil {
		return nil, err
	}

	transactions := make([]transaction.Transaction, 0, len(data.Rows))
	for i, row := range data.Rows {
		tx, rowErr := ingestRow(row, len(data.Headers), cols, layout)
		if rowErr != nil {
			rowErr.Row = i + 1
			return nil, rowErr
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func findColumns(headers []string) (columns, error) {
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if _, ok := index[header]; !ok {
			index[header] = i
		}
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return columns{}, &ParseError{Column: column, Err: ErrMissingColumn}
		}
	}

	return columns{
		date:      index[ColumnDate],
		details:   index[ColumnDetails],
		amount:    index[ColumnAmount],
		direction: index[ColumnDirection],
	}, nil
}

func ingestRow(row []string, width int, cols columns, layout string) (transaction.Transaction, *ParseError) {
	if len(row) != width {
		return transaction.Transaction{}, &ParseError{
			Err: fmt.Errorf("expected %d fields, got %d", width, len(row)),
		}
	}

	dateStr := row[cols.date]
	date, err := time.Parse(layout, strings.TrimSpace(dateStr))
	if err != nil {
		return transaction.Transaction{}, &ParseError{Column: ColumnDate, Value: dateStr, Err: err}
	}

	amountStr := row[cols.amount]
	amount, err := parseAmount(amountStr)
	if err != nil {
		return transaction.Transaction{}, &ParseError{Column: ColumnAmount, Value: amountStr, Err: err}
	}

	directionStr := row[cols.direction]
	direction, err := transaction.ParseDirection(directionStr)
	if err != nil {
		return transaction.Transaction{}, &ParseError{Column: ColumnDirection, Value: directionStr, Err: err}
	}

	return transaction.Transaction{
		Date:        date,
		Description: row[cols.details],
		Amount:      amount,
		Direction:   direction,
		Category:    category.Uncategorized,
	}, nil
}

// parseAmount parses a signed decimal that may include thousands separators.
func parseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(amountStr, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "\u2212", "-")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return decimal.Zero, errors.New("amount is empty")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount: %w", err)
	}

	return amount, nil
}
