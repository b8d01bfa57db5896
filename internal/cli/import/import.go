package importcmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/export"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
	"github.com/GustavoCaso/spendsort/internal/transaction"
	"github.com/GustavoCaso/spendsort/internal/util"
)

type importCommand struct {
	file   string
	output string
	out    io.Writer
}

func NewCommand() cli.Command {
	return &importCommand{out: os.Stdout}
}

func (c *importCommand) Description() string {
	return "Categorizes the transactions of a bank statement"
}

func (c *importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to import")
	fs.StringVar(&c.output, "o", "", "write the categorized transactions to this .csv or .json file")
}

func (c *importCommand) Run(s *session.Session, logger *logger.Logger) error {
	upload, err := cli.IngestFile(s, c.file)
	if err != nil {
		return fmt.Errorf("unable to import transactions: %w", err)
	}

	logger.Debug("Upload categorized", "file", c.file, "transactions", len(upload.Transactions))

	currency := s.Options().Currency
	for i, tx := range upload.Transactions {
		fmt.Fprintf(c.out, "%3d  %s  %-30s %15s  %-6s %s\n",
			i,
			tx.Date.Format("2006-01-02"),
			tx.Description,
			util.FormatCurrency(tx.Amount, currency),
			tx.Direction,
			tx.Category,
		)
	}

	fmt.Fprintf(c.out, "\nTotal transactions categorized: %d\n", len(upload.Transactions))

	inspect(c.out, upload.Transactions, currency)

	if c.output != "" {
		if err = writeOutput(c.output, s.Options().DateFormat, upload.Transactions); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Categorized transactions written to %s\n", c.output)
	}

	return nil
}

func writeOutput(path, dateFormat string, transactions []transaction.Transaction) error {
	format, err := export.ParseFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}

	err = export.Write(f, format, dateFormat, transactions)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	return err
}

type uncategorized struct {
	description string
	rows        []transaction.Transaction
}

// inspect lists the descriptions left uncategorized, the most frequent first.
func inspect(writer io.Writer, transactions []transaction.Transaction, currency string) {
	grouped := []*uncategorized{}
	index := map[string]*uncategorized{}

	for _, tx := range transactions {
		if tx.Category != category.Uncategorized {
			continue
		}

		key := category.Normalize(tx.Description)
		group, ok := index[key]
		if !ok {
			group = &uncategorized{description: tx.Description}
			index[key] = group
			grouped = append(grouped, group)
		}
		group.rows = append(group.rows, tx)
	}

	if len(grouped) == 0 {
		fmt.Fprintln(writer, "No transactions without category")
		return
	}

	slices.SortStableFunc(grouped, func(a, b *uncategorized) int {
		return len(b.rows) - len(a.rows)
	})

	var total int

	fmt.Fprintln(writer, "The following transactions have no category:")
	for _, group := range grouped {
		fmt.Fprintf(writer, "%s -> %d\n", group.description, len(group.rows))
		total += len(group.rows)

		for _, tx := range group.rows {
			fmt.Fprintf(writer, "\t[%s] %s\n", tx.Date.Format("2006-01-02"), util.FormatCurrency(tx.Amount, currency))
		}
	}

	fmt.Fprintf(writer, "\nThere are a total of %d uncategorized transactions\n", total)
}
