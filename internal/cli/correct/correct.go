package correct

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/correction"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
)

type correctCommand struct {
	file     string
	row      int
	category string
	out      io.Writer
}

func NewCommand() cli.Command {
	return &correctCommand{out: os.Stdout}
}

func (c *correctCommand) Description() string {
	return "Moves a transaction to another category and learns its description as a keyword"
}

func (c *correctCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file holding the transaction")
	fs.IntVar(&c.row, "r", -1, "row of the transaction, as listed by the import command")
	fs.StringVar(&c.category, "n", "", "category the transaction belongs to")
}

func (c *correctCommand) Run(s *session.Session, logger *logger.Logger) error {
	upload, err := cli.IngestFile(s, c.file)
	if err != nil {
		return fmt.Errorf("unable to read transactions: %w", err)
	}

	corrected, result, err := s.Correct(upload, []correction.Correction{{Index: c.row, Category: c.category}})
	if err != nil {
		return err
	}

	tx := corrected.Transactions[c.row]
	if upload.Transactions[c.row].Category == tx.Category {
		fmt.Fprintf(c.out, "%q is already categorized as %q\n", tx.Description, tx.Category)
		return nil
	}

	changed := 0
	for i := range corrected.Transactions {
		if corrected.Transactions[i].Category != upload.Transactions[i].Category {
			changed++
		}
	}

	logger.Debug("Correction applied", "row", c.row, "category", c.category, "changed", changed)

	for _, keyword := range result.Learned[tx.Category] {
		fmt.Fprintf(c.out, "Learned keyword %q for %q\n", keyword, tx.Category)
	}
	fmt.Fprintf(c.out, "%d transactions in %s are now categorized as %q\n", changed, c.file, tx.Category)

	return nil
}
