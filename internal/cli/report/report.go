package report

import (
	"embed"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"text/template"

	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
	"github.com/GustavoCaso/spendsort/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

type reportCommand struct {
	file    string
	verbose bool
	out     io.Writer
}

func NewCommand() cli.Command {
	return &reportCommand{out: os.Stdout}
}

func (c *reportCommand) Description() string {
	return "Displays how the expenses of a bank statement split across categories"
}

func (c *reportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to report on")
	fs.BoolVar(&c.verbose, "v", false, "show verbose report output")
}

func (c *reportCommand) Run(s *session.Session, logger *logger.Logger) error {
	upload, err := cli.IngestFile(s, c.file)
	if err != nil {
		return fmt.Errorf("unable to read transactions: %w", err)
	}

	r := s.Report(upload)
	r.Verbose = c.verbose

	logger.Debug("Report generated", "file", c.file, "categories", len(r.Expenses))

	err = renderTemplate(c.out, "report.tmpl", r)
	if err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}

	return nil
}

var templateFuncs = template.FuncMap{
	"formatMoney":    util.FormatMoney,
	"formatCurrency": util.FormatCurrency,
	"colorOutput":    util.ColorOutput,
	"amountColor":    util.AmountColor,
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return err
	}
	return t.Execute(out, value)
}
