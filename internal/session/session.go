package session

import (
	"fmt"
	"io"
	"time"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/correction"
	importutil "github.com/GustavoCaso/spendsort/internal/import"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/matcher"
	"github.com/GustavoCaso/spendsort/internal/report"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

type Options struct {
	DateFormat string
	Currency   string
}

// Session owns the category store for the lifetime of the process and runs
// uploads through the ingest, categorize and correct pipeline.
type Session struct {
	store   *category.Store
	logger  *logger.Logger
	options Options
}

// Upload is the categorized snapshot of one uploaded file.
type Upload struct {
	ID           string                    `json:"id"`
	Filename     string                    `json:"filename"`
	Transactions []transaction.Transaction `json:"transactions"`
	CreatedAt    time.Time                 `json:"created_at"`
}

func New(store *category.Store, logger *logger.Logger, options Options) *Session {
	if options.DateFormat == "" {
		options.DateFormat = importutil.DefaultDateFormat
	}

	return &Session{
		store:   store,
		logger:  logger,
		options: options,
	}
}

func (s *Session) Store() *category.Store {
	return s.store
}

func (s *Session) Options() Options {
	return s.options
}

// Ingest parses the file read from reader and categorizes every row with the
// keywords currently in the store.
func (s *Session) Ingest(filename string, reader io.Reader) (*Upload, error) {
	data, err := importutil.ParseFile(filename, reader)
	if err != nil {
		return nil, err
	}

	transactions, err := importutil.Ingest(data, importutil.Options{DateFormat: s.options.DateFormat})
	if err != nil {
		return nil, err
	}

	categorized := matcher.Categorize(transactions, s.store)

	uncategorized := 0
	for _, tx := range categorized {
		if tx.Category == category.Uncategorized {
			uncategorized++
		}
	}

	s.logger.Info("File ingested",
		"filename", filename,
		"transactions", len(categorized),
		"uncategorized", uncategorized,
	)

	return &Upload{
		Filename:     filename,
		Transactions: categorized,
		CreatedAt:    time.Now(),
	}, nil
}

// Correct applies corrections to upload and returns the resulting upload.
// upload itself is left untouched.
func (s *Session) Correct(upload *Upload, corrections []correction.Correction) (*Upload, correction.Result, error) {
	result, err := correction.ApplyAll(upload.Transactions, corrections, s.store)
	if err != nil {
		return nil, result, fmt.Errorf("applying corrections to %s: %w", upload.Filename, err)
	}

	for name, keywords := range result.Learned {
		s.logger.Info("Keywords learned", "category", name, "keywords", keywords)
	}

	return &Upload{
		ID:           upload.ID,
		Filename:     upload.Filename,
		Transactions: result.Transactions,
		CreatedAt:    upload.CreatedAt,
	}, result, nil
}

// Report summarizes upload in the session currency.
func (s *Session) Report(upload *Upload) report.Report {
	r := report.Generate(upload.Transactions)
	r.Currency = s.options.Currency
	return r
}
