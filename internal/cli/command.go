package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/GustavoCaso/spendsort/internal/config"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
)

var ErrMissingFile = errors.New("you must provide a file with -f")

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(s *session.Session, logger *logger.Logger) error
}

// Configurable commands receive the parsed configuration before Run.
type Configurable interface {
	Configure(conf *config.Config)
}

// IngestFile opens path and runs it through the session pipeline.
func IngestFile(s *session.Session, path string) (*session.Upload, error) {
	if path == "" {
		return nil, ErrMissingFile
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return s.Ingest(path, file)
}
