package category

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	categoryPkg "github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
	"github.com/GustavoCaso/spendsort/internal/util"
)

type categoryCommand struct {
	action  string
	name    string
	keyword string
	out     io.Writer
}

func NewCommand() cli.Command {
	return &categoryCommand{out: os.Stdout}
}

func (c *categoryCommand) Description() string {
	return "Allows to interact with the categories and their keywords."
}

func (c *categoryCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.action, "a", "list", "What action to perform. Supported values are: list, add, keyword, conflicts")
	fs.StringVar(&c.name, "n", "", "Category name")
	fs.StringVar(&c.keyword, "k", "", "Keyword to add to the category")
}

func (c *categoryCommand) Run(s *session.Session, logger *logger.Logger) error {
	store := s.Store()

	switch c.action {
	case "list":
		list(c.out, store)
	case "add":
		added, err := store.AddCategory(c.name)
		if err != nil {
			return fmt.Errorf("unable to add category: %w", err)
		}
		if added {
			fmt.Fprintf(c.out, "Category %q created\n", strings.TrimSpace(c.name))
		} else {
			fmt.Fprintf(c.out, "Category %q already exists\n", strings.TrimSpace(c.name))
		}
	case "keyword":
		if c.keyword == "" {
			return errors.New("you must provide a keyword with -k")
		}
		added, err := store.AddKeyword(c.name, c.keyword)
		if err != nil {
			return fmt.Errorf("unable to add keyword: %w", err)
		}
		if added {
			fmt.Fprintf(c.out, "Keyword %q added to %q\n", strings.TrimSpace(c.keyword), c.name)
		} else {
			fmt.Fprintf(c.out, "Keyword %q already present in %q\n", strings.TrimSpace(c.keyword), c.name)
		}
	case "conflicts":
		conflicts(c.out, store)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}

	logger.Debug("Category command finished", "action", c.action)

	return nil
}

func list(writer io.Writer, store *categoryPkg.Store) {
	for _, entry := range store.Snapshot() {
		fmt.Fprintf(writer, "%s (%d)\n", util.ColorOutput(entry.Name, "bold"), len(entry.Keywords))
		for _, keyword := range entry.Keywords {
			fmt.Fprintf(writer, "\t%s\n", keyword)
		}
	}
}

func conflicts(writer io.Writer, store *categoryPkg.Store) {
	found := store.Conflicts()
	if len(found) == 0 {
		fmt.Fprintln(writer, "No keyword is claimed by more than one category")
		return
	}

	keywords := slices.Sorted(maps.Keys(found))
	for _, keyword := range keywords {
		names := found[keyword]
		fmt.Fprintf(writer, "%s -> %s (%s wins)\n",
			keyword,
			strings.Join(names, ", "),
			util.ColorOutput(names[0], "yellow"),
		)
	}
}
