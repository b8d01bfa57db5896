package correct

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/correction"
	"github.com/GustavoCaso/spendsort/internal/session"
	"github.com/GustavoCaso/spendsort/internal/testutil"
)

const statement = `Date,Details,Amount,Debit/Credit
01/01/2024,Coffee Shop,4.50,Debit
02/01/2024,Uber,5.00,Debit
03/01/2024,COFFEE SHOP,3.00,Debit
`

func setup(t *testing.T) (*session.Session, string) {
	t.Helper()

	store := testutil.SetupTestStore(t, map[string][]string{"Dining": {}}, "Dining")
	s := session.New(store, testutil.TestLogger(t), session.Options{})

	file := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(file, []byte(statement), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return s, file
}

func TestSetFlags(t *testing.T) {
	cmd := NewCommand()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)

	for _, name := range []string{"f", "r", "n"} {
		if fs.Lookup(name) == nil {
			t.Errorf("Expected %s flag to be registered", name)
		}
	}

	if fs.Lookup("r").DefValue != "-1" {
		t.Errorf("Row default value = %q, want -1", fs.Lookup("r").DefValue)
	}
}

func TestRun(t *testing.T) {
	s, file := setup(t)

	var out bytes.Buffer
	cmd := &correctCommand{file: file, row: 0, category: "Dining", out: &out}

	if err := cmd.Run(s, testutil.TestLogger(t)); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, `Learned keyword "Coffee Shop" for "Dining"`) {
		t.Errorf("output missing learned keyword:\n%s", output)
	}
	if !strings.Contains(output, `2 transactions in `) {
		t.Errorf("output missing changed count:\n%s", output)
	}

	keywords, _ := s.Store().Keywords("Dining")
	if len(keywords) != 1 || keywords[0] != "Coffee Shop" {
		t.Errorf("Keywords(Dining) = %v, want [Coffee Shop]", keywords)
	}

	// running it again finds the row already categorized
	out.Reset()
	if err := cmd.Run(s, testutil.TestLogger(t)); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `is already categorized as "Dining"`) {
		t.Errorf("second run output = %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	s, file := setup(t)

	tests := []struct {
		name  string
		cmd   correctCommand
		check func(error) bool
	}{
		{
			name:  "row out of range",
			cmd:   correctCommand{file: file, row: 10, category: "Dining"},
			check: func(err error) bool { return errors.Is(err, correction.ErrInvalidIndex) },
		},
		{
			name: "unknown category",
			cmd:  correctCommand{file: file, row: 1, category: "Travel"},
			check: func(err error) bool {
				var unknown *category.UnknownCategoryError
				return errors.As(err, &unknown)
			},
		},
		{
			name:  "no file",
			cmd:   correctCommand{row: 0, category: "Dining"},
			check: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
			cmd.out = &bytes.Buffer{}

			err := cmd.Run(s, testutil.TestLogger(t))
			if err == nil || !tt.check(err) {
				t.Errorf("Run() error = %v", err)
			}
		})
	}
}
