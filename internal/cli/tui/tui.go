package tui

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/correction"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
	"github.com/GustavoCaso/spendsort/internal/transaction"
)

// rows taken by the table header, status line and help
const reservedLines = 4

var modelStyle = lipgloss.NewStyle().
	Align(lipgloss.Left, lipgloss.Top).
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("69"))

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type tuiCommand struct {
	file string
}

func NewCommand() cli.Command {
	return &tuiCommand{}
}

func (c *tuiCommand) Description() string {
	return "Interactive terminal user interface to correct categories"
}

func (c *tuiCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to categorize")
}

type keymap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Previous key.Binding
	Apply    key.Binding
	Summary  key.Binding
	Exit     key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Previous, k.Apply, k.Summary, k.Exit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Previous},
		{k.Apply, k.Summary, k.Exit},
	}
}

func defaultKeyMap() keymap {
	return keymap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next category"),
		),
		Previous: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "previous category"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply corrections"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle summary"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "exit"),
		),
	}
}

type model struct {
	session *session.Session
	upload  *session.Upload

	// expenses maps table rows to indexes in upload.Transactions.
	expenses []int
	// pending holds the category chosen for a transaction index until applied.
	pending map[int]string

	transactions transactionsTable
	summary      summary
	help         help.Model
	keymap       keymap

	showSummary bool
	status      string

	width  int
	height int
}

func initialModel(s *session.Session, upload *session.Upload, width int, height int) model {
	m := model{
		session: s,
		pending: map[int]string{},
		help:    help.New(),
		keymap:  defaultKeyMap(),
		width:   width,
		height:  height,
	}

	m.transactions = newTransactionsTable(nil, width, m.tableHeight())
	m.setUpload(upload)

	return m
}

func (m *model) setUpload(upload *session.Upload) {
	m.upload = upload
	m.expenses = m.expenses[:0]

	for i, tx := range upload.Transactions {
		if tx.Direction == transaction.Debit {
			m.expenses = append(m.expenses, i)
		}
	}

	m.refreshRows()
	m.summary = newSummary(m.session.Report(upload), m.width, m.tableHeight())
}

func (m *model) refreshRows() {
	currency := m.session.Options().Currency
	rows := make([]table.Row, len(m.expenses))

	for row, index := range m.expenses {
		rows[row] = transactionRow(m.upload.Transactions[index], currency, m.pending[index])
	}

	m.transactions = m.transactions.SetRows(rows)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		m.SetHeight(msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Exit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Summary):
			m.showSummary = !m.showSummary
			return m, nil
		case key.Matches(msg, m.keymap.Next):
			m.cycleCategory(1)
		case key.Matches(msg, m.keymap.Previous):
			m.cycleCategory(-1)
		case key.Matches(msg, m.keymap.Apply):
			m.apply()
		case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down):
			if !m.showSummary {
				m.transactions, cmd = m.transactions.Update(msg)
			}
		}
	}

	m.transactions = m.transactions.UpdateDimensions(m.width, m.tableHeight())
	m.summary = m.summary.UpdateDimensions(m.width, m.tableHeight())

	return m, cmd
}

// cycleCategory moves the selected transaction step categories forward or back.
// Landing on the current category clears the pending change.
func (m *model) cycleCategory(step int) {
	if m.showSummary || len(m.expenses) == 0 {
		return
	}

	categories := m.session.Store().Categories()
	if len(categories) == 0 {
		return
	}

	index := m.expenses[m.transactions.Cursor()]
	tx := m.upload.Transactions[index]

	current := tx.Category
	if pending, ok := m.pending[index]; ok {
		current = pending
	}

	position := slices.Index(categories, current)
	next := categories[(position+step+len(categories))%len(categories)]

	if next == tx.Category {
		delete(m.pending, index)
	} else {
		m.pending[index] = next
	}

	m.status = ""
	m.refreshRows()
}

func (m *model) apply() {
	if len(m.pending) == 0 {
		m.status = "No pending corrections"
		return
	}

	corrections := make([]correction.Correction, 0, len(m.pending))
	for _, index := range slices.Sorted(maps.Keys(m.pending)) {
		corrections = append(corrections, correction.Correction{Index: index, Category: m.pending[index]})
	}

	corrected, result, err := m.session.Correct(m.upload, corrections)
	if err != nil {
		m.status = fmt.Sprintf("Unable to apply corrections: %s", err)
		return
	}

	learned := 0
	for _, keywords := range result.Learned {
		learned += len(keywords)
	}

	clear(m.pending)
	m.setUpload(corrected)
	m.status = fmt.Sprintf("Applied %d corrections, learned %d keywords", len(corrections), learned)
}

func (m model) View() string {
	var main string

	if m.showSummary {
		main = m.summary.View()
	} else {
		main = m.transactions.View()
	}

	status := fmt.Sprintf("%s | %d pending", m.upload.Filename, len(m.pending))
	if m.status != "" {
		status = fmt.Sprintf("%s | %s", status, m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, statusStyle.Render(status), m.help.View(m.keymap))
}

func (m model) tableHeight() int {
	return max(m.height-reservedLines, 1)
}

func (m *model) SetHeight(height int) {
	m.height = height
}

func (m *model) SetWidth(width int) {
	m.width = width
}

func (c *tuiCommand) Run(s *session.Session, _ *logger.Logger) error {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}

	if len(os.Getenv("SPENDSORT_DEBUG")) > 0 {
		f, logErr := tea.LogToFile("debug.log", "debug")
		if logErr != nil {
			return fmt.Errorf("failed to log to file: %w", logErr)
		}
		defer f.Close()
	}

	upload, err := cli.IngestFile(s, c.file)
	if err != nil {
		return fmt.Errorf("unable to read transactions: %w", err)
	}

	m := initialModel(s, upload, w, h)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
