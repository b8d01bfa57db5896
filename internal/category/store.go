package category

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/GustavoCaso/spendsort/internal/logger"
)

// Uncategorized is always present in a Store and never used for matching.
const Uncategorized = "Uncategorized"

// Entry is a category and its keywords, in the order they were added.
type Entry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Backend is the durable copy of a Store. Save always receives the whole mapping.
type Backend interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Store owns the category to keyword mapping. Categories keep insertion order,
// which is the order used when resolving a description that several categories claim.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *logger.Logger
	entries []Entry
	index   map[string]int
}

// Load reads the mapping from backend. It never fails: when there is no usable
// persisted state the store starts with only the Uncategorized category.
func Load(backend Backend, logger *logger.Logger) *Store {
	s := &Store{
		backend: backend,
		logger:  logger,
	}

	entries, err := backend.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist) || (err == nil && len(entries) == 0):
		logger.Info("No persisted categories found, creating default store")
		s.reset(nil)
		if saveErr := s.save(); saveErr != nil {
			logger.Warn("Unable to persist default categories", "error", saveErr)
		}
	case err != nil:
		logger.Warn("Unable to load persisted categories, using defaults", "error", err)
		s.reset(nil)
	default:
		s.reset(entries)
	}

	logger.Debug("Categories loaded", "categories", len(s.entries))

	return s
}

func (s *Store) reset(entries []Entry) {
	s.entries = []Entry{{Name: Uncategorized, Keywords: []string{}}}
	s.index = map[string]int{Uncategorized: 0}

	for _, entry := range entries {
		i, ok := s.index[entry.Name]
		if !ok {
			if entry.Name == "" {
				continue
			}
			s.entries = append(s.entries, Entry{Name: entry.Name, Keywords: []string{}})
			i = len(s.entries) - 1
			s.index[entry.Name] = i
		}

		for _, keyword := range entry.Keywords {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" || slices.Contains(s.entries[i].Keywords, keyword) {
				continue
			}
			s.entries[i].Keywords = append(s.entries[i].Keywords, keyword)
		}
	}
}

// Save writes the whole mapping to the backend.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save()
}

func (s *Store) save() error {
	if err := s.backend.Save(cloneEntries(s.entries)); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// AddCategory creates an empty category. Adding an existing name is a no-op.
func (s *Store) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyCategoryName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[name]; ok {
		return false, nil
	}

	s.entries = append(s.entries, Entry{Name: name, Keywords: []string{}})
	s.index[name] = len(s.entries) - 1

	if err := s.save(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		delete(s.index, name)
		return false, err
	}

	s.logger.Info("Category added", "category", name)

	return true, nil
}

// AddKeyword adds keyword to category. It reports false without error when the
// trimmed keyword is empty or already present in that category.
func (s *Store) AddKeyword(category, keyword string) (bool, error) {
	keyword = strings.TrimSpace(keyword)

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[category]
	if !ok {
		return false, &UnknownCategoryError{Name: category}
	}

	if keyword == "" || slices.Contains(s.entries[i].Keywords, keyword) {
		return false, nil
	}

	if owner, claimed := s.claimedBy(keyword, category); claimed {
		s.logger.Warn("Keyword already claimed by another category",
			"keyword", keyword, "category", category, "claimed_by", owner)
	}

	previous := s.entries[i].Keywords
	s.entries[i].Keywords = append(slices.Clip(previous), keyword)

	if err := s.save(); err != nil {
		s.entries[i].Keywords = previous
		return false, err
	}

	s.logger.Info("Keyword added", "category", category, "keyword", keyword)

	return true, nil
}

func (s *Store) claimedBy(keyword, except string) (string, bool) {
	normalized := Normalize(keyword)
	for _, entry := range s.entries {
		if entry.Name == except || entry.Name == Uncategorized {
			continue
		}
		for _, k := range entry.Keywords {
			if Normalize(k) == normalized {
				return entry.Name, true
			}
		}
	}
	return "", false
}

// Categories returns the category names in store order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.entries))
	for i, entry := range s.entries {
		names[i] = entry.Name
	}
	return names
}

func (s *Store) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[name]
	return ok
}

func (s *Store) Keywords(name string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(s.entries[i].Keywords), true
}

// Snapshot returns a deep copy of the mapping in store order.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneEntries(s.entries)
}

// Conflicts returns the normalized keywords that more than one category claims,
// with the claiming categories in store order. The first one wins when matching.
func (s *Store) Conflicts() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := map[string][]string{}
	for _, entry := range s.entries {
		if entry.Name == Uncategorized {
			continue
		}
		for _, keyword := range entry.Keywords {
			normalized := Normalize(keyword)
			if !slices.Contains(claims[normalized], entry.Name) {
				claims[normalized] = append(claims[normalized], entry.Name)
			}
		}
	}

	conflicts := map[string][]string{}
	for keyword, categories := range claims {
		if len(categories) > 1 {
			conflicts[keyword] = categories
		}
	}
	return conflicts
}

// Normalize is the form used to compare keywords and descriptions.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cloneEntries(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	for i, entry := range entries {
		keywords := slices.Clone(entry.Keywords)
		if keywords == nil {
			keywords = []string{}
		}
		result[i] = Entry{Name: entry.Name, Keywords: keywords}
	}
	return result
}
