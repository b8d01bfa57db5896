package category

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// JSONFile persists the mapping as a JSON object of category name to keyword list.
// Key order in the file is the category order.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

func (f *JSONFile) Load() ([]Entry, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := decodeEntries(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", f.Path, err)
	}

	return entries, nil
}

// Save replaces the file atomically so a failed write never leaves a truncated mapping behind.
func (f *JSONFile) Save(entries []Entry) error {
	content, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".categories-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.Path)
}

func decodeEntries(r io.Reader) ([]Entry, error) {
	decoder := json.NewDecoder(r)

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	entries := []Entry{}
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, err
		}

		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", token)
		}

		var keywords []string
		if err = decoder.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}

		entries = append(entries, Entry{Name: name, Keywords: keywords})
	}

	if _, err = decoder.Token(); err != nil {
		return nil, err
	}

	return entries, nil
}

func encodeEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("{\n")
	for i, entry := range entries {
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}

		keywords := entry.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		list, err := json.Marshal(keywords)
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(list)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
