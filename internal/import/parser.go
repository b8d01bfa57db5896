package importutil

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

const utf8BOM = "\ufeff"

// ParsedData represents the raw data extracted from a file.
type ParsedData struct {
	Headers []string   // Column headers/field names
	Rows    [][]string // Data rows (all values as strings)
	Format  string     // File format (csv or json)
}

// ParseFile parses a CSV or JSON file and extracts headers and rows
// without making assumptions about structure or field mapping.
func ParseFile(filename string, reader io.Reader) (*ParsedData, error) {
	fileFormat := strings.ToLower(path.Ext(filename))

	var data *ParsedData
	var err error

	switch fileFormat {
	case ".csv":
		data, err = parseCSV(reader)
	case ".json":
		data, err = parseJSON(reader)
	default:
		err = fmt.Errorf("unsupported file format: %q", fileFormat)
	}

	if err != nil {
		return nil, &ParseError{Err: err}
	}

	return data, nil
}

// parseCSV reads CSV data and extracts headers and rows.
func parseCSV(reader io.Reader) (*ParsedData, error) {
	r := csv.NewReader(reader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	headers := records[0]
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)

	// a statement with only the header is valid and has no transactions
	rows := records[1:]

	return &ParsedData{
		Headers: headers,
		Rows:    rows,
		Format:  "csv",
	}, nil
}

// parseJSON reads JSON data and extracts headers and rows.
// Expects an array of objects with consistent fields; headers are sorted by name.
func parseJSON(reader io.Reader) (*ParsedData, error) {
	var data []map[string]any

	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	if len(data) == 0 {
		return nil, errors.New("JSON file contains no records")
	}

	headers := make([]string, 0, len(data[0]))
	for key := range data[0] {
		headers = append(headers, key)
	}
	slices.Sort(headers)

	rows := make([][]string, 0, len(data))
	for _, record := range data {
		row := make([]string, len(headers))
		for i, header := range headers {
			if val, ok := record[header]; ok && val != nil {
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		rows = append(rows, row)
	}

	return &ParsedData{
		Headers: headers,
		Rows:    rows,
		Format:  "json",
	}, nil
}
