// Package utils provides utility functions for the scheme recommendation engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader errors
var (
	ErrEmptyCSV  = errors.New("CSV content is empty")
	ErrNoHeader  = errors.New("CSV file has no header row")
	ErrNoDataRow = errors.New("CSV file contains no data rows")
)

// RawTable is a loosely-structured table of string-keyed rows, the input
// shape the normalizer expects. Keys are the trimmed header names as they
// appeared in the source.
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// LoadTable reads CSV content into a RawTable. The reader is
// deliberately tolerant: stray quotes are accepted, short rows are
// padded with empty strings, long rows are truncated to the header
// width and invalid UTF-8 bytes are dropped. A line the reader still
// rejects is skipped and reported in the returned error slice rather
// than aborting the load.
func LoadTable(r io.Reader) (*RawTable, []error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, []error{ErrEmptyCSV}
	}
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = scrub(strings.TrimSpace(h))
	}

	table := &RawTable{Headers: headers}
	var loadErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			loadErrors = append(loadErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = scrub(record[i])
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		loadErrors = append(loadErrors, ErrNoDataRow)
	}

	return table, loadErrors
}

// LoadTableString reads CSV content from a string.
func LoadTableString(content string) (*RawTable, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}
	return LoadTable(strings.NewReader(content))
}

// LoadTableFile reads CSV content from a file on disk.
func LoadTableFile(path string) (*RawTable, []error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to open dataset: %w", err)}
	}
	defer f.Close()

	return LoadTable(f)
}

// scrub drops invalid UTF-8 bytes from a field value.
func scrub(s string) string {
	return strings.ToValidUTF8(s, "")
}
