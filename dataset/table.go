// Package dataset reads raw CPI tables from the places they are published:
// local CSV, XLSX and JSON files, Google Sheets, or a plain HTTP download.
//
// Every reader returns the same shape, a Table of strings. Interpretation
// (schema, month names, numbers) belongs to the inflation package.
package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a raw tabular dataset: a header row followed by data rows.
// Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// newTable normalizes the header and pads or truncates rows to its width.
func newTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	t := &Table{Header: make([]string, len(header))}
	for i, h := range header {
		// spreadsheets exported from Windows tools often carry a BOM.
		t.Header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	for _, r := range rows {
		if isBlank(r) {
			continue
		}
		row := make([]string, len(header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Source describes where to read a table from.
//
// Location is a file path, an http(s) URL, or sheets://<spreadsheet-id>/<range>.
// Format forces the decoder ("csv", "xlsx", "json"); it is guessed from the
// location extension when empty.
type Source struct {
	Location string
	Format   string
	Sheet    string // XLSX sheet name, first sheet when empty.
	JSON     JSONOptions
	APIKey   string // Google API key for sheets:// locations.
	CacheDir string // daily cache of http(s) downloads, disabled when empty.
}

// Open reads the table described by src.
func Open(ctx context.Context, src Source) (*Table, error) {
	loc := strings.TrimSpace(src.Location)
	if loc == "" {
		return nil, fmt.Errorf("no data source configured")
	}

	if rest, ok := strings.CutPrefix(loc, "sheets://"); ok {
		id, rng, _ := strings.Cut(rest, "/")
		return ReadSheet(ctx, SheetOptions{SpreadsheetID: id, Range: rng, APIKey: src.APIKey})
	}

	format := src.Format
	if format == "" {
		format = formatOf(loc)
	}

	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		body, err := Fetch(ctx, Daily(src.CacheDir), loc)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		return decode(body, format, src)
	}

	f, err := os.Open(loc)
	if err != nil {
		return nil, fmt.Errorf("could not open data file %q: %w", loc, err)
	}
	defer f.Close()
	t, err := decode(f, format, src)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", loc, err)
	}
	return t, nil
}

func decode(r io.Reader, format string, src Source) (*Table, error) {
	switch format {
	case "csv", "":
		return ReadCSV(r)
	case "xlsx":
		return ReadXLSX(r, src.Sheet)
	case "json":
		return ReadJSON(r, src.JSON)
	default:
		return nil, fmt.Errorf("unsupported data format %q", format)
	}
}

// formatOf guesses the format from a path or URL extension.
func formatOf(loc string) string {
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	switch strings.ToLower(filepath.Ext(loc)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".json":
		return "json"
	default:
		return "csv"
	}
}
