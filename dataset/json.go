package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// JSONOptions locates the table inside a JSON document.
//
// The defaults match the open government data API layout:
//
//	{"field": [{"id": "sector"}, ...], "records": [{"sector": "Rural", ...}, ...]}
type JSONOptions struct {
	Records string // path to the list of record objects.
	Fields  string // path to the ordered list of column names.
}

const (
	DefaultJSONRecords = "$.records"
	DefaultJSONFields  = "$.field[*].id"
)

// ReadJSON reads a table out of a JSON document.
//
// Column order matters for the CPI schema and JSON objects carry none, so the
// header always comes from the Fields path.
func ReadJSON(r io.Reader, opts JSONOptions) (*Table, error) {
	if opts.Records == "" {
		opts.Records = DefaultJSONRecords
	}
	if opts.Fields == "" {
		opts.Fields = DefaultJSONFields
	}

	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	jfields, err := jsonpath.Get(opts.Fields, jobj)
	if err != nil {
		return nil, fmt.Errorf("error reading fields %q: %w", opts.Fields, err)
	}
	fields, ok := jfields.([]any)
	if !ok {
		return nil, fmt.Errorf("fields %q is not a list but %T", opts.Fields, jfields)
	}
	// a wildcard path over a missing or scalar value yields an empty list.
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields %q matched no column", opts.Fields)
	}
	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, cell(f))
	}

	jrecords, err := jsonpath.Get(opts.Records, jobj)
	if err != nil {
		return nil, fmt.Errorf("error reading records %q: %w", opts.Records, err)
	}
	records, ok := jrecords.([]any)
	if !ok {
		return nil, fmt.Errorf("records %q is not a list but %T", opts.Records, jrecords)
	}

	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record #%d is not an object but %T", i, rec)
		}
		row := make([]string, len(header))
		for j, name := range header {
			row[j] = cell(obj[name])
		}
		rows = append(rows, row)
	}
	return newTable(header, rows)
}

// cell converts a decoded JSON scalar into its table representation.
func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
