package dataset

import (
	"context"
	"fmt"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetOptions identifies a range in a Google spreadsheet.
type SheetOptions struct {
	SpreadsheetID string
	Range         string // A1 notation, "Sheet1" or "Sheet1!A:Z". Defaults to the first sheet.
	APIKey        string // enough for publicly shared spreadsheets.
}

// ReadSheet reads a table from a Google spreadsheet.
func ReadSheet(ctx context.Context, opts SheetOptions) (*Table, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}

	var clientOpts []goption.ClientOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, goption.WithAPIKey(opts.APIKey))
	}
	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	rng := opts.Range
	if rng == "" {
		rng = "A:ZZ"
	}
	resp, err := svc.Spreadsheets.Values.Get(opts.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %q of spreadsheet %s: %w", rng, opts.SpreadsheetID, err)
	}
	return valuesTable(resp.Values)
}

// valuesTable converts the loosely typed sheet values into a Table.
func valuesTable(values [][]any) (*Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet range is empty")
	}
	rows := make([][]string, 0, len(values))
	for _, vs := range values {
		row := make([]string, len(vs))
		for i, v := range vs {
			row[i] = cell(v)
		}
		rows = append(rows, row)
	}
	return newTable(rows[0], rows[1:])
}
