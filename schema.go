package inflation

import (
	"fmt"
	"slices"
	"strings"
)

// Schema declares the role of each column of a CPI table.
//
// The published layout is positional: Sector, Year and Month come first, the
// general index comes last, and everything in between is a selectable
// category, in table order.
type Schema struct {
	Sector     string
	Year       string
	Month      string
	Categories []string
	General    string
}

// SchemaFromHeader derives the Schema of a table from its header, checking
// that it follows the published layout.
func SchemaFromHeader(header []string) (Schema, error) {
	if len(header) < 5 {
		return Schema{}, fmt.Errorf("%w: got %d columns, want Sector, Year, Month, at least one category and the general index", ErrSchema, len(header))
	}
	for i, want := range []string{"Sector", "Year", "Month"} {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return Schema{}, fmt.Errorf("%w: column %d is %q, want %q", ErrSchema, i+1, header[i], want)
		}
	}
	s := Schema{
		Sector:     header[0],
		Year:       header[1],
		Month:      header[2],
		Categories: slices.Clone(header[3 : len(header)-1]),
		General:    header[len(header)-1],
	}
	if err := s.Validate(header); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate checks that every column declared by s exists in header, and that
// names are unique.
func (s Schema) Validate(header []string) error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("%w: no category column", ErrSchema)
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return fmt.Errorf("%w: duplicate column %q", ErrSchema, h)
		}
		seen[h] = true
	}
	for _, col := range s.columns() {
		if col == "" {
			continue // the general index is optional in explicit schemas.
		}
		if !seen[col] {
			return fmt.Errorf("%w: missing column %q", ErrSchema, col)
		}
	}
	return nil
}

// columns lists all declared columns.
func (s Schema) columns() []string {
	cols := []string{s.Sector, s.Year, s.Month}
	cols = append(cols, s.Categories...)
	return append(cols, s.General)
}

// CategoryNames returns the selectable categories in table order.
func (s Schema) CategoryNames() []string { return slices.Clone(s.Categories) }

// Has reports whether category is a selectable category.
func (s Schema) Has(category string) bool { return slices.Contains(s.Categories, category) }
