package inflation

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/inflation/dataset"
)

// Record is one cleaned row of a CPI table.
type Record struct {
	Sector  string
	Year    int
	Month   string // canonical English month name.
	Date    time.Time
	Values  map[string]float64 // index per category, NaN when missing.
	General float64
}

// CleanStats counts what happened to the rows of a table during Clean.
// It is informational only, dropped rows are not errors.
type CleanStats struct {
	Rows            int // rows read.
	Kept            int
	MissingTemporal int // dropped because Year or Month is blank.
	BadYear         int // dropped because Year is not an integer.
	BadDate         int // dropped because Month and Year do not make a date.
}

// Dropped returns the number of rows excluded from the series.
func (s CleanStats) Dropped() int { return s.MissingTemporal + s.BadYear + s.BadDate }

// Load derives the schema from the table header and cleans the table.
func Load(t *dataset.Table) (*Series, CleanStats, error) {
	schema, err := SchemaFromHeader(t.Header)
	if err != nil {
		return nil, CleanStats{}, err
	}
	return Clean(t, schema)
}

// Clean turns a raw table into a Series.
//
// Month names are normalized (see NormalizeMonth). Rows with a blank Year or
// Month, a non integer Year, or a Month and Year that do not parse as a date
// are silently excluded. Records are sorted by date, rows of the same month
// keep their table order.
func Clean(t *dataset.Table, schema Schema) (*Series, CleanStats, error) {
	if err := schema.Validate(t.Header); err != nil {
		return nil, CleanStats{}, err
	}
	col := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		col[h] = i
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	stats := CleanStats{Rows: len(t.Rows)}
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rawYear := strings.TrimSpace(get(row, schema.Year))
		rawMonth := strings.TrimSpace(get(row, schema.Month))
		if rawYear == "" || rawMonth == "" {
			stats.MissingTemporal++
			continue
		}
		year, ok := parseYear(rawYear)
		if !ok {
			stats.BadYear++
			continue
		}
		month := NormalizeMonth(rawMonth)
		date, err := time.Parse("January 2006", month+" "+strconv.Itoa(year))
		if err != nil {
			stats.BadDate++
			continue
		}

		rec := Record{
			Sector: strings.TrimSpace(get(row, schema.Sector)),
			Year:   year,
			Month:  month,
			Date:   date,
			Values: make(map[string]float64, len(schema.Categories)),
		}
		for _, c := range schema.Categories {
			rec.Values[c] = parseValue(get(row, c))
		}
		rec.General = math.NaN()
		if schema.General != "" {
			rec.General = parseValue(get(row, schema.General))
		}
		records = append(records, rec)
	}
	stats.Kept = len(records)

	slices.SortStableFunc(records, func(a, b Record) int { return a.Date.Compare(b.Date) })
	return &Series{schema: schema, records: records}, stats, nil
}

// parseYear accepts "2014" and spreadsheet style "2014.0".
func parseYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// parseValue parses an index value, NaN when the cell is blank or not a number.
func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
