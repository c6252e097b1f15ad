package inflation

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Series is a cleaned CPI time series, sorted by date. It is read-only.
type Series struct {
	schema  Schema
	records []Record
}

// Point is the yearly mean of a category.
type Point struct {
	Year     int
	Category string
	Mean     float64
}

// Observation is a single dated value of a category.
type Observation struct {
	Date  time.Time
	Value float64
}

// Schema returns the schema the series was cleaned with.
func (s *Series) Schema() Schema { return s.schema }

// Len returns the number of records.
func (s *Series) Len() int { return len(s.records) }

// Records returns the records in chronological order.
func (s *Series) Records() []Record { return slices.Clone(s.records) }

// Categories returns the selectable categories in table order.
func (s *Series) Categories() []string { return s.schema.CategoryNames() }

// Years returns the distinct years present in the series, ascending.
func (s *Series) Years() []int {
	var years []int
	for _, r := range s.records {
		if n := len(years); n == 0 || years[n-1] != r.Year {
			years = append(years, r.Year)
		}
	}
	// records are sorted by date, years are already ascending and distinct.
	return years
}

func (s *Series) checkCategory(category string) error {
	if !s.schema.Has(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return nil
}

// MeanForYear returns the arithmetic mean of the category values of all the
// records of year. Missing values are ignored. It fails with
// ErrInsufficientData when the year has no value at all.
func (s *Series) MeanForYear(category string, year int) (float64, error) {
	if err := s.checkCategory(category); err != nil {
		return 0, err
	}
	var sum float64
	var n int
	for _, r := range s.records {
		if r.Year != year {
			continue
		}
		if v := r.Values[category]; !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no %q value in %d", ErrInsufficientData, category, year)
	}
	return sum / float64(n), nil
}

// YearlyTrend returns the yearly means of category for every year of the
// inclusive range [start, end] that has data, ascending by year. Years
// without data are omitted.
func (s *Series) YearlyTrend(category string, start, end int) ([]Point, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}
	var trend []Point
	var sum float64
	var n int
	flush := func(year int) {
		if n > 0 {
			trend = append(trend, Point{Year: year, Category: category, Mean: sum / float64(n)})
		}
		sum, n = 0, 0
	}

	current := 0
	for _, r := range s.records {
		if r.Year < start || r.Year > end {
			continue
		}
		if r.Year != current {
			flush(current)
			current = r.Year
		}
		if v := r.Values[category]; !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	flush(current)
	return trend, nil
}

// Observations returns every known value of category in chronological order.
func (s *Series) Observations(category string) ([]Observation, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}
	obs := make([]Observation, 0, len(s.records))
	for _, r := range s.records {
		if v := r.Values[category]; !math.IsNaN(v) {
			obs = append(obs, Observation{Date: r.Date, Value: v})
		}
	}
	return obs, nil
}
