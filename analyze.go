package inflation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultAmount is the amount analyzed when the user does not provide one.
const DefaultAmount = 1000

// Query holds the user inputs of an analysis.
type Query struct {
	Category  string
	StartYear int
	EndYear   int
	Amount    Money
}

// Validate checks the query boundaries: the start year must be strictly
// before the end year, and the amount at least 1.
func (q Query) Validate() error {
	if err := q.ValidateRange(); err != nil {
		return err
	}
	if q.Amount.value.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, q.Amount.value)
	}
	return nil
}

// ValidateRange checks that the start year is strictly before the end year.
func (q Query) ValidateRange() error {
	if q.StartYear >= q.EndYear {
		return fmt.Errorf("%w: got %d to %d", ErrInvalidRange, q.StartYear, q.EndYear)
	}
	return nil
}

// Aggregator computes yearly figures of a CPI series. *Series implements it.
type Aggregator interface {
	MeanForYear(category string, year int) (float64, error)
	YearlyTrend(category string, start, end int) ([]Point, error)
	Observations(category string) ([]Observation, error)
}

// Report is the complete answer to a Query.
type Report struct {
	Query  Query
	Result InflationResult
	Trend  []Point       // yearly means over the query range.
	Chart  []Observation // every value of the category, full range.
}

// Analyze answers q. The query is validated before any aggregation, so an
// invalid range never reaches a.
func Analyze(a Aggregator, q Query) (*Report, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	startValue, err := a.MeanForYear(q.Category, q.StartYear)
	if err != nil {
		return nil, fmt.Errorf("cannot compute the %d mean: %w", q.StartYear, err)
	}
	endValue, err := a.MeanForYear(q.Category, q.EndYear)
	if err != nil {
		return nil, fmt.Errorf("cannot compute the %d mean: %w", q.EndYear, err)
	}

	res, err := ComputeInflation(startValue, endValue, q.Amount)
	if err != nil {
		return nil, err
	}
	res.StartYear, res.EndYear, res.Category = q.StartYear, q.EndYear, q.Category

	trend, err := a.YearlyTrend(q.Category, q.StartYear, q.EndYear)
	if err != nil {
		return nil, err
	}
	chart, err := a.Observations(q.Category)
	if err != nil {
		return nil, err
	}

	return &Report{Query: q, Result: res, Trend: trend, Chart: chart}, nil
}

// Trend answers the trend part of q only. The amount is ignored and years
// without data are skipped, so the range bounds need no data. The Result
// only holds the category and the years.
func Trend(a Aggregator, q Query) (*Report, error) {
	if err := q.ValidateRange(); err != nil {
		return nil, err
	}
	trend, err := a.YearlyTrend(q.Category, q.StartYear, q.EndYear)
	if err != nil {
		return nil, err
	}
	chart, err := a.Observations(q.Category)
	if err != nil {
		return nil, err
	}
	return &Report{
		Query:  q,
		Result: InflationResult{StartYear: q.StartYear, EndYear: q.EndYear, Category: q.Category},
		Trend:  trend,
		Chart:  chart,
	}, nil
}
