package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/inflation"
	"github.com/etnz/inflation/config"
)

// queryFlags are the analysis inputs shared by the subcommands.
type queryFlags struct {
	category string
	from     int
	to       int
	amount   string
}

func (q *queryFlags) SetFlags(f *flag.FlagSet) {
	q.setRangeFlags(f)
	f.StringVar(&q.amount, "amount", "", "Amount of money in the start year. Defaults to dashboard.amount.")
}

// setRangeFlags registers the category and year flags only.
func (q *queryFlags) setRangeFlags(f *flag.FlagSet) {
	f.StringVar(&q.category, "c", "", "CPI category. Defaults to the first category of the dataset.")
	f.IntVar(&q.from, "from", 0, "Start year. Defaults to the first year of the dataset.")
	f.IntVar(&q.to, "to", 0, "End year, strictly after the start year. Defaults to the last year of the dataset.")
}

// Query resolves the flags against the dataset and the configuration, and
// validates the result.
func (q *queryFlags) Query(s *inflation.Series, cfg *config.Config) (inflation.Query, error) {
	query, err := q.RangeQuery(s)
	if err != nil {
		return query, err
	}
	if q.amount == "" {
		query.Amount = inflation.M(cfg.Dashboard.Amount, cfg.Data.Currency)
	} else {
		amount, err := inflation.ParseMoney(q.amount, cfg.Data.Currency)
		if err != nil {
			return query, fmt.Errorf("%w: %v", inflation.ErrInvalidAmount, err)
		}
		query.Amount = amount
	}
	return query, query.Validate()
}

// RangeQuery resolves the category and the years, without amount. The range
// is not validated.
func (q *queryFlags) RangeQuery(s *inflation.Series) (inflation.Query, error) {
	query := inflation.Query{Category: q.category, StartYear: q.from, EndYear: q.to}

	if query.Category == "" {
		categories := s.Categories()
		if len(categories) == 0 {
			return query, fmt.Errorf("%w: no category", inflation.ErrSchema)
		}
		query.Category = categories[0]
	}
	if !s.Schema().Has(query.Category) {
		return query, fmt.Errorf("%w: %q, see the categories command", inflation.ErrUnknownCategory, query.Category)
	}

	years := s.Years()
	if len(years) > 0 {
		if query.StartYear == 0 {
			query.StartYear = years[0]
		}
		if query.EndYear == 0 {
			query.EndYear = years[len(years)-1]
		}
	}
	return query, nil
}
