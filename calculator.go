package inflation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// InflationResult is the effect of inflation on an amount between two years.
//
//	AdjustedAmount = Amount × EndValue / StartValue
//	PercentChange  = (EndValue − StartValue) / StartValue × 100
type InflationResult struct {
	StartYear      int
	EndYear        int
	Category       string
	StartValue     float64
	EndValue       float64
	Amount         Money
	AdjustedAmount Money
	PercentChange  Percent
}

// ComputeInflation rescales amount by the ratio of endValue to startValue.
//
// It fails with ErrUndefinedInflation when startValue is zero, or when either
// value is not a finite number. Validating the amount is the caller's job.
func ComputeInflation(startValue, endValue float64, amount Money) (InflationResult, error) {
	if !finite(startValue) || !finite(endValue) {
		return InflationResult{}, fmt.Errorf("%w: index values %v and %v", ErrUndefinedInflation, startValue, endValue)
	}
	if startValue == 0 {
		return InflationResult{}, fmt.Errorf("%w: start index value is zero", ErrUndefinedInflation)
	}

	start := decimal.NewFromFloat(startValue)
	end := decimal.NewFromFloat(endValue)
	hundred := decimal.NewFromInt(100)

	adjusted := amount.value.Mul(end).Div(start)
	change := end.Sub(start).Div(start).Mul(hundred)

	return InflationResult{
		StartValue:     startValue,
		EndValue:       endValue,
		Amount:         amount,
		AdjustedAmount: Money{value: adjusted, cur: amount.cur},
		PercentChange:  Percent(change.InexactFloat64()),
	}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
