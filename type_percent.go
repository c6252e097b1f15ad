package inflation

import (
	"fmt"
	"math"
)

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// Abs returns the magnitude of p.
func (p Percent) Abs() Percent { return Percent(math.Abs(float64(p))) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// Direction describes the sign of p as a verb: "increased", "decreased" or
// "remained unchanged". Values that round to 0.00% are unchanged.
func (p Percent) Direction() string {
	switch {
	case p.SignedString() == "-":
		return "remained unchanged"
	case p > 0:
		return "increased"
	default:
		return "decreased"
	}
}
