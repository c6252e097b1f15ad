package inflation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the published Indian CPI series.
const DefaultCurrency = "INR"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money of value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount with its minor units, e.g. "₹1,312.86".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Whole returns the truncated integer amount, e.g. "₹1,312".
func (m Money) Whole() string {
	cur := m.currency()
	f := *cur.Formatter()
	f.Fraction = 0
	return f.Format(m.Truncated())
}

// Symbol returns the currency symbol, e.g. "₹".
func (m Money) Symbol() string { return m.currency().Grapheme }

// Truncated returns the integer part of the amount.
func (m Money) Truncated() int64 { return m.value.IntPart() }

// Simple accessors.

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }

// Deprecated: AsFloat should no longer be used, the purpose is to keep the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// ParseMoney parses a decimal amount like "1000" or "12.50".
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d, cur: currency}, nil
}

// moneyJSON is the wire form of Money, the amount is a decimal string.
type moneyJSON struct {
	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Currency: m.cur, Amount: m.value})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid money %s: %w", data, err)
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
