package intrinsic

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case decimal.Decimal:
		d = v
	}
	return Money{value: d, cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value rounded to the currency's minor unit, with its symbol.
//
// It follows go-money's formatting rules but keeps decimal digits, so values
// beyond the int64 range of minor units are printed exactly.
func (m Money) String() string {
	cur := m.currency()
	f := cur.Formatter()
	digits := m.value.Abs().Shift(int32(f.Fraction)).Round(0).String()
	if len(digits) <= f.Fraction {
		digits = strings.Repeat("0", f.Fraction-len(digits)+1) + digits
	}
	if f.Thousand != "" {
		for i := len(digits) - f.Fraction - 3; i > 0; i -= 3 {
			digits = digits[:i] + f.Thousand + digits[i:]
		}
	}
	if f.Fraction > 0 {
		digits = digits[:len(digits)-f.Fraction] + f.Decimal + digits[len(digits)-f.Fraction:]
	}
	s := strings.Replace(f.Template, "1", digits, 1)
	s = strings.Replace(s, "$", f.Grapheme, 1)
	if m.value.Round(int32(f.Fraction)).IsNegative() {
		s = "-" + s
	}
	return s
}

func (m Money) Currency() string       { return m.cur }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }
func (m Money) AsFloat() float64       { return m.value.InexactFloat64() }
func (m Money) Value() decimal.Decimal { return m.value }

// DefaultCurrency guesses the trading currency of a ticker when no provider tells it.
//
// Tokyo listed tickers (7203.T, 7203.TSE) are in yen, anything else is assumed in dollars.
func DefaultCurrency(ticker string) string {
	t := strings.ToUpper(ticker)
	if strings.HasSuffix(t, ".T") || strings.HasSuffix(t, ".TSE") {
		return "JPY"
	}
	return "USD"
}
