package provider

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PricePlaces   = 2
	PercentPlaces = 4
)

var hundred = decimal.NewFromInt(100)

// Number decodes a numeric JSON field that upstreams encode inconsistently:
// bare numbers, quoted numbers, percentages with a trailing '%', null, or
// junk such as "None". Decoding never fails; Valid is false when the value
// could not be parsed.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	s := string(bytes.TrimSpace(b))
	if s == "null" || s == "" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	n.Value, n.Valid = d, true
	return nil
}

// OrZero returns the value, or zero when it was not parseable.
func (n Number) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

// RoundPrice rounds to PricePlaces.
func RoundPrice(d decimal.Decimal) decimal.Decimal { return d.Round(PricePlaces) }

// ChangePercent derives change / (price - change) * 100, rounded to
// PercentPlaces. A zero previous close yields zero.
func ChangePercent(price, change decimal.Decimal) decimal.Decimal {
	prev := price.Sub(change)
	if prev.IsZero() {
		return decimal.Zero
	}
	return change.Div(prev).Mul(hundred).Round(PercentPlaces)
}
