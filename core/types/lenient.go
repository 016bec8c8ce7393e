// Package types - Request-side data shapes of a quotation
// Inbound JSON is tolerant: identifiers and prices may arrive as numbers or
// strings, and structurally wrong entries are flagged instead of rejected.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Text is a string that also accepts JSON numbers verbatim.
// null, booleans, arrays and objects decode to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n', 't', 'f', '[', '{':
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the raw text
func (t Text) String() string {
	return string(t)
}

// IsBlank reports whether the text is empty or whitespace only
func (t Text) IsBlank() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Or returns t unless it is empty, in which case it returns fallback
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

// Amount is an optional decimal. Numbers and numeric strings are accepted;
// null, blank and unparseable values leave it unset.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount returns a set amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// Magnitudes are limited to the float64 range: |d| < 10^maxMagnitude.
const (
	maxMagnitude = 309
	minMagnitude = -323
)

var maxFloat = decimal.NewFromFloat(math.MaxFloat64)

// ParseAmount parses s, surrounding whitespace allowed. Invalid input yields
// an unset amount. Values beyond the float64 range are unset as well, and
// values too small for it read as zero.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	if d.IsZero() {
		return NewAmount(d)
	}

	// 10^(magnitude-1) <= |d| < 10^magnitude
	magnitude := int64(d.Exponent()) + int64(d.NumDigits())
	switch {
	case magnitude > maxMagnitude:
		return Amount{}
	case magnitude == maxMagnitude && d.Abs().GreaterThan(maxFloat):
		return Amount{}
	case magnitude < minMagnitude:
		return NewAmount(decimal.Zero)
	}
	return NewAmount(d)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*a = ParseAmount(s)
		}
	case 'n', 't', 'f', '[', '{':
	default:
		*a = ParseAmount(string(data))
	}
	return nil
}

// MarshalJSON emits the amount as a JSON number, or null when unset
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// OrZero returns the value, or zero when unset
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal
}

// Mul scales a set amount; unset stays unset
func (a Amount) Mul(factor decimal.Decimal) Amount {
	if !a.Valid {
		return a
	}
	return NewAmount(a.Decimal.Mul(factor))
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

func isArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}
