package pricing

import (
	"github.com/shopspring/decimal"

	"quote-report/core/types"
)

// PriceUnit is the display unit of token prices
type PriceUnit string

const (
	// PerThousand shows prices per thousand tokens, as stored
	PerThousand PriceUnit = "thousand"

	// PerMillion shows prices per million tokens
	PerMillion PriceUnit = "million"
)

var thousand = decimal.NewFromInt(1000)

// Label returns the unit label. Unrecognized units read as per-thousand.
func (u PriceUnit) Label() string {
	if u == PerMillion {
		return "百万Token"
	}
	return "千Token"
}

// Convert rescales a per-thousand token price to unit. An unset price
// stays unset; the label is computed either way.
func Convert(price types.Amount, unit PriceUnit) (types.Amount, string) {
	if unit == PerMillion {
		return price.Mul(thousand), unit.Label()
	}
	return price, unit.Label()
}
