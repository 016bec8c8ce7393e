// Package usage provides usage projection.
// Daily usage estimates are turned into monthly usage and monthly cost
// strings ready for a quotation cell.
package usage

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"quote-report/core/catalog"
	"quote-report/core/discount"
	"quote-report/core/types"
)

// Missing is rendered wherever a value cannot be computed
const Missing = "-"

// Projector projects daily usage over a month
type Projector struct {
	// Days is the number of billable days in a month
	Days int

	// Currency prefixes formatted costs
	Currency string
}

// DefaultProjector uses 30-day months priced in yuan
func DefaultProjector() Projector {
	return Projector{Days: 30, Currency: "¥"}
}

func (p Projector) days() decimal.Decimal {
	return decimal.NewFromInt(int64(p.Days))
}

// ParseDaily parses a daily usage string. ok is false for blank or
// non-numeric input.
func ParseDaily(daily types.Text) (decimal.Decimal, bool) {
	a := types.ParseAmount(string(daily))
	return a.Decimal, a.Valid
}

// MonthlyUsage returns daily × days. The result is written as an integer
// only when it is whole and the input carried no decimal point or
// exponent; otherwise it keeps a fractional part, ".0" for whole values.
// Zero is always "0".
func (p Projector) MonthlyUsage(daily types.Text) string {
	d, ok := ParseDaily(daily)
	if !ok {
		return Missing
	}
	monthly := d.Mul(p.days())
	if monthly.IsZero() {
		return "0"
	}

	fractional := strings.ContainsAny(string(daily), ".eE")
	if !monthly.IsInteger() {
		return monthly.String()
	}
	if fractional {
		return monthly.StringFixed(0) + ".0"
	}
	return monthly.StringFixed(0)
}

// MonthlyCost prices a month of usage at the discounted rate. Token
// categories bill input plus output price, a missing side counting as
// zero; other categories bill the non-token price. Missing prices and
// blank, non-numeric or non-positive usage yield Missing.
func (p Projector) MonthlyCost(price types.NormalizedPrice, daily types.Text, pct decimal.Decimal, priceType catalog.PriceType) string {
	cost, ok := p.MonthlyAmount(price, daily, pct, priceType)
	if !ok {
		return Missing
	}
	return p.FormatMoney(cost)
}

// MonthlyAmount is MonthlyCost before formatting
func (p Projector) MonthlyAmount(price types.NormalizedPrice, daily types.Text, pct decimal.Decimal, priceType catalog.PriceType) (decimal.Decimal, bool) {
	d, ok := ParseDaily(daily)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}

	var unit decimal.Decimal
	if priceType.IsToken() {
		if !price.HasTokenPrice() {
			return decimal.Zero, false
		}
		unit = price.InputPrice.OrZero().Add(price.OutputPrice.OrZero())
	} else {
		if !price.NonTokenPrice.Valid {
			return decimal.Zero, false
		}
		unit = price.NonTokenPrice.Decimal
	}

	return unit.Mul(d).Mul(p.days()).Mul(discount.Rate(pct)), true
}

// FormatMoney renders an amount with two decimals and grouped thousands,
// e.g. "¥4,320.00". Halves round to even.
func (p Projector) FormatMoney(amount decimal.Decimal) string {
	rounded := amount.RoundBank(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := humanize.BigComma(rounded.Truncate(0).BigInt())
	fixed := rounded.StringFixed(2)
	return p.Currency + sign + whole + fixed[len(fixed)-3:]
}

// FormatPrice renders a unit price with four decimals, e.g. "¥0.0400"
func (p Projector) FormatPrice(price decimal.Decimal) string {
	return p.Currency + price.StringFixedBank(4)
}
