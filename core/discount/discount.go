// Package discount resolves the discount percent that applies to a model
// spec. A spec-level override beats the report-wide global discount; an
// override of exactly zero is honored like any other value.
package discount

import (
	"github.com/shopspring/decimal"

	"quote-report/core/types"
)

var hundred = decimal.NewFromInt(100)

// Resolve returns the override for (modelID, specID) when the model entry
// is a well-formed mapping holding a numeric value for the spec, and the
// global discount otherwise.
func Resolve(modelID, specID string, overrides types.DiscountOverrides, global decimal.Decimal) decimal.Decimal {
	entry, ok := overrides[modelID]
	if !ok || entry.Malformed {
		return global
	}
	if v, ok := entry.Specs[specID]; ok && v.Valid {
		return v.Decimal
	}
	return global
}

// AnyDiscount reports whether any discount column is needed: the global
// discount is positive or some override is. It is evaluated once per
// report and fixes the column layout of every section.
func AnyDiscount(overrides types.DiscountOverrides, global decimal.Decimal) bool {
	if global.IsPositive() {
		return true
	}
	for _, entry := range overrides {
		if entry.Malformed {
			continue
		}
		for _, v := range entry.Specs {
			if v.Valid && v.Decimal.IsPositive() {
				return true
			}
		}
	}
	return false
}

// Rate is the price multiplier for a discount percent, (100 - pct) / 100
func Rate(pct decimal.Decimal) decimal.Decimal {
	return hundred.Sub(pct).Div(hundred)
}

// Percent renders a discount cell, e.g. "10.0%"
func Percent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// Label renders a discount the way quotes state it: 10% off reads "9.0折".
// Zero or negative discounts read "无折扣".
func Label(pct decimal.Decimal) string {
	if !pct.IsPositive() {
		return "无折扣"
	}
	return decimal.NewFromInt(10).Sub(pct.Div(decimal.NewFromInt(10))).StringFixed(1) + "折"
}
