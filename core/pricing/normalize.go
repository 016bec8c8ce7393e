// Package pricing - Price normalization and unit conversion
// Reduces the several price shapes a spec may carry to one canonical
// NormalizedPrice, and converts token prices between display units.
package pricing

import (
	"strings"

	"quote-report/core/catalog"
	"quote-report/core/types"
)

// Dimension codes whose price feeds the token input column.
var inputDimensions = map[string]bool{
	"input":             true,
	"input_token":       true,
	"input_token_image": true,
}

// Dimension codes whose price feeds the token output column.
var outputDimensions = map[string]bool{
	"output":                true,
	"output_token":          true,
	"output_token_thinking": true,
}

// Normalizer extracts canonical prices from specs
type Normalizer struct {
	catalog *catalog.Catalog
}

// NewNormalizer creates a normalizer; non-token dimensions and their unit
// labels come from c
func NewNormalizer(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

// Normalize never fails. Entries are scanned in order and a later match
// overwrites an earlier one for the same column. Legacy flat prices are
// consulted only when the entry list yields nothing.
func (n *Normalizer) Normalize(spec types.PriceSpec) types.NormalizedPrice {
	var out types.NormalizedPrice

	for _, entry := range spec.Prices {
		if entry.Malformed || !entry.UnitPrice.Valid {
			continue
		}
		code := strings.ToLower(string(entry.DimensionCode))
		switch {
		case inputDimensions[code]:
			out.InputPrice = entry.UnitPrice
		case outputDimensions[code]:
			out.OutputPrice = entry.UnitPrice
		default:
			label, ok := n.catalog.UnitLabel(code)
			if !ok {
				continue
			}
			out.NonTokenPrice = entry.UnitPrice
			out.DimensionCode = code
			out.PriceUnit = label
		}
	}

	if !out.InputPrice.Valid && !out.OutputPrice.Valid && !out.NonTokenPrice.Valid {
		out.InputPrice = spec.InputPrice
		out.OutputPrice = spec.OutputPrice
	}
	return out
}
