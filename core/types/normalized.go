package types

// NormalizedPrice is the canonical price view of a spec. Token categories
// use InputPrice/OutputPrice; other categories use NonTokenPrice together
// with its unit label and dimension code.
type NormalizedPrice struct {
	InputPrice    Amount `json:"input_price"`
	OutputPrice   Amount `json:"output_price"`
	NonTokenPrice Amount `json:"non_token_price"`
	PriceUnit     string `json:"price_unit,omitempty"`
	DimensionCode string `json:"dimension_code,omitempty"`
}

// HasTokenPrice reports whether an input or output price is present
func (p NormalizedPrice) HasTokenPrice() bool {
	return p.InputPrice.Valid || p.OutputPrice.Valid
}

// NormalizedSpec is a spec ready for rendering
type NormalizedSpec struct {
	ID         string `json:"id"`
	ModelName  string `json:"model_name"`
	Mode       string `json:"mode"`
	TokenRange string `json:"token_range"`
	NormalizedPrice
	Remark string `json:"remark"`
}
