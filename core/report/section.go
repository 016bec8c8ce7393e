package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quote-report/core/catalog"
	"quote-report/core/discount"
	"quote-report/core/grouping"
	"quote-report/core/pricing"
	"quote-report/core/types"
	"quote-report/core/usage"
)

// Options are the report-wide inputs shared by every section
type Options struct {
	Overrides      types.DiscountOverrides
	GlobalDiscount decimal.Decimal
	Usage          types.UsageTable
	PriceUnit      pricing.PriceUnit

	// ShowDiscount selects the discount layout for all sections
	ShowDiscount bool
}

// Section is one rendered category
type Section struct {
	Category  catalog.Definition `json:"category"`
	ItemCount int                `json:"item_count"`
	Columns   []string           `json:"columns"`
	Rows      []Row              `json:"rows"`

	// MonthlyTotal sums the monthly costs that could be computed
	MonthlyTotal string `json:"monthly_total"`

	total    decimal.Decimal
	hasTotal bool
}

// Band is the title of the section, e.g. "💬 文本生成-通义千问 (共5项)"
func (s Section) Band() string {
	return fmt.Sprintf("%s (共%d项)", s.Category.Label(), s.ItemCount)
}

// DataRows returns only the data rows
func (s Section) DataRows() []Row {
	var out []Row
	for _, r := range s.Rows {
		if r.Kind == RowData {
			out = append(out, r)
		}
	}
	return out
}

// Renderer lays out sections. It holds no per-report state.
type Renderer struct {
	catalog   *catalog.Catalog
	projector usage.Projector
}

// NewRenderer creates a renderer
func NewRenderer(c *catalog.Catalog, p usage.Projector) *Renderer {
	return &Renderer{catalog: c, projector: p}
}

// RenderSection renders one category. Keys the catalog does not know get
// a generic definition with the token layout.
func (r *Renderer) RenderSection(key string, entries []grouping.Entry, opts Options) Section {
	def := r.catalog.Resolve(key)
	columns := Columns(def.PriceType, opts.ShowDiscount)

	count := 0
	for _, e := range entries {
		count += len(e.Specs)
	}

	section := Section{
		Category:  def,
		ItemCount: count,
		Columns:   columns,
	}
	section.Rows = append(section.Rows,
		Row{Kind: RowBand, Cells: []Cell{Text(section.Band())}, Span: len(columns)},
		Row{Kind: RowHeader, Cells: textCells(columns)},
	)

	n := 0
	for _, e := range entries {
		modelID := e.Model.Key()
		for _, spec := range e.Specs {
			n++
			pct := discount.Resolve(modelID, spec.ID, opts.Overrides, opts.GlobalDiscount)
			daily := opts.Usage.Daily(modelID, spec.ID)

			if amount, ok := r.projector.MonthlyAmount(spec.NormalizedPrice, daily, pct, def.PriceType); ok {
				section.total = section.total.Add(amount)
				section.hasTotal = true
			}

			name := rowName(e.Model, spec)
			var cells []Cell
			if def.PriceType.IsToken() {
				cells = r.tokenRow(n, name, spec, pct, daily, def.PriceType, opts)
			} else {
				cells = r.nonTokenRow(n, name, spec, pct, daily, def.PriceType, opts)
			}
			section.Rows = append(section.Rows, Row{Kind: RowData, Cells: cells})
		}
	}
	section.Rows = append(section.Rows, Row{Kind: RowSpacer})

	section.MonthlyTotal = usage.Missing
	if section.hasTotal {
		section.MonthlyTotal = r.projector.FormatMoney(section.total)
	}
	return section
}

func (r *Renderer) tokenRow(n int, name string, spec types.NormalizedSpec, pct decimal.Decimal, daily types.Text, pt catalog.PriceType, opts Options) []Cell {
	cells := []Cell{
		Number(n),
		Text(name),
		Text(orMissing(spec.Mode)),
		Text(orMissing(spec.TokenRange)),
		Text(r.tokenPrice(spec.InputPrice, opts.PriceUnit)),
		Text(r.tokenPrice(spec.OutputPrice, opts.PriceUnit)),
	}
	if opts.ShowDiscount {
		rate := discount.Rate(pct)
		cells = append(cells,
			Text(discount.Percent(pct)),
			Text(r.tokenPrice(spec.InputPrice.Mul(rate), opts.PriceUnit)),
			Text(r.tokenPrice(spec.OutputPrice.Mul(rate), opts.PriceUnit)),
		)
	}
	return append(cells,
		Text(orMissing(string(daily))),
		Text(r.projector.MonthlyUsage(daily)),
		Text(r.projector.MonthlyCost(spec.NormalizedPrice, daily, pct, pt)),
		Text(orMissing(spec.Remark)),
	)
}

func (r *Renderer) nonTokenRow(n int, name string, spec types.NormalizedSpec, pct decimal.Decimal, daily types.Text, pt catalog.PriceType, opts Options) []Cell {
	cells := []Cell{
		Number(n),
		Text(name),
		Text(r.plainPrice(spec.NonTokenPrice)),
		Text(orMissing(spec.PriceUnit)),
	}
	if opts.ShowDiscount {
		cells = append(cells,
			Text(discount.Percent(pct)),
			Text(r.plainPrice(spec.NonTokenPrice.Mul(discount.Rate(pct)))),
		)
	}
	return append(cells,
		Text(orMissing(string(daily))),
		Text(r.projector.MonthlyUsage(daily)),
		Text(r.projector.MonthlyCost(spec.NormalizedPrice, daily, pct, pt)),
	)
}

// rowName prefers the model's display name; the spec's name stands in
// for models that carry none
func rowName(model types.ModelSelection, spec types.NormalizedSpec) string {
	if name := model.DisplayName(); name != "" {
		return name
	}
	return spec.ModelName
}

// tokenPrice renders "¥0.0400/千Token" in the requested unit
func (r *Renderer) tokenPrice(price types.Amount, unit pricing.PriceUnit) string {
	converted, label := pricing.Convert(price, unit)
	if !converted.Valid {
		return usage.Missing
	}
	return r.projector.FormatPrice(converted.Decimal) + "/" + label
}

func (r *Renderer) plainPrice(price types.Amount) string {
	if !price.Valid {
		return usage.Missing
	}
	return r.projector.FormatPrice(price.Decimal)
}

func orMissing(s string) string {
	if s == "" {
		return usage.Missing
	}
	return s
}
