// Package report - Quotation report model and section layout
// A Report is an abstract hierarchy: sections in catalog order, each made
// of a band row, a column header row, numbered data rows and a spacer.
// Document writers serialize it; nothing here produces file bytes.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"quote-report/core/discount"
	"quote-report/core/grouping"
	"quote-report/core/pricing"
	"quote-report/core/usage"
)

// Meta is the quotation header block
type Meta struct {
	// QuoteID is derived from the request content; equal requests share it
	QuoteID       string `json:"quote_id,omitempty"`
	Title         string `json:"title"`
	CustomerName  string `json:"customer_name,omitempty"`
	QuoteDate     string `json:"quote_date,omitempty"`
	ValidUntil    string `json:"valid_until,omitempty"`
	DiscountLabel string `json:"discount_label"`
}

// Report is a complete quotation
type Report struct {
	Meta         Meta              `json:"meta"`
	ShowDiscount bool              `json:"show_discount"`
	PriceUnit    pricing.PriceUnit `json:"price_unit"`
	Sections     []Section         `json:"sections"`
	Notes        []string          `json:"notes"`

	// MonthlyTotal sums the section totals, or "-" when none is known
	MonthlyTotal string `json:"monthly_total"`

	// Skipped lists models left out, with the reason
	Skipped []grouping.Outcome `json:"skipped,omitempty"`
}

// Empty reports whether there is nothing to render
func (r *Report) Empty() bool {
	return len(r.Sections) == 0
}

// Section returns the section of a category key
func (r *Report) Section(key string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Category.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Render lays out every non-empty bucket of result in catalog order.
// Buckets under keys the catalog does not know follow, sorted by key.
func (r *Renderer) Render(result *grouping.Result, opts Options) []Section {
	var sections []Section
	seen := make(map[string]bool)
	for _, def := range r.catalog.Definitions() {
		seen[def.Key] = true
		if entries := result.Bucket(def.Key); len(entries) > 0 {
			sections = append(sections, r.RenderSection(def.Key, entries, opts))
		}
	}

	var unknown []string
	for key, entries := range result.Buckets {
		if !seen[key] && len(entries) > 0 {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		sections = append(sections, r.RenderSection(key, result.Bucket(key), opts))
	}
	return sections
}

// Total formats the sum of the section totals
func (r *Renderer) Total(sections []Section) string {
	total := decimal.Zero
	known := false
	for _, s := range sections {
		if s.hasTotal {
			total = total.Add(s.total)
			known = true
		}
	}
	if !known {
		return usage.Missing
	}
	return r.projector.FormatMoney(total)
}

// Notes returns the closing remarks of a quotation
func Notes(global decimal.Decimal) []string {
	notes := []string{
		"以上价格均为人民币（CNY）计价",
		"Token计费模型按实际调用量结算",
	}
	if global.IsPositive() {
		notes = append(notes, "本报价单默认折扣: "+discount.Label(global))
	}
	return notes
}
