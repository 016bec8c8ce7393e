package output

import (
	"encoding/csv"
	"io"

	"quote-report/core/report"
	"quote-report/internal/errors"
)

// CSVFormatter flattens the report into spreadsheet rows. Band rows keep
// only their title cell and spacer rows become empty records.
type CSVFormatter struct{}

// NewCSVFormatter creates a CSV formatter
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format implements Formatter
func (f *CSVFormatter) Format() Format {
	return FormatCSV
}

// Render implements Formatter
func (f *CSVFormatter) Render(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)

	records := [][]string{{r.Meta.Title}}
	if r.Meta.QuoteID != "" {
		records = append(records, []string{"报价编号", r.Meta.QuoteID})
	}
	if r.Meta.CustomerName != "" {
		records = append(records, []string{"客户名称", r.Meta.CustomerName})
	}
	if r.Meta.QuoteDate != "" {
		records = append(records, []string{"报价日期", r.Meta.QuoteDate})
	}
	if r.Meta.ValidUntil != "" {
		records = append(records, []string{"有效期至", r.Meta.ValidUntil})
	}
	records = append(records, []string{"折扣", r.Meta.DiscountLabel}, nil)

	for _, section := range r.Sections {
		for _, row := range section.Rows {
			records = append(records, row.Strings())
		}
	}
	records = append(records, []string{"预估月费合计", r.MonthlyTotal}, nil)
	for _, note := range r.Notes {
		records = append(records, []string{note})
	}

	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return errors.Internal("failed to write csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Internal("failed to write csv", err)
	}
	return nil
}
