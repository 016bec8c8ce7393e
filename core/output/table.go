package output

import (
	"io"

	"quote-report/core/report"
	"quote-report/core/ui"
)

// TableFormatter writes the report as terminal tables, one per section
type TableFormatter struct {
	noColor   bool
	verbosity int
}

// NewTableFormatter creates a table formatter
func NewTableFormatter(noColor bool, verbosity int) *TableFormatter {
	return &TableFormatter{noColor: noColor, verbosity: verbosity}
}

// Format implements Formatter
func (f *TableFormatter) Format() Format {
	return FormatTable
}

// Render implements Formatter
func (f *TableFormatter) Render(w io.Writer, r *report.Report) error {
	out := ui.NewWriter(w, f.noColor)
	out.SetVerbosity(f.verbosity)
	out.Header(r.Meta.Title)

	if r.Empty() {
		out.Warning("没有可报价的模型")
	}

	for _, section := range r.Sections {
		var table *ui.Table
		for _, row := range section.Rows {
			switch row.Kind {
			case report.RowBand:
				out.SubHeader(row.Cells[0].String())
			case report.RowHeader:
				table = out.NewTable(row.Strings()...)
			case report.RowData:
				table.AddRow(row.Strings()...)
			case report.RowSpacer:
				table.Render()
				out.Debug("%s: %d items, monthly total %s", section.Category.Key, section.ItemCount, section.MonthlyTotal)
				out.Line("")
			}
		}
	}

	for _, skipped := range r.Skipped {
		out.Warning("%s 未列入报价: %s", skipped.Model.Key(), skipped.Err.Message)
	}

	summary := out.NewSummary("报价汇总")
	summary.Add("报价编号", r.Meta.QuoteID)
	summary.Add("客户名称", r.Meta.CustomerName)
	summary.Add("报价日期", r.Meta.QuoteDate)
	summary.Add("有效期至", r.Meta.ValidUntil)
	summary.Add("折扣", r.Meta.DiscountLabel)
	summary.Add("预估月费合计", r.MonthlyTotal)
	summary.Render()

	out.Line("")
	for _, note := range r.Notes {
		out.Line("* " + note)
	}
	out.Debug("price unit %s, discount columns %t", r.PriceUnit, r.ShowDiscount)
	return nil
}
