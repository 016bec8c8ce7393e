package report

import (
	"quote-report/core/catalog"
)

var tokenColumns = []string{
	"序号", "模型名称", "模式", "Token范围",
	"输入单价", "输出单价",
	"日估计用量", "预估月用量", "预估月费", "备注",
}

var tokenDiscountColumns = []string{
	"序号", "模型名称", "模式", "Token范围",
	"输入单价", "输出单价",
	"折扣", "折后输入", "折后输出",
	"日估计用量", "预估月用量", "预估月费", "备注",
}

var nonTokenColumns = []string{
	"序号", "模型名称", "单价", "单位",
	"日估计用量", "预估月用量", "预估月费",
}

var nonTokenDiscountColumns = []string{
	"序号", "模型名称", "单价", "单位",
	"折扣", "折后单价",
	"日估计用量", "预估月用量", "预估月费",
}

// Columns returns the column headers for a price type. showDiscount is
// decided once per report and applies to every section alike.
func Columns(priceType catalog.PriceType, showDiscount bool) []string {
	var cols []string
	switch {
	case priceType.IsToken() && showDiscount:
		cols = tokenDiscountColumns
	case priceType.IsToken():
		cols = tokenColumns
	case showDiscount:
		cols = nonTokenDiscountColumns
	default:
		cols = nonTokenColumns
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}
