package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-report/core/catalog"
	"quote-report/core/grouping"
	"quote-report/core/pricing"
	"quote-report/core/types"
	"quote-report/core/usage"
)

func newRenderer() *Renderer {
	return NewRenderer(catalog.Default(), usage.DefaultProjector())
}

func tokenSpec(id, in, out string) types.NormalizedSpec {
	return types.NormalizedSpec{
		ID:         id,
		ModelName:  "qwen-max",
		Mode:       "标准模式",
		TokenRange: "0-128K",
		NormalizedPrice: types.NormalizedPrice{
			InputPrice:  types.ParseAmount(in),
			OutputPrice: types.ParseAmount(out),
		},
		Remark: "测试备注",
	}
}

func imageSpec(id, price string) types.NormalizedSpec {
	return types.NormalizedSpec{
		ID:         id,
		ModelName:  "wanx-v1",
		Mode:       "-",
		TokenRange: "-",
		NormalizedPrice: types.NormalizedPrice{
			NonTokenPrice: types.ParseAmount(price),
			PriceUnit:     "张",
			DimensionCode: "image_count",
		},
	}
}

func entry(id string, specs ...types.NormalizedSpec) grouping.Entry {
	return grouping.Entry{Model: types.ModelSelection{ID: types.Text(id)}, Specs: specs}
}

func TestTokenSectionWithoutDiscount(t *testing.T) {
	section := newRenderer().RenderSection("text_qwen",
		[]grouping.Entry{entry("model1", tokenSpec("spec1", "0.04", "0.12"))},
		Options{PriceUnit: pricing.PerThousand})

	require.Len(t, section.Rows, 4)
	assert.Equal(t, RowBand, section.Rows[0].Kind)
	assert.Equal(t, []string{"💬 文本生成-通义千问 (共1项)"}, section.Rows[0].Strings())
	assert.Equal(t, 10, section.Rows[0].Span)

	assert.Equal(t, RowHeader, section.Rows[1].Kind)
	assert.Equal(t, []string{
		"序号", "模型名称", "模式", "Token范围", "输入单价", "输出单价",
		"日估计用量", "预估月用量", "预估月费", "备注",
	}, section.Rows[1].Strings())

	data := section.Rows[2]
	assert.Equal(t, RowData, data.Kind)
	assert.Equal(t, Number(1), data.Cells[0])
	assert.Equal(t, []string{
		"1", "qwen-max", "标准模式", "0-128K", "¥0.0400/千Token", "¥0.1200/千Token",
		"-", "-", "-", "测试备注",
	}, data.Strings())

	assert.Equal(t, RowSpacer, section.Rows[3].Kind)
	assert.Equal(t, "-", section.MonthlyTotal)
}

func TestTokenSectionWithDiscount(t *testing.T) {
	overrides := types.DiscountOverrides{
		"model1": {Specs: map[string]types.Amount{"spec1": types.ParseAmount("10")}},
	}
	section := newRenderer().RenderSection("text_qwen",
		[]grouping.Entry{entry("model1", tokenSpec("spec1", "0.02", "0.06"), tokenSpec("spec2", "0.04", "0.12"))},
		Options{
			Overrides:      overrides,
			GlobalDiscount: decimal.NewFromInt(20),
			Usage:          types.UsageTable{"model1": {"spec1": "1000"}},
			PriceUnit:      pricing.PerThousand,
			ShowDiscount:   true,
		})

	assert.Len(t, section.Columns, 13)
	assert.Equal(t, []string{"折扣", "折后输入", "折后输出"}, section.Columns[6:9])

	first := section.DataRows()[0].Strings()
	assert.Equal(t, "10.0%", first[6])
	assert.Equal(t, "¥0.0180/千Token", first[7])
	assert.Equal(t, "¥0.0540/千Token", first[8])
	assert.Equal(t, "1000", first[9])
	assert.Equal(t, "30000", first[10])
	assert.Equal(t, "¥2,160.00", first[11])

	second := section.DataRows()[1].Strings()
	assert.Equal(t, "2", second[0])
	assert.Equal(t, "20.0%", second[6])
	assert.Equal(t, "¥0.0320/千Token", second[7])
	assert.Equal(t, "-", second[9])

	assert.Equal(t, "¥2,160.00", section.MonthlyTotal)
}

func TestTokenSectionPerMillion(t *testing.T) {
	section := newRenderer().RenderSection("text_qwen",
		[]grouping.Entry{entry("m", tokenSpec("s", "0.04", ""))},
		Options{PriceUnit: pricing.PerMillion, ShowDiscount: true, GlobalDiscount: decimal.NewFromInt(10)})

	row := section.DataRows()[0].Strings()
	assert.Equal(t, "¥40.0000/百万Token", row[4])
	assert.Equal(t, "-", row[5])
	assert.Equal(t, "¥36.0000/百万Token", row[7])
	assert.Equal(t, "-", row[8])
}

func TestNonTokenSection(t *testing.T) {
	r := newRenderer()
	entries := []grouping.Entry{entry("w", imageSpec("s", "0.08"))}
	usageTable := types.UsageTable{"w": {"s": "500"}}

	plain := r.RenderSection("image_gen", entries, Options{Usage: usageTable})
	assert.Equal(t, []string{"序号", "模型名称", "单价", "单位", "日估计用量", "预估月用量", "预估月费"}, plain.Columns)
	assert.Equal(t, []string{"1", "wanx-v1", "¥0.0800", "张", "500", "15000", "¥1,200.00"}, plain.DataRows()[0].Strings())

	discounted := r.RenderSection("image_gen", entries, Options{
		Usage:          usageTable,
		GlobalDiscount: decimal.NewFromInt(20),
		ShowDiscount:   true,
	})
	assert.Len(t, discounted.Columns, 9)
	assert.Equal(t, []string{"1", "wanx-v1", "¥0.0800", "张", "20.0%", "¥0.0640", "500", "15000", "¥960.00"}, discounted.DataRows()[0].Strings())
	assert.Equal(t, 9, discounted.Rows[0].Span)
}

func TestNonTokenSectionMissingPrice(t *testing.T) {
	spec := imageSpec("s", "")
	spec.PriceUnit = ""
	section := newRenderer().RenderSection("video_gen", []grouping.Entry{entry("v", spec)}, Options{
		Usage:        types.UsageTable{"v": {"s": "10"}},
		ShowDiscount: true,
	})

	assert.Equal(t, []string{"1", "wanx-v1", "-", "-", "0.0%", "-", "10", "300", "-"}, section.DataRows()[0].Strings())
}

func TestUnknownCategoryUsesGenericDefinition(t *testing.T) {
	section := newRenderer().RenderSection("custom", []grouping.Entry{entry("m", tokenSpec("s", "0.01", "0.02"))}, Options{})

	assert.Equal(t, "📋 custom (共1项)", section.Band())
	assert.Len(t, section.Columns, 10)
}

func TestRenderOrderAndNumbering(t *testing.T) {
	result := &grouping.Result{Buckets: map[string][]grouping.Entry{
		"image_gen": {entry("w", imageSpec("a", "0.08"), imageSpec("b", "0.16"))},
		"text_qwen": {
			entry("q1", tokenSpec("a", "0.04", "0.12")),
			entry("q2", tokenSpec("b", "0.02", "0.06"), tokenSpec("c", "0.01", "0.03")),
		},
		"zz_custom": {entry("z", tokenSpec("a", "1", "1"))},
		"asr":       {},
	}}

	opts := Options{
		Overrides:    types.DiscountOverrides{"w": {Specs: map[string]types.Amount{"a": types.ParseAmount("5")}}},
		Usage:        types.UsageTable{"q1": {"a": "1000"}, "w": {"b": "10"}},
		ShowDiscount: true,
	}
	r := newRenderer()
	sections := r.Render(result, opts)

	require.Len(t, sections, 3)
	assert.Equal(t, "text_qwen", sections[0].Category.Key)
	assert.Equal(t, "image_gen", sections[1].Category.Key)
	assert.Equal(t, "zz_custom", sections[2].Category.Key)

	assert.Equal(t, 3, sections[0].ItemCount)
	assert.Equal(t, "💬 文本生成-通义千问 (共3项)", sections[0].Band())
	assert.Equal(t, "🎨 图像生成 (共2项)", sections[1].Band())

	for _, s := range sections {
		for i, row := range s.DataRows() {
			assert.Equal(t, Number(i+1), row.Cells[0], s.Category.Key)
		}
	}

	// layout is shared even though only the image section has an override
	assert.Len(t, sections[0].Columns, 13)
	assert.Len(t, sections[1].Columns, 9)

	assert.Equal(t, "¥4,800.00", sections[0].MonthlyTotal)
	assert.Equal(t, "¥48.00", sections[1].MonthlyTotal)
	assert.Equal(t, "-", sections[2].MonthlyTotal)
	assert.Equal(t, "¥4,848.00", r.Total(sections))
	assert.Equal(t, "-", r.Total(nil))
}

func TestNotes(t *testing.T) {
	assert.Equal(t, []string{"以上价格均为人民币（CNY）计价", "Token计费模型按实际调用量结算"}, Notes(decimal.Zero))

	notes := Notes(decimal.NewFromInt(15))
	require.Len(t, notes, 3)
	assert.Equal(t, "本报价单默认折扣: 8.5折", notes[2])
}

func TestColumnsAreCopies(t *testing.T) {
	cols := Columns(catalog.PriceToken, false)
	cols[0] = "changed"
	assert.Equal(t, "序号", Columns(catalog.PriceToken, false)[0])
}

func TestRowNamePrefersModelDisplayName(t *testing.T) {
	r := newRenderer()

	voice := imageSpec("s", "0.0001")
	voice.ModelName = "cosyvoice-v1"
	voice.PriceUnit = "字符"
	named := grouping.Entry{
		Model: types.ModelSelection{ID: "tts1", ModelName: "CosyVoice语音合成"},
		Specs: []types.NormalizedSpec{voice},
	}
	section := r.RenderSection("tts", []grouping.Entry{named}, Options{})
	assert.Equal(t, "CosyVoice语音合成", section.DataRows()[0].Strings()[1])

	coded := grouping.Entry{
		Model: types.ModelSelection{ID: "q", Code: "qwen-max-latest"},
		Specs: []types.NormalizedSpec{tokenSpec("s", "0.02", "0.06")},
	}
	section = r.RenderSection("text_qwen", []grouping.Entry{coded}, Options{})
	assert.Equal(t, "qwen-max-latest", section.DataRows()[0].Strings()[1])

	// no model-level name at all: the spec's name is used
	section = r.RenderSection("text_qwen", []grouping.Entry{entry("bare", tokenSpec("s", "0.02", "0.06"))}, Options{})
	assert.Equal(t, "qwen-max", section.DataRows()[0].Strings()[1])
}
