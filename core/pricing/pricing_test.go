package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-report/core/catalog"
	"quote-report/core/types"
)

func decodeSpec(t *testing.T, body string) types.PriceSpec {
	t.Helper()
	var spec types.PriceSpec
	require.NoError(t, json.Unmarshal([]byte(body), &spec))
	return spec
}

func assertAmount(t *testing.T, want string, got types.Amount) {
	t.Helper()
	if want == "" {
		assert.False(t, got.Valid, "expected unset, got %s", got.Decimal)
		return
	}
	require.True(t, got.Valid, "expected %s, got unset", want)
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal), "expected %s, got %s", want, got.Decimal)
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(catalog.Default())

	tests := []struct {
		name      string
		spec      string
		input     string
		output    string
		nonToken  string
		unit      string
		dimension string
	}{
		{
			name:   "input and output",
			spec:   `{"prices": [{"dimension_code": "input", "unit_price": 0.04}, {"dimension_code": "output", "unit_price": 0.12}]}`,
			input:  "0.04",
			output: "0.12",
		},
		{
			name:  "later input dimension wins",
			spec:  `{"prices": [{"dimension_code": "input", "unit_price": 0.04}, {"dimension_code": "input_token_image", "unit_price": 0.08}]}`,
			input: "0.08",
		},
		{
			name:   "thinking output",
			spec:   `{"prices": [{"dimension_code": "input_token", "unit_price": 0.04}, {"dimension_code": "output_token_thinking", "unit_price": 0.24}]}`,
			input:  "0.04",
			output: "0.24",
		},
		{
			name:   "case insensitive codes",
			spec:   `{"prices": [{"dimension_code": "INPUT", "unit_price": 0.04}, {"dimension_code": "Output_Token", "unit_price": 0.12}]}`,
			input:  "0.04",
			output: "0.12",
		},
		{
			name:      "image count",
			spec:      `{"prices": [{"dimension_code": "IMAGE_COUNT", "unit_price": 0.08}]}`,
			nonToken:  "0.08",
			unit:      "张",
			dimension: "image_count",
		},
		{
			name:      "last non-token dimension wins",
			spec:      `{"prices": [{"dimension_code": "audio_second", "unit_price": 0.0002}, {"dimension_code": "character", "unit_price": 0.0001}]}`,
			nonToken:  "0.0001",
			unit:      "字符",
			dimension: "character",
		},
		{
			name:  "numeric strings",
			spec:  `{"prices": [{"dimension_code": "input", "unit_price": "0.04"}, {"dimension_code": "output", "unit_price": "abc"}]}`,
			input: "0.04",
		},
		{
			name:   "zero and negative are prices",
			spec:   `{"prices": [{"dimension_code": "input", "unit_price": 0}, {"dimension_code": "output", "unit_price": -0.01}]}`,
			input:  "0",
			output: "-0.01",
		},
		{
			name:  "invalid later entry keeps earlier value",
			spec:  `{"prices": [{"dimension_code": "input", "unit_price": 0.04}, {"dimension_code": "input", "unit_price": null}, "junk", {"unit_price": 1}]}`,
			input: "0.04",
		},
		{
			name:   "legacy fallback",
			spec:   `{"input_price": "0.02", "output_price": 0.06}`,
			input:  "0.02",
			output: "0.06",
		},
		{
			name:  "legacy fallback when entries yield nothing",
			spec:  `{"prices": [{"dimension_code": "unknown", "unit_price": 5}], "input_price": 0.02, "output_price": "n/a"}`,
			input: "0.02",
		},
		{
			name:   "entries shadow legacy fields",
			spec:   `{"prices": [{"dimension_code": "output", "unit_price": 0.12}], "input_price": 0.02}`,
			output: "0.12",
		},
		{
			name: "nothing at all",
			spec: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(decodeSpec(t, tt.spec))

			assertAmount(t, tt.input, got.InputPrice)
			assertAmount(t, tt.output, got.OutputPrice)
			assertAmount(t, tt.nonToken, got.NonTokenPrice)
			assert.Equal(t, tt.unit, got.PriceUnit)
			assert.Equal(t, tt.dimension, got.DimensionCode)
		})
	}
}

func TestConvert(t *testing.T) {
	price := types.ParseAmount("0.04")

	got, label := Convert(price, PerThousand)
	assertAmount(t, "0.04", got)
	assert.Equal(t, "千Token", label)

	got, label = Convert(price, PerMillion)
	assertAmount(t, "40", got)
	assert.Equal(t, "百万Token", label)

	got, label = Convert(price, PriceUnit("billion"))
	assertAmount(t, "0.04", got)
	assert.Equal(t, "千Token", label)
}

func TestConvertUnset(t *testing.T) {
	for _, unit := range []PriceUnit{PerThousand, PerMillion} {
		got, label := Convert(types.Amount{}, unit)
		assert.False(t, got.Valid)
		assert.Equal(t, unit.Label(), label)
	}
}

func TestConvertMillionScalesExactly(t *testing.T) {
	for _, s := range []string{"0", "0.0001", "1.23456", "-2.5", "123456.789"} {
		got, _ := Convert(types.ParseAmount(s), PerMillion)
		want := decimal.RequireFromString(s).Mul(decimal.NewFromInt(1000))
		assert.True(t, want.Equal(got.Decimal), s)
	}
}
