package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-report/core/types"
	"quote-report/internal/errors"
)

func TestDecodeJSON(t *testing.T) {
	req, err := Decode([]byte(`{
		"customerInfo": {"customerName": "ACME", "discountPercent": "15"},
		"selectedModels": [{"id": "m1", "model_code": "qwen-max"}],
		"modelConfigs": {"m1": {"spec": {"id": "s", "input_price": 0.02}}},
		"specDiscounts": {"m1": {"s": 5}},
		"dailyUsages": {"m1": {"s": 12.5}},
		"priceUnit": "million"
	}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, types.Text("ACME"), req.CustomerInfo.CustomerName)
	assert.Equal(t, "15", req.CustomerInfo.DiscountPercent.Decimal.String())
	require.Len(t, req.SelectedModels, 1)
	assert.Equal(t, "m1", req.SelectedModels[0].Key())
	assert.Contains(t, req.ModelConfigs, "m1")
	assert.Equal(t, types.Text("12.5"), req.DailyUsages.Daily("m1", "s"))
	assert.Equal(t, "million", req.PriceUnit)
	assert.Equal(t, SourceAPI, req.Source.Type)
	assert.Len(t, req.Source.Digest, 64)
}

func TestDecodeEmptySelectionIsValid(t *testing.T) {
	req, err := Decode([]byte(`{"selectedModels": []}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, req.SelectedModels)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", "  "},
		{"not json", "{"},
		{"selections not a list", `{"selectedModels": "qwen"}`},
		{"discount above 100", `{"customerInfo": {"discountPercent": 120}}`},
		{"negative discount", `{"customerInfo": {"discountPercent": -1}}`},
		{"bad date", `{"customerInfo": {"quoteDate": "15/10/2026"}}`},
		{"bad price unit", `{"priceUnit": "billion"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeInput))
		})
	}
}

func TestDecodeNonNumericDiscountIsUnset(t *testing.T) {
	req, err := Decode([]byte(`{"customerInfo": {"discountPercent": "abc"}}`), FormatJSON)
	require.NoError(t, err)
	assert.False(t, req.CustomerInfo.DiscountPercent.Valid)
}

func TestLoadYAMLFile(t *testing.T) {
	req, err := LoadFile(filepath.Join("testdata", "request.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceFile, req.Source.Type)
	assert.Equal(t, FormatYAML, req.Source.Format)
	assert.Equal(t, types.Text("示例科技有限公司"), req.CustomerInfo.CustomerName)
	assert.Equal(t, types.Text("2026-10-15"), req.CustomerInfo.QuoteDate)
	assert.Equal(t, "10", req.CustomerInfo.DiscountPercent.Decimal.String())

	cfg := req.ModelConfigs["m1"]
	require.Len(t, cfg.Variants, 1)
	require.Len(t, cfg.Variants[0].Prices, 2)
	assert.Equal(t, types.Text("output_token"), cfg.Variants[0].Prices[1].DimensionCode)
	assert.Equal(t, types.Text("1000"), req.DailyUsages.Daily("m1", "s1"))
}

func TestYAMLIntegerKeys(t *testing.T) {
	req, err := Decode([]byte("selectedModels:\n  - id: 7\nmodelConfigs:\n  7:\n    spec:\n      id: 1\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "7", req.SelectedModels[0].Key())
	require.NotNil(t, req.ModelConfigs["7"].Spec)
	assert.Equal(t, types.Text("1"), req.ModelConfigs["7"].Spec.ID)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestLoadFileUnreadable(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(dir)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "failed to read request "+dir)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"selectedModels": [{"id": "a"}]}`), 0644))

	req, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, req.Source.Path)
	assert.Equal(t, FormatJSON, req.Source.Format)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("req.txt"))

	f, err := ParseFormat(" yml ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, "stdin", SourceStdin.String())
	assert.Equal(t, "unknown", SourceType(42).String())
}
