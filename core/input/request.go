// Package input - Quotation request envelope
// Everything downstream consumes a Request only.
// Decouples the CLI and file formats from report generation.
package input

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"quote-report/core/types"
	"quote-report/internal/errors"
)

// Request is the input to the quotation engine
type Request struct {
	CustomerInfo   CustomerInfo            `json:"customerInfo"`
	SelectedModels []types.ModelSelection  `json:"selectedModels"`
	ModelConfigs   types.Configurations    `json:"modelConfigs"`
	SpecDiscounts  types.DiscountOverrides `json:"specDiscounts"`
	DailyUsages    types.UsageTable        `json:"dailyUsages"`

	// PriceUnit overrides the configured token price unit
	PriceUnit string `json:"priceUnit,omitempty" validate:"omitempty,oneof=thousand million"`

	// Source describes where the request came from
	Source SourceInfo `json:"-"`
}

// CustomerInfo is the quotation header supplied by the caller
type CustomerInfo struct {
	CustomerName types.Text `json:"customerName" validate:"max=200"`
	QuoteDate    types.Text `json:"quoteDate" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil   types.Text `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`

	// DiscountPercent is the global discount, 0 to 100
	DiscountPercent types.Amount `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
}

// SourceInfo describes where a request came from
type SourceInfo struct {
	Type   SourceType
	Path   string
	Format Format

	// Digest is the sha256 of the raw request bytes
	Digest string
}

// SourceType indicates the source of input
type SourceType int

const (
	SourceFile  SourceType = iota // File on disk
	SourceStdin                   // Standard input
	SourceAPI                     // In-process caller
)

// String returns the source type name
func (t SourceType) String() string {
	switch t {
	case SourceFile:
		return "file"
	case SourceStdin:
		return "stdin"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Format is the encoding of a request document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from a file extension; JSON otherwise
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.TypeInput, "unknown request format %q", s)
}

// LoadFile reads and decodes a request file
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("request file", path)
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read request %s", path)
	}
	format := FormatFromPath(path)
	req, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	req.Source = SourceInfo{Type: SourceFile, Path: path, Format: format, Digest: digest(data)}
	return req, nil
}

// Decode parses and validates a request document
func Decode(data []byte, format Format) (*Request, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Input("request is empty")
	}

	body := data
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		body = converted
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to decode request", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Source = SourceInfo{Type: SourceAPI, Format: format, Digest: digest(data)}
	return &req, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		a, ok := field.Interface().(types.Amount)
		if !ok || !a.Valid {
			return nil
		}
		f, _ := a.Decimal.Float64()
		return f
	}, types.Amount{})
	return v
}

// Validate checks the caller-supplied header fields. Model payloads are
// not validated here; grouping skips what it cannot use.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid request", err)
	}
	return nil
}

// yamlToJSON re-encodes a YAML document as JSON so the lenient JSON
// decoders apply to both formats
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to parse YAML request", err)
	}
	out, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to convert YAML request", err)
	}
	return out, nil
}

// stringKeys turns every mapping key into a string; YAML allows integer
// keys that JSON objects cannot carry
func stringKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = stringKeys(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	case time.Time:
		if t.Equal(t.Truncate(24 * time.Hour)) {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
