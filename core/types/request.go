package types

import (
	"encoding/json"
)

// ModelSelection is a model picked for the quotation
type ModelSelection struct {
	ID          Text `json:"id"`
	Code        Text `json:"model_code"`
	Name        Text `json:"name"`
	ModelName   Text `json:"model_name"`
	Category    Text `json:"category"`
	SubCategory Text `json:"sub_category"`

	// Malformed marks a selection that was not a JSON object
	Malformed bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (m *ModelSelection) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*m = ModelSelection{Malformed: true}
		return nil
	}
	type plain ModelSelection
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = ModelSelection(p)
	return nil
}

// Key identifies the model in discount and usage tables: id, else code
func (m ModelSelection) Key() string {
	if m.ID != "" {
		return string(m.ID)
	}
	return string(m.Code)
}

// DisplayName is the label shown for the model
func (m ModelSelection) DisplayName() string {
	for _, s := range []Text{m.ModelName, m.Name, m.Code} {
		if s != "" {
			return string(s)
		}
	}
	return ""
}

// PriceEntry is one billable dimension of a spec
type PriceEntry struct {
	DimensionCode Text   `json:"dimension_code"`
	UnitPrice     Amount `json:"unit_price"`

	// Malformed marks an entry that was not a JSON object
	Malformed bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (e *PriceEntry) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*e = PriceEntry{Malformed: true}
		return nil
	}
	type plain PriceEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = PriceEntry(p)
	return nil
}

// PriceList is a list of price entries; any non-array decodes as empty
type PriceList []PriceEntry

// UnmarshalJSON implements json.Unmarshaler
func (l *PriceList) UnmarshalJSON(data []byte) error {
	*l = nil
	if !isArray(data) {
		return nil
	}
	var entries []PriceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*l = entries
	return nil
}

// PriceSpec is one concrete pricing configuration of a model. It carries
// either a price list or the legacy flat input/output prices.
type PriceSpec struct {
	ID          Text      `json:"id"`
	ModelName   Text      `json:"model_name"`
	Mode        Text      `json:"mode"`
	TokenTier   Text      `json:"token_tier"`
	TokenRange  Text      `json:"token_range"`
	Prices      PriceList `json:"prices"`
	InputPrice  Amount    `json:"input_price"`
	OutputPrice Amount    `json:"output_price"`
	Remark      Text      `json:"remark"`

	// Malformed marks a spec that was not a JSON object
	Malformed bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (s *PriceSpec) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*s = PriceSpec{Malformed: true}
		return nil
	}
	type plain PriceSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = PriceSpec(p)
	return nil
}

// SpecList is a list of specs; any non-array decodes as empty
type SpecList []PriceSpec

// UnmarshalJSON implements json.Unmarshaler
func (l *SpecList) UnmarshalJSON(data []byte) error {
	*l = nil
	if !isArray(data) {
		return nil
	}
	var specs []PriceSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return err
	}
	*l = specs
	return nil
}

// ModelConfiguration holds the specs chosen for a model. Three shapes are
// in circulation: variants (current), specs (legacy list) and spec (legacy
// single).
type ModelConfiguration struct {
	Variants SpecList   `json:"variants"`
	Specs    SpecList   `json:"specs"`
	Spec     *PriceSpec `json:"spec"`

	// Malformed marks a configuration that was not a JSON object
	Malformed bool `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ModelConfiguration) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*c = ModelConfiguration{Malformed: true}
		return nil
	}
	type plain ModelConfiguration
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = ModelConfiguration(p)
	return nil
}

// Configurations maps model id or model code to its configuration
type Configurations map[string]ModelConfiguration

// OverrideEntry holds the per-spec discount percents of one model
type OverrideEntry struct {
	Specs map[string]Amount

	// Malformed marks an entry that was not a JSON object
	Malformed bool
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OverrideEntry) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		*o = OverrideEntry{Malformed: true}
		return nil
	}
	var specs map[string]Amount
	if err := json.Unmarshal(data, &specs); err != nil {
		return err
	}
	*o = OverrideEntry{Specs: specs}
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OverrideEntry) MarshalJSON() ([]byte, error) {
	if o.Malformed {
		return []byte("null"), nil
	}
	return json.Marshal(o.Specs)
}

// DiscountOverrides maps model id to per-spec discount percents
type DiscountOverrides map[string]OverrideEntry

// UsageEntry maps spec id to a daily usage string
type UsageEntry map[string]Text

// UnmarshalJSON implements json.Unmarshaler
func (u *UsageEntry) UnmarshalJSON(data []byte) error {
	*u = nil
	if !isObject(data) {
		return nil
	}
	var m map[string]Text
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*u = m
	return nil
}

// UsageTable maps model id to per-spec daily usage
type UsageTable map[string]UsageEntry

// Daily returns the daily usage recorded for a model spec, or ""
func (u UsageTable) Daily(modelID, specID string) Text {
	return u[modelID][specID]
}
