// Package catalog - Authoritative product category catalog
// Defines the twelve quotation categories, the unit labels of non-token
// dimensions and the name heuristics used to classify models. The catalog
// is decoded once from an embedded HCL file and never mutated.
package catalog

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"quote-report/internal/errors"
)

//go:embed catalog.hcl
var embedded []byte

// PriceType is how a category bills
type PriceType string

const (
	PriceToken     PriceType = "token"
	PriceImage     PriceType = "image"
	PriceCharacter PriceType = "character"
	PriceAudio     PriceType = "audio"
	PriceVideo     PriceType = "video"
)

// IsToken reports whether the category bills by tokens
func (p PriceType) IsToken() bool {
	return p == PriceToken
}

// Valid reports whether p is a known price type
func (p PriceType) Valid() bool {
	switch p {
	case PriceToken, PriceImage, PriceCharacter, PriceAudio, PriceVideo:
		return true
	}
	return false
}

// Definition is a catalog entry for a category
type Definition struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	PriceType PriceType `json:"price_type"`
	Order     int       `json:"order"`
}

// Label is the section band text, e.g. "💬 文本生成-通义千问"
func (d Definition) Label() string {
	return d.Icon + " " + d.Name
}

// Rule maps a family of model names onto a category
type Rule struct {
	Category string
	Contains []string
	Prefixes []string
	Suffixes []string
}

// Matches reports whether a lower-cased name belongs to the rule
func (r Rule) Matches(name string) bool {
	for _, s := range r.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, c := range r.Contains {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// Catalog is the category catalog
type Catalog struct {
	entries    map[string]Definition
	ordered    []Definition
	units      map[string]string
	rules      []Rule
	defaultKey string
	fallback   Definition
}

type fileSchema struct {
	Categories      []categoryBlock `hcl:"category,block"`
	Units           []unitBlock     `hcl:"unit,block"`
	Rules           []ruleBlock     `hcl:"rule,block"`
	DefaultCategory string          `hcl:"default_category"`
	Fallback        fallbackBlock   `hcl:"fallback,block"`
}

type categoryBlock struct {
	Key       string `hcl:"key,label"`
	Name      string `hcl:"name"`
	Icon      string `hcl:"icon"`
	PriceType string `hcl:"price_type"`
	Order     int    `hcl:"order"`
}

type unitBlock struct {
	Code  string `hcl:"code,label"`
	Label string `hcl:"label"`
}

type ruleBlock struct {
	Category string   `hcl:"category,label"`
	Contains []string `hcl:"contains,optional"`
	Prefixes []string `hcl:"prefixes,optional"`
	Suffixes []string `hcl:"suffixes,optional"`
}

type fallbackBlock struct {
	Icon      string `hcl:"icon"`
	PriceType string `hcl:"price_type"`
}

// Parse decodes and validates an HCL catalog. filename must end in .hcl.
func Parse(filename string, src []byte) (*Catalog, error) {
	var schema fileSchema
	if err := hclsimple.Decode(filename, src, nil, &schema); err != nil {
		return nil, errors.Catalog("decoding catalog", err).WithContext("file", filename)
	}

	c := &Catalog{
		entries:    make(map[string]Definition, len(schema.Categories)),
		units:      make(map[string]string, len(schema.Units)),
		defaultKey: schema.DefaultCategory,
		fallback: Definition{
			Icon:      schema.Fallback.Icon,
			PriceType: PriceType(schema.Fallback.PriceType),
		},
	}
	for _, b := range schema.Categories {
		def := Definition{
			Key:       b.Key,
			Name:      b.Name,
			Icon:      b.Icon,
			PriceType: PriceType(b.PriceType),
			Order:     b.Order,
		}
		c.entries[def.Key] = def
		c.ordered = append(c.ordered, def)
	}
	sort.SliceStable(c.ordered, func(i, j int) bool {
		return c.ordered[i].Order < c.ordered[j].Order
	})
	for _, u := range schema.Units {
		c.units[u.Code] = u.Label
	}
	for _, r := range schema.Rules {
		c.rules = append(c.rules, Rule(r))
	}

	if errs := c.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Catalog("invalid catalog", errs[0]).
			WithContext("file", filename).
			WithContext("errors", len(errs))
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Load returns the built-in catalog, decoding it on first use
func Load() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse("catalog.hcl", embedded)
	})
	return defaultCatalog, defaultErr
}

// Default returns the built-in catalog and panics if it does not decode
func Default() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the definition registered under key
func (c *Catalog) Get(key string) (Definition, bool) {
	def, ok := c.entries[key]
	return def, ok
}

// Lookup matches key against the catalog case-insensitively
func (c *Catalog) Lookup(key string) (Definition, bool) {
	return c.Get(strings.ToLower(key))
}

// Resolve returns the definition for key, or a generic definition labeled
// with the key itself when the catalog does not know it
func (c *Catalog) Resolve(key string) Definition {
	if def, ok := c.Get(key); ok {
		return def
	}
	generic := c.fallback
	generic.Key = key
	generic.Name = key
	generic.Order = len(c.ordered) + 1
	return generic
}

// Definitions returns all categories in report order
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// UnitLabel returns the unit label of a non-token dimension code
func (c *Catalog) UnitLabel(dimension string) (string, bool) {
	label, ok := c.units[dimension]
	return label, ok
}

// Rules returns the name heuristics in evaluation order
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// DefaultKey is the category of models no rule matches
func (c *Catalog) DefaultKey() string {
	return c.defaultKey
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{ByPriceType: make(map[PriceType]int)}
	for _, def := range c.ordered {
		stats.Total++
		if def.PriceType.IsToken() {
			stats.Token++
		} else {
			stats.NonToken++
		}
		stats.ByPriceType[def.PriceType]++
	}
	stats.Units = len(c.units)
	stats.Rules = len(c.rules)
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Total       int
	Token       int
	NonToken    int
	Units       int
	Rules       int
	ByPriceType map[PriceType]int
}
