// Package classify assigns every selected model to one catalog category.
package classify

import (
	"strings"

	"quote-report/core/catalog"
	"quote-report/core/types"
)

// Classifier maps model selections onto catalog keys
type Classifier struct {
	catalog *catalog.Catalog
	rules   []catalog.Rule
}

// New creates a classifier backed by c
func New(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c, rules: c.Rules()}
}

// Classify always returns a catalog key. An explicit category wins, then
// an explicit sub-category; values the catalog does not know are ignored.
// Otherwise the name heuristics run over the first non-empty of code,
// name and display name, and the catalog default applies when none match.
func (c *Classifier) Classify(sel types.ModelSelection) string {
	if def, ok := c.catalog.Lookup(string(sel.Category)); ok {
		return def.Key
	}
	if def, ok := c.catalog.Lookup(string(sel.SubCategory)); ok {
		return def.Key
	}

	name := strings.ToLower(firstNonEmpty(sel.Code, sel.Name, sel.ModelName))
	if name != "" {
		for _, rule := range c.rules {
			if rule.Matches(name) {
				return rule.Category
			}
		}
	}
	return c.catalog.DefaultKey()
}

func firstNonEmpty(values ...types.Text) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}
