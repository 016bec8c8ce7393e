// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	"fmt"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateUniqueKeys,
		validateOrdering,
		validatePriceTypes,
		validateRuleTargets,
		validateDefault,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error
	for _, rule := range rules {
		errors = append(errors, rule(c)...)
	}
	return errors
}

// validateUniqueKeys rejects categories declared twice
func validateUniqueKeys(c *Catalog) []error {
	if len(c.entries) == len(c.ordered) {
		return nil
	}
	seen := make(map[string]bool, len(c.ordered))
	var errs []error
	for _, def := range c.ordered {
		if seen[def.Key] {
			errs = append(errs, fmt.Errorf("category %q declared more than once", def.Key))
		}
		seen[def.Key] = true
	}
	return errs
}

// validateOrdering requires orders 1..n with no gaps or repeats
func validateOrdering(c *Catalog) []error {
	var errs []error
	for i, def := range c.ordered {
		if def.Order != i+1 {
			errs = append(errs, fmt.Errorf("category %q has order %d, want %d", def.Key, def.Order, i+1))
		}
	}
	return errs
}

func validatePriceTypes(c *Catalog) []error {
	var errs []error
	for _, def := range c.ordered {
		if !def.PriceType.Valid() {
			errs = append(errs, fmt.Errorf("category %q: unknown price_type %q", def.Key, def.PriceType))
		}
	}
	if !c.fallback.PriceType.Valid() {
		errs = append(errs, fmt.Errorf("fallback: unknown price_type %q", c.fallback.PriceType))
	}
	return errs
}

func validateRuleTargets(c *Catalog) []error {
	var errs []error
	for _, r := range c.rules {
		if _, ok := c.entries[r.Category]; !ok {
			errs = append(errs, fmt.Errorf("rule targets unknown category %q", r.Category))
		}
		if len(r.Contains)+len(r.Prefixes)+len(r.Suffixes) == 0 {
			errs = append(errs, fmt.Errorf("rule %q has no patterns", r.Category))
		}
	}
	return errs
}

func validateDefault(c *Catalog) []error {
	if _, ok := c.entries[c.defaultKey]; !ok {
		return []error{fmt.Errorf("default_category %q is not a category", c.defaultKey)}
	}
	return nil
}
