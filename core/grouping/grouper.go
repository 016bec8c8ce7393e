// Package grouping - Model grouping
// Classifies every selected model, normalizes its specs and files it under
// its catalog category. Each selection yields an Outcome; a model that
// cannot be grouped is skipped with a reason and the batch carries on.
package grouping

import (
	"fmt"

	"go.uber.org/zap"

	"quote-report/core/catalog"
	"quote-report/core/classify"
	"quote-report/core/pricing"
	"quote-report/core/types"
	"quote-report/internal/errors"
)

// Skip reasons
const (
	ReasonMalformedSelection = "selection is not an object"
	ReasonNoConfiguration    = "no configuration"
	ReasonMalformedConfig    = "configuration is not an object"
	ReasonNoSpecs            = "no specs configured"
	ReasonNoValidSpecs       = "no well-formed specs"
)

// Entry is a model together with its normalized specs
type Entry struct {
	Model types.ModelSelection   `json:"model"`
	Specs []types.NormalizedSpec `json:"specs"`
}

// Outcome is the grouping result of a single selection
type Outcome struct {
	Model    types.ModelSelection `json:"model"`
	Category string               `json:"category,omitempty"`

	// SpecCount is the number of specs kept
	SpecCount int `json:"spec_count"`

	// Dropped counts spec entries that were not objects
	Dropped int `json:"dropped,omitempty"`

	// Err is set when the model was skipped
	Err *errors.Error `json:"error,omitempty"`
}

// Skipped reports whether the model was left out
func (o Outcome) Skipped() bool {
	return o.Err != nil
}

// Result aggregates a grouping batch
type Result struct {
	// Buckets maps category key to its entries in selection order
	Buckets map[string][]Entry

	// Outcomes has one element per selection, in selection order
	Outcomes []Outcome
}

// Bucket returns the entries of a category
func (r *Result) Bucket(key string) []Entry {
	return r.Buckets[key]
}

// Empty reports whether no model survived grouping
func (r *Result) Empty() bool {
	return len(r.Buckets) == 0
}

// Skipped returns the outcomes of skipped models
func (r *Result) Skipped() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Skipped() {
			out = append(out, o)
		}
	}
	return out
}

// Grouper groups selections by category
type Grouper struct {
	classifier *classify.Classifier
	normalizer *pricing.Normalizer
	logger     *zap.Logger
}

// New creates a grouper. A nil logger discards diagnostics.
func New(c *catalog.Catalog, logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{
		classifier: classify.New(c),
		normalizer: pricing.NewNormalizer(c),
		logger:     logger,
	}
}

// Group processes every selection. It never fails; an empty Result means
// there is nothing to render.
func (g *Grouper) Group(selections []types.ModelSelection, configs types.Configurations) *Result {
	result := &Result{
		Buckets:  make(map[string][]Entry),
		Outcomes: make([]Outcome, 0, len(selections)),
	}

	for _, sel := range selections {
		outcome, entry := g.groupOne(sel, configs)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Skipped() {
			g.logger.Warn("model skipped",
				zap.String("model", sel.Key()),
				zap.String("reason", outcome.Err.Message))
			continue
		}
		if outcome.Dropped > 0 {
			g.logger.Warn("malformed specs dropped",
				zap.String("model", sel.Key()),
				zap.Int("dropped", outcome.Dropped))
		}
		g.logger.Debug("model grouped",
			zap.String("model", sel.Key()),
			zap.String("category", outcome.Category),
			zap.Int("specs", outcome.SpecCount))
		result.Buckets[outcome.Category] = append(result.Buckets[outcome.Category], entry)
	}

	return result
}

func (g *Grouper) groupOne(sel types.ModelSelection, configs types.Configurations) (outcome Outcome, entry Entry) {
	outcome.Model = sel
	defer func() {
		if r := recover(); r != nil {
			outcome.Err = errors.Skipped(fmt.Sprintf("grouping failed: %v", r))
		}
	}()

	if sel.Malformed {
		outcome.Err = errors.Skipped(ReasonMalformedSelection)
		return outcome, entry
	}

	cfg, ok := lookupConfig(sel, configs)
	if !ok {
		outcome.Err = errors.Skipped(ReasonNoConfiguration)
		return outcome, entry
	}
	if cfg.Malformed {
		outcome.Err = errors.Skipped(ReasonMalformedConfig)
		return outcome, entry
	}

	raw := specList(cfg)
	if len(raw) == 0 {
		outcome.Err = errors.Skipped(ReasonNoSpecs)
		return outcome, entry
	}

	specs := make([]types.NormalizedSpec, 0, len(raw))
	for _, spec := range raw {
		if spec.Malformed {
			outcome.Dropped++
			continue
		}
		specs = append(specs, g.normalizeSpec(sel, spec))
	}
	if len(specs) == 0 {
		outcome.Err = errors.Skipped(ReasonNoValidSpecs)
		return outcome, entry
	}

	outcome.Category = g.classifier.Classify(sel)
	outcome.SpecCount = len(specs)
	return outcome, Entry{Model: sel, Specs: specs}
}

func (g *Grouper) normalizeSpec(sel types.ModelSelection, spec types.PriceSpec) types.NormalizedSpec {
	tier := "-"
	if spec.TokenTier != "" {
		tier = string(spec.TokenTier)
	} else if spec.TokenRange != "" {
		tier = string(spec.TokenRange)
	}

	return types.NormalizedSpec{
		ID:              string(spec.ID),
		ModelName:       spec.ModelName.Or(sel.DisplayName()),
		Mode:            spec.Mode.Or("-"),
		TokenRange:      tier,
		NormalizedPrice: g.normalizer.Normalize(spec),
		Remark:          string(spec.Remark),
	}
}

// lookupConfig finds the configuration keyed by id, then by code
func lookupConfig(sel types.ModelSelection, configs types.Configurations) (types.ModelConfiguration, bool) {
	for _, key := range []types.Text{sel.ID, sel.Code} {
		if key == "" {
			continue
		}
		if cfg, ok := configs[string(key)]; ok {
			return cfg, true
		}
	}
	return types.ModelConfiguration{}, false
}

// specList picks the first non-empty spec shape: variants, specs, spec
func specList(cfg types.ModelConfiguration) []types.PriceSpec {
	switch {
	case len(cfg.Variants) > 0:
		return cfg.Variants
	case len(cfg.Specs) > 0:
		return cfg.Specs
	case cfg.Spec != nil:
		return []types.PriceSpec{*cfg.Spec}
	}
	return nil
}
