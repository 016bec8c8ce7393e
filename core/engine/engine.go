// Package engine provides the API-primary quotation engine.
// CLI is a thin wrapper around this engine.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quote-report/core/catalog"
	"quote-report/core/discount"
	"quote-report/core/grouping"
	"quote-report/core/input"
	"quote-report/core/pricing"
	"quote-report/core/report"
	"quote-report/core/usage"
	"quote-report/internal/config"
	"quote-report/internal/errors"
)

// Engine is the primary API for quotation reports.
// All other interfaces (CLI, tests) are thin wrappers.
type Engine struct {
	catalog  *catalog.Catalog
	grouper  *grouping.Grouper
	renderer *report.Renderer
	config   EngineConfig
	logger   *zap.Logger
}

// EngineConfig configures the quotation engine
type EngineConfig struct {
	// Title heads every report
	Title string

	// PriceUnit applies when a request names none
	PriceUnit pricing.PriceUnit

	// Projector turns daily usage into monthly figures
	Projector usage.Projector
}

// DefaultEngineConfig mirrors the default application config
func DefaultEngineConfig() EngineConfig {
	return EngineConfigFrom(config.Default())
}

// EngineConfigFrom derives engine settings from the application config
func EngineConfigFrom(cfg *config.Config) EngineConfig {
	return EngineConfig{
		Title:     cfg.Quote.Title,
		PriceUnit: pricing.PriceUnit(cfg.Quote.PriceUnit),
		Projector: usage.Projector{
			Days:     cfg.Quote.DaysPerMonth,
			Currency: cfg.Quote.CurrencySymbol,
		},
	}
}

// NewEngine creates a new quotation engine. A nil logger discards
// diagnostics.
func NewEngine(c *catalog.Catalog, cfg EngineConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:  c,
		grouper:  grouping.New(c, logger.Named("grouping")),
		renderer: report.NewRenderer(c, cfg.Projector),
		config:   cfg,
		logger:   logger,
	}
}

// Generate builds the quotation for a request. A request that groups to
// nothing yields an empty report, not an error.
func (e *Engine) Generate(ctx context.Context, req *input.Request) (*report.Report, error) {
	if req == nil {
		return nil, errors.Input("request is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("generation cancelled", err)
	}
	start := time.Now()

	global := req.CustomerInfo.DiscountPercent.OrZero()
	unit := e.config.PriceUnit
	if req.PriceUnit != "" {
		unit = pricing.PriceUnit(req.PriceUnit)
	}

	result := e.grouper.Group(req.SelectedModels, req.ModelConfigs)

	// one layout for the whole report
	showDiscount := discount.AnyDiscount(req.SpecDiscounts, global)

	sections := e.renderer.Render(result, report.Options{
		Overrides:      req.SpecDiscounts,
		GlobalDiscount: global,
		Usage:          req.DailyUsages,
		PriceUnit:      unit,
		ShowDiscount:   showDiscount,
	})

	r := &report.Report{
		Meta: report.Meta{
			QuoteID:       quoteID(req.Source.Digest),
			Title:         e.config.Title,
			CustomerName:  req.CustomerInfo.CustomerName.String(),
			QuoteDate:     req.CustomerInfo.QuoteDate.String(),
			ValidUntil:    req.CustomerInfo.ValidUntil.String(),
			DiscountLabel: discount.Label(global),
		},
		ShowDiscount: showDiscount,
		PriceUnit:    unit,
		Sections:     sections,
		Notes:        report.Notes(global),
		MonthlyTotal: e.renderer.Total(sections),
		Skipped:      result.Skipped(),
	}

	e.logger.Info("report generated",
		zap.String("digest", req.Source.Digest),
		zap.Int("selected", len(req.SelectedModels)),
		zap.Int("sections", len(r.Sections)),
		zap.Int("skipped", len(r.Skipped)),
		zap.Bool("show_discount", showDiscount),
		zap.Duration("duration", time.Since(start)))
	return r, nil
}

// quoteIDSpace namespaces quote ids derived from request digests
var quoteIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quote-report/quote"))

func quoteID(digest string) string {
	if digest == "" {
		return ""
	}
	return uuid.NewSHA1(quoteIDSpace, []byte(digest)).String()
}

// Catalog returns the category catalog the engine uses
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
