package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"quote-report/internal/errors"
)

// Environment variables that override file settings.
const (
	EnvPriceUnit      = "QUOTE_PRICE_UNIT"
	EnvCurrencySymbol = "QUOTE_CURRENCY_SYMBOL"
	EnvDaysPerMonth   = "QUOTE_DAYS_PER_MONTH"
	EnvTitle          = "QUOTE_TITLE"
	EnvLogLevel       = "QUOTE_LOG_LEVEL"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment. Files that do not exist are ignored; variables already set
// are left alone.
func LoadDotEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return errors.Config("loading env file", err)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c and revalidates it.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPriceUnit); ok && v != "" {
		c.Quote.PriceUnit = v
	}
	if v, ok := lookup(EnvCurrencySymbol); ok && v != "" {
		c.Quote.CurrencySymbol = v
	}
	if v, ok := lookup(EnvTitle); ok && v != "" {
		c.Quote.Title = v
	}
	if v, ok := lookup(EnvDaysPerMonth); ok && v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return errors.Config(EnvDaysPerMonth+" is not an integer", err)
		}
		c.Quote.DaysPerMonth = days
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	return c.Validate()
}
