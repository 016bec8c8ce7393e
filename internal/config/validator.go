package config

import (
	"github.com/go-playground/validator/v10"

	"quote-report/internal/errors"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return errors.Config("invalid configuration file", err)
	}
	return nil
}
