package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that the catalog file exists
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", e.Field(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := os.Stat(c.CatalogPath); err != nil {
		return fmt.Errorf("%s %q is not readable: %w", EnvCatalogPath, c.CatalogPath, err)
	}

	return nil
}

// Warnings reports settings that work but are probably unintended
func (c *Config) Warnings() []string {
	var warnings []string

	if c.ProfileDir != "" {
		if info, err := os.Stat(c.ProfileDir); err != nil || !info.IsDir() {
			warnings = append(warnings, fmt.Sprintf("%s %q is not a directory - no search profiles will be available", EnvProfileDir, c.ProfileDir))
		}
	}

	if c.SearchWorkers > runtime.NumCPU() {
		warnings = append(warnings, fmt.Sprintf("%s=%d exceeds the %d available CPUs", EnvSearchWorkers, c.SearchWorkers, runtime.NumCPU()))
	}

	if c.APIKey == "" && c.Environment == "prod" {
		warnings = append(warnings, fmt.Sprintf("%s is empty - the HTTP API is unauthenticated", EnvAPIKey))
	}

	if c.SearchCacheTTL == 0 {
		warnings = append(warnings, fmt.Sprintf("%s=0 keeps cached results until evicted", EnvSearchCacheTTL))
	}

	return warnings
}
