package config

import (
	"path/filepath"
	"strings"
)

// Validate checks a Config for structural problems. It returns a
// *ValidationErrors aggregating every failure, or nil when valid.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if cfg == nil {
		return &ValidationErrors{Errors: []ValidationError{{
			Field:   "config",
			Message: "configuration is nil",
			Wrapped: ErrInvalidConfig,
		}}}
	}

	if d := cfg.Docs.Dir; d != "" {
		if filepath.IsAbs(d) {
			errs = append(errs, ValidationError{
				Field:   "docs.dir",
				Message: "must be relative to the project root",
				Value:   d,
				Wrapped: ErrInvalidConfig,
			})
		}
		if strings.ContainsAny(d, `/\`) {
			errs = append(errs, ValidationError{
				Field:   "docs.dir",
				Message: "must be a single path element",
				Value:   d,
				Wrapped: ErrInvalidConfig,
			})
		}
		if d == "." || d == ".." {
			errs = append(errs, ValidationError{
				Field:   "docs.dir",
				Message: "must name a directory",
				Value:   d,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if strings.TrimSpace(cfg.Project.Name) != cfg.Project.Name {
		errs = append(errs, ValidationError{
			Field:   "project.name",
			Message: "must not have leading or trailing whitespace",
			Value:   cfg.Project.Name,
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
