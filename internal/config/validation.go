package config

import (
	"fmt"
	"strings"
)

// ValidateRoot validates the generator root configuration.
func ValidateRoot(file string, cfg *RootConfig) error {
	if cfg == nil {
		return NewConfigError(ConfigValidationFailed, file, "configuration cannot be nil")
	}
	if err := validatePlainName(file, "presentation.filename", cfg.Presentation.Filename); err != nil {
		return err
	}
	if err := validatePlainName(file, "content.dirname", cfg.Content.Dirname); err != nil {
		return err
	}
	return nil
}

// ValidateContent validates the content root configuration.
func ValidateContent(file string, cfg *ContentConfig) error {
	if cfg == nil {
		return NewConfigError(ConfigValidationFailed, file, "configuration cannot be nil")
	}
	for i, name := range cfg.Order {
		if strings.TrimSpace(name) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, file, fmt.Sprintf("order[%d]", i),
				"slide group name cannot be empty")
		}
	}
	return nil
}

// validatePlainName checks that value is a single path component.
func validatePlainName(file, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, file, field, "value cannot be empty")
	}
	if value == "." || value == ".." {
		return NewConfigErrorWithField(ConfigValidationFailed, file, field,
			fmt.Sprintf("%q is not a valid name", value))
	}
	if strings.ContainsAny(value, `/\`) {
		return NewConfigErrorWithField(ConfigValidationFailed, file, field,
			"value must be a plain name without path separators")
	}
	return nil
}
