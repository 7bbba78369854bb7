package config

import (
	"fmt"
	"strings"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates a directory has no config.* file.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates a configuration file does not have the expected shape.
	ConfigInvalid
	// ConfigValidationFailed indicates a required key is missing or has a bad value.
	ConfigValidationFailed
)

// String returns a short name for the error type.
func (t ConfigErrorType) String() string {
	switch t {
	case ConfigNotFound:
		return "not found"
	case ConfigInvalid:
		return "invalid"
	case ConfigValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// ConfigError reports a problem with one of the generator, content root or
// slide group configuration files.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// File is the configuration file, or the directory searched when Type is ConfigNotFound.
	File string
	// Field is the key path of the offending value, e.g. "presentation.filename" or "order[2]".
	Field string
	// Message describes the problem.
	Message string
	// Cause is the underlying error if any.
	Cause error
}

// Error formats the error as "<file>: <field>: <message>: <cause>",
// leaving out empty parts.
func (e *ConfigError) Error() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{e.File, e.Field, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return "config " + e.Type.String() + ": " + strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(typ ConfigErrorType, file, message string) *ConfigError {
	return &ConfigError{Type: typ, File: file, Message: message}
}

// NewConfigErrorWithField creates a ConfigError for the value at field.
func NewConfigErrorWithField(typ ConfigErrorType, file, field, message string) *ConfigError {
	return &ConfigError{Type: typ, File: file, Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{Type: typ, File: file, Message: message, Cause: cause}
}

// NewConfigNotFoundError reports that dir holds no file matching name.
func NewConfigNotFoundError(dir, name string, cause error) *ConfigError {
	return &ConfigError{
		Type:    ConfigNotFound,
		File:    dir,
		Message: fmt.Sprintf("no %s.* file", name),
		Cause:   cause,
	}
}
