package publish

import "fmt"

// PublishErrorType categorizes publish errors.
type PublishErrorType int

const (
	// PublishWriteFailed indicates a file write operation failed.
	PublishWriteFailed PublishErrorType = iota
	// PublishResetFailed indicates an output directory could not be cleared or recreated.
	PublishResetFailed
	// PublishCopyFailed indicates an asset could not be copied.
	PublishCopyFailed
)

// PublishError represents an error while writing to the distribution directory.
type PublishError struct {
	// Type categorizes the error.
	Type PublishErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *PublishError) Unwrap() error {
	return e.Cause
}

func newPublishError(typ PublishErrorType, message, file string, cause error) *PublishError {
	return &PublishError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
