package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ContextInitFailed indicates the generator directory, its configuration
	// or its templates could not be loaded.
	ContextInitFailed AppErrorType = iota
	// PrepareFailed indicates locating, extracting or validating slides failed.
	// Nothing has been written when this error is returned.
	PrepareFailed
	// PublishFailed indicates rendering or writing the distribution directory
	// failed. Render failures happen before any write; a write failure may
	// leave the image directory partially repopulated.
	PublishFailed
)

// String returns the stage name of the error type.
func (t AppErrorType) String() string {
	switch t {
	case ContextInitFailed:
		return "init"
	case PrepareFailed:
		return "prepare"
	case PublishFailed:
		return "publish"
	default:
		return "unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewContextError creates a context initialization error.
func NewContextError(message string, cause error) *AppError {
	return NewAppError(ContextInitFailed, message, cause)
}

// NewPrepareError creates a prepare error.
func NewPrepareError(message string, cause error) *AppError {
	return NewAppError(PrepareFailed, message, cause)
}

// NewPublishError creates a publish error.
func NewPublishError(message string, cause error) *AppError {
	return NewAppError(PublishFailed, message, cause)
}
