package render

import "fmt"

// TemplateSyntaxError reports a template that failed to compile.
type TemplateSyntaxError struct {
	// Name is the template name (usually its file path).
	Name string
	// Line is the line number where the error occurred (1-indexed, 0 if unknown).
	Line int
	// Message is the error message.
	Message string
	// Cause is the underlying engine error.
	Cause error
}

// Error implements the error interface.
func (e *TemplateSyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: template syntax error: %s", e.Name, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: template syntax error: %s", e.Name, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TemplateSyntaxError) Unwrap() error {
	return e.Cause
}

// RenderError reports a compiled template that failed during execution.
type RenderError struct {
	// Name is the template name.
	Name string
	// Cause is the underlying engine error.
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render template %s: %v", e.Name, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Cause
}
