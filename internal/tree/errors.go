package tree

import (
	"fmt"
	"strings"
)

// NotADirectoryError is returned when a directory is opened over a plain file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

// NotFoundError is returned when no child matches a lookup query.
type NotFoundError struct {
	// Query is the requested name.
	Query string
	// Dir is the directory that was searched.
	Dir string
	// Kind is "file", "dir" or empty for any item.
	Kind string
}

func (e *NotFoundError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("no %s matching %q in %s", e.Kind, e.Query, e.Dir)
	}
	return fmt.Sprintf("no item matching %q in %s", e.Query, e.Dir)
}

// AmbiguousNameError is returned when a lookup query is a prefix of more than
// one child name and none of them matches exactly.
type AmbiguousNameError struct {
	Query      string
	Dir        string
	Candidates []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous name %q in %s: matches %s",
		e.Query, e.Dir, strings.Join(e.Candidates, ", "))
}

// BoundaryError is returned when asking for the parent of the filesystem root.
type BoundaryError struct {
	Path string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s has no parent directory", e.Path)
}

// ContentDirectoryNotFoundError is returned by Locate when neither the
// starting directory nor its parent holds the content directory.
type ContentDirectoryNotFoundError struct {
	// Name is the content directory name that was looked up.
	Name string
	// Checked lists the directories that were searched, in order.
	Checked []string
}

func (e *ContentDirectoryNotFoundError) Error() string {
	return fmt.Sprintf("content directory %q not found (checked: %s)",
		e.Name, strings.Join(e.Checked, ", "))
}

// ParseError reports malformed structured data in an entry.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to parse %s", e.Path)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
