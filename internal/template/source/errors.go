package source

import "fmt"

// SourceErrorType represents the type of template source error.
type SourceErrorType int

const (
	// SourceRootNotFound indicates no templates root directory could be found.
	SourceRootNotFound SourceErrorType = iota
	// SourceNotFound indicates a template directory is missing under the root.
	SourceNotFound
	// SourceInvalidTemplate indicates the template directory is malformed.
	SourceInvalidTemplate
	// SourceReadFailed indicates the filesystem could not be queried.
	SourceReadFailed
)

// String returns the string representation of the error type.
func (t SourceErrorType) String() string {
	switch t {
	case SourceRootNotFound:
		return "RootNotFound"
	case SourceNotFound:
		return "NotFound"
	case SourceInvalidTemplate:
		return "InvalidTemplate"
	case SourceReadFailed:
		return "ReadFailed"
	default:
		return "Unknown"
	}
}

// SourceError represents a template source error.
type SourceError struct {
	// Type is the error type classification.
	Type SourceErrorType
	// Message is the human-readable error message.
	Message string
	// Path is the directory that caused the error.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template source error [%s] at '%s': %s (caused by: %v)",
			e.Type.String(), e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("template source error [%s] at '%s': %s",
		e.Type.String(), e.Path, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

func newSourceError(typ SourceErrorType, path, message string, cause error) *SourceError {
	return &SourceError{Type: typ, Message: message, Path: path, Cause: cause}
}
