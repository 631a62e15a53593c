package catalog

import "fmt"

// CatalogError describes an invalid catalog document.
type CatalogError struct {
	// Path is the slash-joined node path of the offending entry (empty for
	// document-level errors).
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	msg := "invalid catalog"
	if e.Path != "" {
		msg += fmt.Sprintf(" [node: %s]", e.Path)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

func newCatalogError(path, message string, cause error) *CatalogError {
	return &CatalogError{Path: path, Message: message, Cause: cause}
}
