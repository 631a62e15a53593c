package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ConfigLoadFailed indicates configuration loading failed.
	ConfigLoadFailed AppErrorType = iota
	// CatalogLoadFailed indicates the template catalog could not be loaded.
	CatalogLoadFailed
	// TemplateNotFound indicates the templates root or a template is missing.
	TemplateNotFound
	// ResolveFailed indicates the interactive resolution failed.
	ResolveFailed
	// MaterializeFailed indicates writing the project failed.
	MaterializeFailed
)

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

// NewCatalogError creates a catalog load error.
func NewCatalogError(message string, cause error) *AppError {
	return NewAppError(CatalogLoadFailed, message, cause)
}

// NewTemplateNotFoundError creates a template lookup error.
func NewTemplateNotFoundError(message string, cause error) *AppError {
	return NewAppError(TemplateNotFound, message, cause)
}

// NewResolveError creates a resolution error.
func NewResolveError(message string, cause error) *AppError {
	return NewAppError(ResolveFailed, message, cause)
}

// NewMaterializeError creates a materialization error.
func NewMaterializeError(message string, cause error) *AppError {
	return NewAppError(MaterializeFailed, message, cause)
}
