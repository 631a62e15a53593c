package materialize

import "fmt"

// MaterializeErrorType categorizes materialization errors.
type MaterializeErrorType int

const (
	// MaterializeSourceMissing indicates the template directory does not exist.
	MaterializeSourceMissing MaterializeErrorType = iota
	// MaterializeReadFailed indicates a template entry could not be read.
	MaterializeReadFailed
	// MaterializeWriteFailed indicates a target write or delete failed.
	MaterializeWriteFailed
	// MaterializeManifestInvalid indicates the template manifest is malformed.
	MaterializeManifestInvalid
	// MaterializeUnsupported indicates a template entry that is neither a
	// regular file nor a directory.
	MaterializeUnsupported
	// MaterializeOverlap indicates the template and target directories
	// contain one another.
	MaterializeOverlap
)

// MaterializeError represents a materialization failure.
type MaterializeError struct {
	// Type categorizes the error.
	Type MaterializeErrorType
	// Message is the error message.
	Message string
	// File is the path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *MaterializeError) Error() string {
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
func (e *MaterializeError) Unwrap() error {
	return e.Cause
}

func newMaterializeError(typ MaterializeErrorType, message, file string, cause error) *MaterializeError {
	return &MaterializeError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
