package resolver

import "errors"

// ErrCancelled is returned when the user declines or interrupts a prompt.
// It is a terminal state, not a failure.
var ErrCancelled = errors.New("operation cancelled")

// Validator checks a prompt answer and returns a user-facing error.
type Validator func(ans interface{}) error

// TextPrompt asks for free text.
type TextPrompt struct {
	Message string
	Default string
	// Validate, when set, must accept the answer before it is returned.
	Validate Validator
	// Normalize, when set, is applied to the raw answer.
	Normalize func(string) string
}

// ConfirmPrompt asks a yes/no question.
type ConfirmPrompt struct {
	Message string
	Default bool
}

// SelectPrompt asks for one of Options and answers with its index.
type SelectPrompt struct {
	Message string
	Options []string
	Default int
}

// Prompter is the interactive surface the resolver drives. Implementations
// return ErrCancelled when the user interrupts a prompt.
type Prompter interface {
	Input(p TextPrompt) (string, error)
	Confirm(p ConfirmPrompt) (bool, error)
	Select(p SelectPrompt) (int, error)
}
