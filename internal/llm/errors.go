package llm

import "errors"

var (
	// ErrGenerationFailed is returned when the model call errors or
	// produces no text. Callers surface it to the user and must not retry.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInsufficientCredit is returned when the user's daily balance is
	// exhausted before the model is called.
	ErrInsufficientCredit = errors.New("no credits remaining for today")
)
