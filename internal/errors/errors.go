package errors

import "fmt"

// Kind classifies an error so handlers can map it to an HTTP status
// without inspecting message text.
type Kind int

const (
	ErrInternal Kind = iota
	ErrNotFound
	ErrValidation
	ErrConflict
	ErrInvalidInput
)

func (k Kind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrValidation:
		return "validation"
	case ErrConflict:
		return "conflict"
	case ErrInvalidInput:
		return "invalid input"
	default:
		return "internal"
	}
}

// Error carries a Kind alongside the message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func Conflict(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

func InvalidInput(msg string) *Error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

func InvalidInputf(format string, args ...any) *Error {
	return InvalidInput(fmt.Sprintf(format, args...))
}

// Internal hides the cause behind a generic message; the cause stays
// reachable through Unwrap for logging.
func Internal(err error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Err: err}
}

func Internalf(format string, args ...any) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and context message to an existing error.
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
