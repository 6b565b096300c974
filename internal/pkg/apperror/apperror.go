package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so delivery layers (REST controllers,
// websocket handlers) can map it to a status code or error event without
// inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindForbidden
	KindNotFound
	KindInvalidOperation
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause for logs while presenting a clean message outward.
func Wrap(kind Kind, message string, err error) error {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string) error     { return New(KindInvalidInput, message) }
func Forbidden(message string) error        { return New(KindForbidden, message) }
func NotFound(message string) error         { return New(KindNotFound, message) }
func InvalidOperation(message string) error { return New(KindInvalidOperation, message) }
func RateLimited(message string) error      { return New(KindRateLimited, message) }
func Internal(message string, err error) error {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the Kind of err; unclassified errors are Internal.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
