package payment

import (
	"errors"
	"fmt"
)

const InvalidAmountMessage = "Invalid amount_cents. Must be a positive number."

var (
	ErrClient    = errors.New("client error")
	ErrProcessor = errors.New("processor error")
	ErrInFlight  = NewClientError("idempotency key is already being processed", nil)

	ErrInvalidAmount = NewClientError(InvalidAmountMessage, nil)
)

// Error is a classified failure. Message is what the caller sees.
type Error struct {
	kind    error
	Message string
	Err     error
}

func NewClientError(message string, cause error) *Error {
	return &Error{kind: ErrClient, Message: message, Err: cause}
}

func NewProcessorError(message string, cause error) *Error {
	return &Error{kind: ErrProcessor, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

// Message returns the caller-facing text of err: the classified message when
// err is (or wraps) an *Error, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
