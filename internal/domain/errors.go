package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is, usually through the IsX helpers. They
// carry no transport meaning; adapters map them to status codes.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrFormat      = errors.New("invalid format")
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError reports an absent entity, such as an unset storage key.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError rejects user input. The operation it aborts changes no
// state.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FormatError reports an exchange document that is not a JSON array.
// Both ErrFormat and the decoder's error are reachable through errors.Is.
type FormatError struct {
	Document string
	Reason   string
	Cause    error
}

func NewFormatError(document, reason string, cause error) error {
	return &FormatError{Document: document, Reason: reason, Cause: cause}
}

func (e *FormatError) Error() string {
	msg := e.Document + " has invalid format: " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *FormatError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFormat}
	}

	return []error{ErrFormat, e.Cause}
}

// UnavailableError reports that the remote quote source could not serve a
// fetch or push. The sync engine absorbs it.
type UnavailableError struct {
	Service string
	Reason  string
}

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("service %q unavailable", e.Service)
	}

	return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsFormat(err error) bool      { return errors.Is(err, ErrFormat) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
