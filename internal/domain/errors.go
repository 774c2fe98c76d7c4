package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how the bot recovers from it.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindMalformedRecord Kind = "malformed_record"
	KindDelivery        Kind = "delivery"
	KindStorage         Kind = "storage"
	KindConfiguration   Kind = "configuration"
)

// Domain errors.
var (
	ErrInvalidDateTime     = errors.New("invalid date or time")
	ErrMissingDescription  = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description is too long")
	ErrNotInGuild          = errors.New("command must be used in a server channel")
	ErrMalformedEventTime  = errors.New("stored event time is not a valid timestamp")
	ErrChannelUnavailable  = errors.New("destination channel does not exist or is not accessible")
	ErrMissingConfigValue  = errors.New("required configuration value is missing")
	ErrInvalidConfigValue  = errors.New("configuration value is invalid")
	ErrUnsupportedDatabase = errors.New("unsupported database url")
)

// Error carries a Kind and a stable code alongside the wrapped cause.
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.Code
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, code string, err error) error {
	return &Error{Kind: kind, Code: code, Err: err}
}

// Validation reports bad user input. It is shown to the user and never mutates state.
func Validation(code string, err error) error { return newError(KindValidation, code, err) }

// MalformedRecord reports a stored event that can no longer be interpreted.
func MalformedRecord(code string, err error) error {
	return newError(KindMalformedRecord, code, err)
}

// Delivery reports an outbound send failure.
func Delivery(code string, err error) error { return newError(KindDelivery, code, err) }

// Storage reports a durable-store I/O failure. op names the failed operation.
func Storage(op string, err error) error { return newError(KindStorage, op, err) }

// Configuration reports a missing or invalid setting at startup.
func Configuration(code string, err error) error {
	return newError(KindConfiguration, code, err)
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
