package entity

import "errors"

// Error taxonomy. Services attach a user-safe message to one of these
// sentinels; handlers map them to HTTP status codes with errors.Is. Anything
// outside the taxonomy is a store failure and surfaces as a generic 500.
var (
	// ErrValidation - malformed or missing required input (400)
	ErrValidation = errors.New("validation")
	// ErrNotFound - identifier does not resolve to a record (404)
	ErrNotFound = errors.New("not found")
	// ErrConflict - unique constraint violation (409)
	ErrConflict = errors.New("conflict")
	// ErrAuth - credential mismatch (401)
	ErrAuth = errors.New("unauthorized")
)

// Error pairs a taxonomy sentinel with a message safe to show the caller.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func Validation(message string) error { return &Error{kind: ErrValidation, message: message} }
func NotFound(message string) error   { return &Error{kind: ErrNotFound, message: message} }
func Conflict(message string) error   { return &Error{kind: ErrConflict, message: message} }
func Auth(message string) error       { return &Error{kind: ErrAuth, message: message} }
