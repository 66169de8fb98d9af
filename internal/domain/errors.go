package domain

import (
	"errors"
	"fmt"
)

// Validation failures. They are expected outcomes of user input and leave
// every store unchanged.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidField     = errors.New("invalid field value")
)

// Authentication failures.
var (
	ErrUserNotFound  = errors.New("no account found for this email")
	ErrWrongPassword = errors.New("incorrect password")
)

// Storage failures.
var (
	// ErrUnwritable wraps any failure to persist a snapshot or upload.
	ErrUnwritable = errors.New("storage unwritable")
	// ErrInvalidFilename is returned for upload names that do not name a file.
	ErrInvalidFilename = errors.New("invalid upload filename")
	// ErrUploadNotFound is returned when a stored upload does not exist.
	ErrUploadNotFound = errors.New("upload not found")
)

// ValidationError carries the failed rule and, when known, the offending field.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid returns a ValidationError for rule err on field.
func Invalid(err error, field string) error {
	return &ValidationError{Err: err, Field: field}
}

// AuthError carries the authentication failure reason.
type AuthError struct {
	Err   error
	Email string
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

var codes = []struct {
	err  error
	code string
}{
	{ErrMissingFields, "MissingFields"},
	{ErrInvalidEmail, "InvalidEmail"},
	{ErrPasswordMismatch, "PasswordMismatch"},
	{ErrTermsNotAccepted, "TermsNotAccepted"},
	{ErrEmailTaken, "EmailTaken"},
	{ErrInvalidField, "InvalidField"},
	{ErrUserNotFound, "UserNotFound"},
	{ErrWrongPassword, "WrongPassword"},
	{ErrInvalidFilename, "InvalidFilename"},
	{ErrUploadNotFound, "UploadNotFound"},
	{ErrUnwritable, "Unwritable"},
}

// ErrorCode returns the stable reason name for err, or "Internal" when err is
// not part of the taxonomy.
func ErrorCode(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "Internal"
}

// ErrorFromCode maps a reason name back to its sentinel. Unknown codes yield nil.
func ErrorFromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// IsValidation reports whether err is a user-input validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
