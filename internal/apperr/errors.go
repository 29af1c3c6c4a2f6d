// Package apperr holds the error taxonomy shared by the intake workflow,
// the admin screens and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicatePhone is returned when a submission with the same phone already exists,
	// whether caught by the pre-check or by the unique index.
	ErrDuplicatePhone = errors.New("phone already registered")
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = &AuthError{Reason: "invalid credentials"}
	ErrSignUpNotAllowed   = &AuthError{Reason: "sign-up restricted to the authorised administrator"}
	ErrAccessDenied       = &AuthError{Reason: "access denied", Forbidden: true}
	ErrSessionInvalid     = &AuthError{Reason: "session invalid or expired"}
	ErrAlreadyRegistered  = &AuthError{Reason: "user already registered"}
)

// ValidationError reports bad input shape or bounds detected before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UploadError wraps a failed blob upload for the given object path.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// StorageError reports a blob storage failure outside of the upload path
// (reading, resolving, name conflicts).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// StoreError reports a persistence failure. Uniqueness violations never
// surface as StoreError, they are mapped to ErrDuplicatePhone by the repository.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError unless it is nil or already classified.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicatePhone) || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// AuthError covers bad credentials and missing authorisation.
// Forbidden distinguishes "authenticated but not allowed" from "not authenticated".
type AuthError struct {
	Reason    string
	Forbidden bool
}

func (e *AuthError) Error() string {
	return "auth: " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
