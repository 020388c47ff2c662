package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by every DomainError constructor.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks; matching is by code only.
var (
	ErrValidation   = &DomainError{Code: CodeValidation}
	ErrNotFound     = &DomainError{Code: CodeNotFound}
	ErrUnauthorized = &DomainError{Code: CodeUnauthorized}
	ErrForbidden    = &DomainError{Code: CodeForbidden}
	ErrConflict     = &DomainError{Code: CodeConflict}
	ErrInternal     = &DomainError{Code: CodeInternal}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusUnprocessableEntity, details)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewForbidden reports a known caller that may not proceed. The public
// contract renders it as 400.
func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusBadRequest, nil)
}

// NewConflict reports a uniqueness violation. The public contract renders it as 400.
func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}
