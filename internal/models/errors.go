package models

import (
	"errors"
	"fmt"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeSelfFollow         = "SELF_FOLLOW"
	CodeNotFound           = "NOT_FOUND"
	CodeStorage            = "STORAGE_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code     string
	Message  string
	Messages []string // per-field violations for validation errors
	Err      error
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

// UserMessages returns the human-readable messages to surface for this error.
func (e *AppError) UserMessages() []string {
	if len(e.Messages) > 0 {
		return e.Messages
	}
	return []string{e.Message}
}

// Predefined error constructors

// NewValidationError wraps one or more user-correctable input violations.
func NewValidationError(messages ...string) *AppError {
	msg := "Invalid input"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &AppError{
		Code:     CodeValidation,
		Message:  msg,
		Messages: messages,
	}
}

func NewDuplicateEmailError() *AppError {
	return &AppError{
		Code:    CodeDuplicateEmail,
		Message: "Email is already registered",
	}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewSelfFollowError() *AppError {
	return &AppError{
		Code:    CodeSelfFollow,
		Message: "You cannot follow yourself",
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewStorageError is the unclassified bucket for connectivity and
// schema-missing failures from the database layer.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: "Something went wrong, please try again",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
