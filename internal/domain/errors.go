package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Extraction errors
	CodeInvalidSource   ErrorCode = "INVALID_SOURCE"
	CodeFetchFailed     ErrorCode = "FETCH_FAILED"
	CodeContentNotFound ErrorCode = "CONTENT_NOT_FOUND"

	// Generation errors
	CodeGenerationFailed ErrorCode = "GENERATION_FAILED"

	// Storage errors
	CodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
	CodeQuizNotFound      ErrorCode = "QUIZ_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that is surfaced in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err (or anything it wraps) is a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// NewInvalidSourceError is returned when a URL does not point at a recognised Wikipedia host.
func NewInvalidSourceError(rawURL string, cause error) *DomainError {
	return NewError(CodeInvalidSource, "URL is not a Wikipedia URL", cause).WithContext("url", rawURL)
}

// NewFetchError covers transport failures and non-2xx responses.
func NewFetchError(rawURL string, cause error) *DomainError {
	return NewError(CodeFetchFailed, "failed to fetch article", cause).WithContext("url", rawURL)
}

// NewContentNotFoundError is returned when the page has no usable article content.
func NewContentNotFoundError(rawURL string, reason string) *DomainError {
	return NewError(CodeContentNotFound, reason, nil).WithContext("url", rawURL)
}

// NewGenerationError covers model call failures and responses that fail validation.
func NewGenerationError(message string, cause error) *DomainError {
	return NewError(CodeGenerationFailed, message, cause)
}

func NewPersistenceError(cause error) *DomainError {
	return NewError(CodePersistenceFailed, "failed to save quiz", cause)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %d", quizID), nil)
}
