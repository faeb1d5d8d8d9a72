package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Run lifecycle errors
	ErrAlreadyRunning ErrorCode = "ALREADY_RUNNING"
	ErrNotRunning     ErrorCode = "NOT_RUNNING"
	ErrSpawnFailure   ErrorCode = "SPAWN_FAILURE"
	ErrNonZeroExit    ErrorCode = "NON_ZERO_EXIT"
	ErrStreamError    ErrorCode = "STREAM_ERROR"

	// Rule document errors
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrTempFileIO    ErrorCode = "TEMP_FILE_IO"
	ErrDocumentLoad  ErrorCode = "DOCUMENT_LOAD"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// History errors
	ErrHistoryStore ErrorCode = "HISTORY_STORE"
)

// OrgrunError represents a structured error with code and details
type OrgrunError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OrgrunError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OrgrunError) Unwrap() error {
	return e.Wrapped
}

// Is matches any OrgrunError carrying the same code
func (e *OrgrunError) Is(target error) bool {
	var targetErr *OrgrunError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Cause returns the message without the code prefix, followed by the wrapped
// error if any. This is the text shown to end users.
func (e *OrgrunError) Cause() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// New creates a new OrgrunError with the given code and message
func New(code ErrorCode, message string) *OrgrunError {
	return &OrgrunError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OrgrunError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OrgrunError {
	return &OrgrunError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OrgrunError
func Wrap(err error, code ErrorCode, message string) *OrgrunError {
	if err == nil {
		return nil
	}
	return &OrgrunError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OrgrunError {
	if err == nil {
		return nil
	}
	return &OrgrunError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OrgrunError) WithDetail(key string, value interface{}) *OrgrunError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var orgErr *OrgrunError
	if errors.As(err, &orgErr) {
		return orgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OrgrunError
func GetErrorCode(err error) ErrorCode {
	var orgErr *OrgrunError
	if errors.As(err, &orgErr) {
		return orgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OrgrunError
func GetErrorDetails(err error) map[string]interface{} {
	var orgErr *OrgrunError
	if errors.As(err, &orgErr) {
		return orgErr.Details
	}
	return nil
}

// UserMessage returns the text to show for err: the cause of an OrgrunError,
// or err.Error() for anything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var orgErr *OrgrunError
	if errors.As(err, &orgErr) {
		return orgErr.Cause()
	}
	return err.Error()
}
