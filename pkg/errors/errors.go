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

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"

	// Transport errors (API fetches, archive download)
	ErrTransport  ErrorCode = "TRANSPORT"
	ErrHTTPStatus ErrorCode = "HTTP_STATUS"
	ErrDecode     ErrorCode = "DECODE"

	// Checksum errors
	ErrChecksumTimeout ErrorCode = "CHECKSUM_TIMEOUT"
	ErrChecksumFailed  ErrorCode = "CHECKSUM_FAILED"

	// Formula rendering errors
	ErrRenderInvalid ErrorCode = "RENDER_INVALID"

	// Publication errors
	ErrPublishClone  ErrorCode = "PUBLISH_CLONE"
	ErrPublishCommit ErrorCode = "PUBLISH_COMMIT"
	ErrPublishPush   ErrorCode = "PUBLISH_PUSH"
	ErrPublishStage  ErrorCode = "PUBLISH_STAGE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// BrewtapError represents a structured error with code and details
type BrewtapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BrewtapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BrewtapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BrewtapError) Is(target error) bool {
	var targetErr *BrewtapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BrewtapError with the given code and message
func New(code ErrorCode, message string) *BrewtapError {
	return &BrewtapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BrewtapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BrewtapError {
	return &BrewtapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BrewtapError
func Wrap(err error, code ErrorCode, message string) *BrewtapError {
	if err == nil {
		return nil
	}
	return &BrewtapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BrewtapError {
	if err == nil {
		return nil
	}
	return &BrewtapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BrewtapError) WithDetail(key string, value interface{}) *BrewtapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var brewtapErr *BrewtapError
	if errors.As(err, &brewtapErr) {
		return brewtapErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BrewtapError
func GetErrorCode(err error) ErrorCode {
	var brewtapErr *BrewtapError
	if errors.As(err, &brewtapErr) {
		return brewtapErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BrewtapError
func GetErrorDetails(err error) map[string]interface{} {
	var brewtapErr *BrewtapError
	if errors.As(err, &brewtapErr) {
		return brewtapErr.Details
	}
	return nil
}
