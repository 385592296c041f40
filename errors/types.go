package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Server communication errors
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
	ErrCodeDecodeFailed     ErrorCode = "DECODE_FAILED"

	// Dashboard errors
	ErrCodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// PlantError represents a structured error with context
type PlantError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PlantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PlantError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PlantError) WithDetail(key string, value interface{}) *PlantError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PlantError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PlantError
func New(code ErrorCode, message string) *PlantError {
	return &PlantError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PlantError
func Wrap(err error, code ErrorCode, message string) *PlantError {
	return &PlantError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is reports whether err carries a PlantError with the given code.
func Is(err error, code ErrorCode) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the first PlantError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if pe, ok := As(err); ok {
		return pe.Code
	}
	return ""
}

// As returns the first PlantError in err's chain.
func As(err error) (*PlantError, bool) {
	var pe *PlantError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
