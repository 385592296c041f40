package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PlantError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PlantError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RequestFailed creates a transport failure error for a server endpoint
func RequestFailed(method, url string, err error) *PlantError {
	return Wrap(err, ErrCodeRequestFailed, fmt.Sprintf("%s %s failed", method, url)).
		WithDetail("method", method).
		WithDetail("url", url)
}

// UnexpectedStatus creates an error for a non-2xx server response
func UnexpectedStatus(method, url string, status int) *PlantError {
	return New(ErrCodeUnexpectedStatus,
		fmt.Sprintf("%s %s returned status %d", method, url, status)).
		WithDetail("method", method).
		WithDetail("url", url).
		WithDetail("status", status)
}

// DecodeFailed creates an error for a response body that could not be decoded
func DecodeFailed(url string, err error) *PlantError {
	return Wrap(err, ErrCodeDecodeFailed, fmt.Sprintf("failed to decode response from %s", url)).
		WithDetail("url", url)
}

// ModuleNotFound creates an error for a module id absent from the board
func ModuleNotFound(moduleID string) *PlantError {
	return New(ErrCodeModuleNotFound, fmt.Sprintf("module '%s' not found", moduleID)).
		WithDetail("module", moduleID)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *PlantError {
	return New(ErrCodeInvalidInput, reason)
}
