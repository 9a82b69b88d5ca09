package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeFileNotFound  = "FILE_NOT_FOUND"
	ErrCodeParseError    = "PARSE_ERROR"
	ErrCodeAnalysisError = "ANALYSIS_ERROR"
	ErrCodeConfigError   = "CONFIG_ERROR"
	ErrCodeOutputError   = "OUTPUT_ERROR"
)

// DomainError carries a stable error code alongside the message
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a domain error with an explicit code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an error for invalid user input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates an error for a missing input file
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates an error for unparseable source
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse: %s", file), cause)
}

// NewAnalysisError creates an error for scan failures
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an error for report writing failures
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}
