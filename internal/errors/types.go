// Package errors defines the structured error taxonomy for the deployer
// pipeline. Every stage failure surfaces as a *DeployerError carrying a
// category, a stable code, and the offending path or folder, so callers can
// branch on error kind without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeBuild      ErrorType = "build"
	ErrorTypeSync       ErrorType = "sync"
)

// Common error codes.
const (
	ErrCodeConfigInvalid   = "ERR_CONFIG_INVALID"
	ErrCodeEmptyCatalog    = "ERR_EMPTY_CATALOG"
	ErrCodeSchemaViolation = "ERR_SCHEMA_VIOLATION"
	ErrCodeUnmappedFolder  = "ERR_UNMAPPED_FOLDER"
	ErrCodeTemplateCompile = "ERR_TEMPLATE_COMPILE"
	ErrCodeSyncConfig      = "ERR_SYNC_CONFIG"
)

// DeployerError is a structured error with pipeline context.
type DeployerError struct {
	Type    ErrorType
	Code    string
	Message string
	Path    string
	Cause   error
}

// Error implements the error interface. The message is returned verbatim:
// validation and build failures are matched on their exact text by callers
// and tooling, so no code or location prefix is added here.
func (e *DeployerError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *DeployerError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by type and code.
func (e *DeployerError) Is(target error) bool {
	var t *DeployerError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// NewConfigError creates a fatal configuration error.
func NewConfigError(message string) *DeployerError {
	return &DeployerError{
		Type:    ErrorTypeConfig,
		Code:    ErrCodeConfigInvalid,
		Message: message,
	}
}

// NewEmptyCatalogError creates the error raised when the catalog holds no
// components at validation time.
func NewEmptyCatalogError() *DeployerError {
	return &DeployerError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeEmptyCatalog,
		Message: "Component validation failed - no components found",
	}
}

// NewSchemaViolationError creates a validation error identifying the schema,
// the offending metadata file and the field-level detail.
func NewSchemaViolationError(schemaName, metaFile, detail string) *DeployerError {
	return &DeployerError{
		Type: ErrorTypeValidation,
		Code: ErrCodeSchemaViolation,
		Message: fmt.Sprintf("Schema %q validation failed for %s: %s",
			schemaName, metaFile, detail),
		Path: metaFile,
	}
}

// NewUnmappedFolderError creates a validation error naming a component type
// folder that has no entry in the configured mapping.
func NewUnmappedFolderError(folderName string) *DeployerError {
	return &DeployerError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeUnmappedFolder,
		Message: fmt.Sprintf("No type mapping configured for folder %q", folderName),
		Path:    folderName,
	}
}

// NewTemplateCompileError rewrites a compile failure so the message leads
// with the absolute source template path in quotes.
func NewTemplateCompileError(sourcePath string, cause error) *DeployerError {
	return &DeployerError{
		Type:    ErrorTypeBuild,
		Code:    ErrCodeTemplateCompile,
		Message: fmt.Sprintf("%q %s", sourcePath, cause.Error()),
		Path:    sourcePath,
		Cause:   cause,
	}
}

// NewSyncConfigError creates a sync configuration error.
func NewSyncConfigError(message string) *DeployerError {
	return &DeployerError{
		Type:    ErrorTypeSync,
		Code:    ErrCodeSyncConfig,
		Message: message,
	}
}

// IsValidationError checks if an error originated in the validation stage.
func IsValidationError(err error) bool {
	var de *DeployerError
	if errors.As(err, &de) {
		return de.Type == ErrorTypeValidation
	}

	return false
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	var de *DeployerError
	if errors.As(err, &de) {
		return de.Type == ErrorTypeConfig
	}

	return false
}

// HasCode checks whether err carries the given deployer error code.
func HasCode(err error, code string) bool {
	var de *DeployerError
	if errors.As(err, &de) {
		return de.Code == code
	}

	return false
}
