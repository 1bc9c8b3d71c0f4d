package shared

import "fmt"

// Error codes shared by every bounded context.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicateKey      = "DUPLICATE_KEY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeOverlapConflict   = "OVERLAP_CONFLICT"
	CodeRuleViolation     = "RULE_VIOLATION"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNoTenantContext   = "NO_TENANT_CONTEXT"
	CodeUnknownConnection = "UNKNOWN_CONNECTION"
	CodeTenantInactive    = "TENANT_INACTIVE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
// This lets callers match any error of a category with errors.Is(err, ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a domain error wrapping a lower-layer cause
func NewDomainErrorWithCause(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey      = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrInvalidTransition = NewDomainError(CodeInvalidTransition, "Operation not allowed in current state")
	ErrOverlapConflict   = NewDomainError(CodeOverlapConflict, "Date range overlaps an existing record")
	ErrRuleViolation     = NewDomainError(CodeRuleViolation, "Tenant rule violation")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrNoTenantContext   = NewDomainError(CodeNoTenantContext, "No tenant context found")
	ErrUnknownConnection = NewDomainError(CodeUnknownConnection, "No connection string found for tenant")
	ErrTenantInactive    = NewDomainError(CodeTenantInactive, "Tenant is not active")
)

// NewNotFoundError reports a missing entity of the given kind
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s with ID %v not found", entity, id))
}

// NewDuplicateKeyError reports a uniqueness violation on field
func NewDuplicateKeyError(field, value string) *DomainError {
	return NewDomainError(CodeDuplicateKey, fmt.Sprintf("%s '%s' already exists", field, value))
}

// NewRuleViolationError reports a tenant customization rejection
func NewRuleViolationError(reason string) *DomainError {
	return NewDomainError(CodeRuleViolation, reason)
}

// NewInvalidInputError reports a field validation failure
func NewInvalidInputError(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}
