package dto

import (
	"errors"
	"net/http"

	"github.com/hrapi/backend/internal/domain/shared"
)

// Transport-only error codes. Domain codes are defined in package shared and
// pass through unchanged.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRouteMissing = "ROUTE_NOT_FOUND"
	ErrCodeUnavailable  = "SERVICE_UNAVAILABLE"
)

// InternalErrorMessage is the only message returned for unclassified errors
const InternalErrorMessage = "An unexpected error occurred"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeDuplicateKey:      http.StatusConflict,
	shared.CodeInvalidTransition: http.StatusConflict,
	shared.CodeOverlapConflict:   http.StatusConflict,
	shared.CodeRuleViolation:     http.StatusUnprocessableEntity,
	shared.CodeInvalidInput:      http.StatusBadRequest,
	shared.CodeNoTenantContext:   http.StatusBadRequest,
	shared.CodeUnknownConnection: http.StatusNotFound,
	shared.CodeTenantInactive:    http.StatusForbidden,

	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeRouteMissing: http.StatusNotFound,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsKnownCode reports whether code has a dedicated HTTP status
func IsKnownCode(code string) bool {
	_, ok := ErrorCodeHTTPStatus[code]
	return ok
}

// ResolveError maps an error to its HTTP status, code and client message.
// Only domain errors with a known code keep their message.
func ResolveError(err error) (status int, code, message string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && IsKnownCode(domainErr.Code) {
		return GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message
	}
	return http.StatusInternalServerError, ErrCodeInternal, InternalErrorMessage
}
