package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the HTTP layer itself. Domain errors carry
// their own codes; the mapping below decides their status.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the prefix rules in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeConflict:    http.StatusConflict,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Resources
	"NOT_FOUND":           http.StatusNotFound,
	"TENANT_NOT_RESOLVED": http.StatusNotFound,
	"TENANT_SUSPENDED":    http.StatusForbidden,
	"ALREADY_EXISTS":      http.StatusConflict,
	"EMAIL_TAKEN":         http.StatusConflict,
	"HOSTNAME_TAKEN":      http.StatusConflict,
	"DUPLICATE_VARIANT":   http.StatusConflict,

	// Business rules
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"EMPTY_ORDER":         http.StatusUnprocessableEntity,
	"VARIANT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"SUPPLIER_IN_USE":     http.StatusUnprocessableEntity,
	"CATEGORY_IN_USE":     http.StatusUnprocessableEntity,
	"PRODUCT_IN_USE":      http.StatusUnprocessableEntity,
	"VARIANT_IN_USE":      http.StatusUnprocessableEntity,
	"SUPPLIER_INACTIVE":   http.StatusUnprocessableEntity,
	"LAST_HOSTNAME":       http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_SUSPENDED":   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) map to 400; anything unknown is
// treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
