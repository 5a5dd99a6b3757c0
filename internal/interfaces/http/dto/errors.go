package dto

import (
	"net/http"

	"github.com/receipts/backend/internal/domain/shared"
)

// Error codes produced by the HTTP layer itself.
// Domain failures keep the code of their DomainError.
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeUnavailable     = "ERR_SERVICE_UNAVAILABLE"
)

// KindHTTPStatus maps every domain error kind to the status clients see
var KindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindConnectivity:     http.StatusInternalServerError,
	shared.KindNotFound:         http.StatusNotFound,
	shared.KindInvalidParameter: http.StatusBadRequest,
	shared.KindValidation:       http.StatusBadRequest,
	shared.KindResolution:       http.StatusConflict,
	shared.KindPersistence:      http.StatusInternalServerError,
	shared.KindGeneric:          http.StatusNotAcceptable,
}

// GetHTTPStatus returns the HTTP status code for an error kind.
// Unknown kinds are treated as generic failures.
func GetHTTPStatus(kind shared.ErrorKind) int {
	if status, ok := KindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusNotAcceptable
}
