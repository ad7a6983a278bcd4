package issues

import (
	"errors"
	"net/http"
)

// Domain errors for issue operations.
var (
	ErrNotFound      = errors.New("issue not found")
	ErrInvalidStatus = errors.New("status must be not_reviewed, accepted, or dismissed")
)

// MapHTTPStatus maps issue domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidStatus) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
