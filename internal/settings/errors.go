package settings

import (
	"errors"
	"net/http"
)

// Domain errors for setting operations.
var (
	ErrNotFound   = errors.New("setting not found")
	ErrDuplicate  = errors.New("setting name already exists")
	ErrValidation = errors.New("invalid setting")
)

// MapHTTPStatus maps setting domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
