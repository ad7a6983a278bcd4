package review

import (
	"errors"
	"net/http"
)

// Domain errors for review operations.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAnalysisMissing  = errors.New("document has no extracted paragraphs")
	ErrPromptNotFound   = errors.New("no guideline prompt configured for type")
	ErrNoAgentTypes     = errors.New("no agent types configured")
	ErrNoPrompts        = errors.New("no guideline prompts resolved for any type")
	ErrReviewFailed     = errors.New("review failed")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrDocumentNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrAnalysisMissing) || errors.Is(err, ErrNoAgentTypes) || errors.Is(err, ErrNoPrompts) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
