package errmap

import (
	"errors"
	"net/http"

	"github.com/aelexs/watchface/internal/domain"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// httpMapping defines a domain error to HTTP status/code mapping.
type httpMapping struct {
	err        error
	statusCode int
	code       string
}

// httpMappings maps domain errors to HTTP status codes and error codes.
// Order matters: first match wins (via errors.Is).
var httpMappings = []httpMapping{
	// Validation errors: 400
	{domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{domain.ErrInvalidViewport, http.StatusBadRequest, "INVALID_VIEWPORT"},
	{domain.ErrUnknownPreset, http.StatusBadRequest, "UNKNOWN_PRESET"},
	{domain.ErrInvalidMotion, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{domain.ErrInvalidSchedule, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{domain.ErrInvalidStyle, http.StatusBadRequest, "INVALID_ARGUMENT"},

	// Capacity: 429
	{domain.ErrTooManyWidgets, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},
	{domain.ErrSlowConsumer, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},

	// Availability
	{domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
}

// ToHTTPError converts a domain error to an HTTP error.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{StatusCode: http.StatusOK}
	}
	for _, m := range httpMappings {
		if errors.Is(err, m.err) {
			return HTTPError{StatusCode: m.statusCode, Code: m.code, Message: err.Error()}
		}
	}
	// Never expose internal error details to clients
	return HTTPError{StatusCode: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
}

// ToHTTPStatusCode extracts just the HTTP status code for a domain error.
func ToHTTPStatusCode(err error) int {
	return ToHTTPError(err).StatusCode
}
