package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoAPIKey       = errors.New("API key is not configured")
	ErrQuotaExceeded  = errors.New("API quota exceeded")
	ErrAuthentication = errors.New("authentication failed, check the API key")
	ErrEmptyResponse  = errors.New("no content in response")
)

// APIError is a non-200 answer from the service.
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
	Status     string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini error [%d %s]: %s", e.HTTPStatus, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini error [%d]: %s", e.HTTPStatus, e.Message)
}

// Unwrap maps the error onto ErrQuotaExceeded or ErrAuthentication when it
// is one of those.
func (e *APIError) Unwrap() error {
	msg := strings.ToLower(e.Message)
	switch {
	case e.HTTPStatus == http.StatusTooManyRequests,
		e.Status == "RESOURCE_EXHAUSTED",
		strings.Contains(msg, "quota"):
		return ErrQuotaExceeded
	case e.HTTPStatus == http.StatusUnauthorized,
		e.HTTPStatus == http.StatusForbidden,
		e.Status == "UNAUTHENTICATED",
		e.Status == "PERMISSION_DENIED",
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "authentication"):
		return ErrAuthentication
	}
	return nil
}
