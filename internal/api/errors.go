package api

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport-level failures: the request never completed
// and no server verdict exists. Callers show a generic message and leave
// state untouched; no automatic retry is performed.
var ErrNetwork = errors.New("network error")

// ErrNotAuthenticated is returned for 401 responses.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx verdict from the backend. Detail carries the
// backend's `detail` field and is shown to the user verbatim; when the
// body has no detail a generic fallback is used instead.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// UserMessage returns the text a page should display for an error coming
// out of this package.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
