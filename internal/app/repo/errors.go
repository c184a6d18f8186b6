package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoReleaseID is returned when the forge returns a release without id.
var ErrNoReleaseID = errors.New("no id in release")

// ErrNoUploadURL is returned when the forge returns a release without upload url.
var ErrNoUploadURL = errors.New("no upload url in release")

// APIError is returned for every forge response with a status code >= 400.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       any    // decoded json body (or raw text if the response is not json)
	Raw        string // raw response body
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s request to %s responded code %d: %s", e.Method, e.URL, e.StatusCode, e.Raw)
}

// ValidationErrors returns the {field, code} pairs found in the body (if any).
func (e *APIError) ValidationErrors() []ValidationError {
	var body struct {
		Errors []ValidationError `json:"errors"`
	}
	if err := json.Unmarshal([]byte(e.Raw), &body); err != nil {
		return nil
	}
	return body.Errors
}

// IsNotFound returns true if err is (or wraps) an APIError with a 404 status code.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
