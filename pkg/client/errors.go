package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrMissingToken is returned when no access token is configured.
	// It signals a configuration problem, detected before any network call.
	ErrMissingToken = errors.New("missing HubSpot access token")

	// ErrNonJSONResponse is returned when the API answers with a body that
	// cannot be decoded as JSON.
	ErrNonJSONResponse = errors.New("unexpected non-JSON response from HubSpot API")
)

// APIError represents a HubSpot API failure with additional context.
// It never carries the access token.
type APIError struct {
	StatusCode int
	ErrorClass ErrorClass
	Method     string
	Endpoint   string
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HubSpot %s error (status %d) for %s %s: %v",
			e.ErrorClass, e.StatusCode, e.Method, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("HubSpot %s error (status %d) for %s %s: %s",
		e.ErrorClass, e.StatusCode, e.Method, e.Endpoint, e.Body)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// truncateBody limits the response body carried inside an APIError.
func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
