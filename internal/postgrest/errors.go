package postgrest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a single-row request matched no row.
	ErrNotFound = errors.New("row not found")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("data service unavailable")
)

// APIError is a PostgREST error response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("postgrest %d: %s", e.Status, e.Message)
}

// clientError reports whether err is a request the server rejected, as
// opposed to a server or transport failure.
func clientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status < 500
}
