package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when the provider API key is not configured.
	ErrMissingCredential = errors.New("weather provider api key is not configured")

	// ErrNotFound is returned when the provider has no observation for a location.
	ErrNotFound = errors.New("no weather data found")
)

// HTTPError describes a 4xx/5xx response from a provider.
type HTTPError struct {
	StatusCode int
	Reason     string
	// URL is the request URL with the credential stripped.
	URL string
}

func (e *HTTPError) Error() string {
	class := "Client"
	if e.StatusCode >= 500 {
		class = "Server"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", e.StatusCode, class, e.Reason, e.URL)
}

// FieldError reports a required field absent from a provider payload.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("weatherbit response missing field %q", e.Field)
}
