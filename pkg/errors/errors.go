// Package errors defines common error types used throughout the lurk client.
package errors

import (
	"fmt"
	"strings"
)

// ConfigError indicates a problem with client configuration or request
// parameters, including missing credentials.
type ConfigError struct {
	// Field contains the name of the configuration field or parameter that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AuthError indicates a failure while exchanging credentials for a token.
type AuthError struct {
	// StatusCode is the HTTP status code returned by the token endpoint, if any
	StatusCode int
	// Body contains the raw response body from the server, which may hold more details
	Body string
	// Err is the underlying error, e.g. a network or JSON parsing error
	Err error
}

func (e *AuthError) Error() string {
	var sb strings.Builder
	sb.WriteString("auth error")

	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, ": status code %d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&sb, ", body: %q", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ", err: %v", e.Err)
	}

	return sb.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError indicates a non-success status from a data endpoint. The server
// body is carried verbatim; the client performs no retry, including for 429.
type APIError struct {
	// StatusCode is the HTTP status code of the failed request
	StatusCode int
	// Body contains the raw response body
	Body string
	// URL is the request URL that produced the failure
	URL string
}

func (e *APIError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("api error: status code %d from %s, body: %q", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("api error: status code %d, body: %q", e.StatusCode, e.Body)
}

// IsNotFound reports whether the error is a 404 from the API.
func (e *APIError) IsNotFound() bool { return e.StatusCode == 404 }

// IsRateLimited reports whether the error is a 429 from the API.
func (e *APIError) IsRateLimited() bool { return e.StatusCode == 429 }

// ParseError indicates a response whose JSON shape did not match
// expectations. This is a hard failure: guessing would corrupt downstream data.
type ParseError struct {
	// Message describes which expectation the payload violated
	Message string
	// Err is the underlying decode error if available
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Err)
	}
	return "parse error: " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }
