// Package errors provides custom error types for the regulation lookup client.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	// ErrEmptyQuery and ErrBusy are validation skips: the command is dropped and
	// nothing is shown to the user.
	ErrEmptyQuery = errors.New("query is empty")
	ErrBusy       = errors.New("a query is already in flight")

	ErrInvalidResponse   = errors.New("invalid response format")
	ErrUnknownPrompt     = errors.New("no pending summary preference prompt with that id")
	ErrInvalidPreference = errors.New("summary preference must be short or detailed")
)

// IsValidationSkip reports whether err only means the command was dropped
func IsValidationSkip(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrBusy)
}

// APIError represents a non-success response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError that keeps the response body for diagnostics
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Body:       body,
	}
}

// NetworkError represents a transport failure before any response was received
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Op, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkErrorWithEndpoint creates a new NetworkError
func NewNetworkErrorWithEndpoint(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// CatalogError marks a failed startup fetch for one panel
type CatalogError struct {
	Panel string
	Err   error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Panel, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(panel string, err error) *CatalogError {
	return &CatalogError{Panel: panel, Err: err}
}

// FromTransport classifies a transport-level error from an HTTP round trip
func FromTransport(op, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(fmt.Sprintf("%s at %s", op, endpoint))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(fmt.Sprintf("%s at %s", op, endpoint))
	}
	return NewNetworkErrorWithEndpoint(op, endpoint, err)
}

// IsNetworkError reports whether err is a NetworkError
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsTimeoutError reports whether err is a TimeoutError
func IsTimeoutError(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// IsParseError reports whether err is a ParseError
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsAPIError reports whether err is an APIError
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// IsCatalogError reports whether err is a CatalogError
func IsCatalogError(err error) bool {
	var e *CatalogError
	return errors.As(err, &e)
}

// IsTransportFailure reports whether err means a query round trip failed. Every such
// failure is surfaced the same way.
func IsTransportFailure(err error) bool {
	return IsAPIError(err) || IsNetworkError(err) || IsTimeoutError(err) || IsParseError(err)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body carried by err, or ""
func GetResponseBody(err error) string {
	var e *APIError
	if errors.As(err, &e) {
		return e.Body
	}
	return ""
}
