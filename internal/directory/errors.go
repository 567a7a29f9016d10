package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the host refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents a failed request against a remote collection.
type APIError struct {
	Type       ErrorType
	Kind       Kind   // Collection being fetched
	Message    string // Human-readable error message
	StatusCode int    // HTTP status code (if applicable)
	Err        error  // Underlying error (if any)
	Retryable  bool
}

// Error implements the error interface
func (e *APIError) Error() string {
	prefix := e.Type.String()
	if e.Kind != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyTransportError maps an http.Client error onto an APIError.
func classifyTransportError(kind Kind, message string, err error) *APIError {
	apiErr := &APIError{
		Type:      ErrTypeNetwork,
		Kind:      kind,
		Message:   message,
		Err:       err,
		Retryable: true,
	}

	if errors.Is(err, context.Canceled) {
		apiErr.Type = ErrTypeCanceled
		apiErr.Retryable = false
		return apiErr
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		apiErr.Type = ErrTypeTimeout
		return apiErr
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		apiErr.Type = ErrTypeDNS
		apiErr.Retryable = dnsErr.IsTemporary
		return apiErr
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		apiErr.Type = ErrTypeConnectionRefused
		return apiErr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		inner := classifyTransportError(kind, message, urlErr.Err)
		inner.Err = err
		return inner
	}

	return apiErr
}

// newHTTPError creates an HTTP-level error
func newHTTPError(kind Kind, statusCode int, snippet string) *APIError {
	message := fmt.Sprintf("unexpected status code: %d", statusCode)
	if snippet != "" {
		message += ": " + snippet
	}
	return &APIError{
		Type:       ErrTypeHTTP,
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500 || statusCode == 429,
	}
}

// newParseError creates a parsing error
func newParseError(kind Kind, message string, err error) *APIError {
	return &APIError{
		Type:    ErrTypeParse,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsNetworkError reports whether err is a transport failure (timeout, DNS, refused, generic).
func IsNetworkError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTypeParse
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return false
}

// ShortMessage returns a concise, user-facing description of err.
func ShortMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Server not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Server refused connection"
	case ErrTypeDNS:
		return "Cannot resolve server hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Server error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from server"
	case ErrTypeCanceled:
		return "Request canceled"
	default:
		return apiErr.Message
	}
}
