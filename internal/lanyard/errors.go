package lanyard

import "fmt"

// APIError represents a failure while fetching presence data from the
// Lanyard API. Every failure mode a tool can surface to the caller maps
// to exactly one code.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Error codes for Lanyard API operations
const (
	ErrNotFound     = "USER_NOT_FOUND"
	ErrRateLimited  = "RATE_LIMITED"
	ErrHTTPStatus   = "HTTP_ERROR"
	ErrTimeout      = "REQUEST_TIMEOUT"
	ErrTransport    = "TRANSPORT_ERROR"
	ErrUnsuccessful = "UPSTREAM_UNSUCCESSFUL"
)

// NewNotFoundError creates an error for a user unknown to the upstream service
func NewNotFoundError(userID string) *APIError {
	return &APIError{
		Code:       ErrNotFound,
		Message:    fmt.Sprintf("user not found: %s", userID),
		StatusCode: 404,
	}
}

// NewRateLimitedError creates an error for an HTTP 429 response
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:       ErrRateLimited,
		Message:    "rate limit exceeded",
		StatusCode: 429,
	}
}

// NewHTTPStatusError creates an error for any other non-2xx response
func NewHTTPStatusError(statusCode int) *APIError {
	return &APIError{
		Code:       ErrHTTPStatus,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
	}
}

// NewTimeoutError creates an error for a request that exceeded the timeout window
func NewTimeoutError(userID string, cause error) *APIError {
	return &APIError{
		Code:    ErrTimeout,
		Message: fmt.Sprintf("request timed out while fetching user %s", userID),
		Cause:   cause,
	}
}

// NewTransportError creates an error for any other transport-level failure
func NewTransportError(cause error) *APIError {
	return &APIError{
		Code:    ErrTransport,
		Message: "request failed",
		Cause:   cause,
	}
}

// NewUnsuccessfulError creates an error for a 2xx response whose body
// reports success=false (or omits the field)
func NewUnsuccessfulError(userID string) *APIError {
	return &APIError{
		Code:    ErrUnsuccessful,
		Message: fmt.Sprintf("API returned unsuccessful response for user %s", userID),
	}
}

// ValidationError represents a rejected user ID. Reason is one of
// "empty", "non-digit" or "length"; Message is the user-facing sentence.
type ValidationError struct {
	Reason  string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
