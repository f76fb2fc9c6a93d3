package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTargetNotFound = errors.New("target not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrMemberNotFound = errors.New("member not found")
)

// ValidationError marks caller-supplied input as malformed. It is never
// retried and never causes a remote call.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UpstreamError carries a failure originating from GitLab or the network
// layer. StatusCode is zero for transport errors. RetryAfter is set when
// GitLab rate-limited the request and supplied a hint.
type UpstreamError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("upstream request failed: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

func WrapUpstreamError(err error) *UpstreamError {
	return &UpstreamError{Message: err.Error(), Err: err}
}
