package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API Errors
var (
	ErrUpstream           = errors.New("upstream service error")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Configuration Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
)

// NewUpstreamError maps a failed call to a third-party service onto a response
// status. upstreamStatus is the status the service answered with, or 0 when
// no response was received.
func NewUpstreamError(service string, upstreamStatus int, cause error) *ApiErr {
	status := http.StatusBadGateway
	switch upstreamStatus {
	case http.StatusNotFound:
		status = http.StatusNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return NewRateLimitedError(service, cause)
	}

	details := fmt.Sprintf("%s request failed", service)
	if upstreamStatus != 0 {
		details = fmt.Sprintf("%s responded with status %d", service, upstreamStatus)
	}

	return &ApiErr{
		StatusCode: status,
		err:        ErrUpstream,
		Details:    details,
		Cause:      cause,
	}
}

func NewRateLimitedError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("%s rate limit exceeded, try again later", service),
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured", service),
	}
}

func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s", ErrConfigMissing, key)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
