package bungie

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrTransport matches every *TransportError and *StatusError.
var ErrTransport = errors.New("transport failure")

// TransportError means no usable response came back: the request could not be
// built or sent, the body could not be read, or ctx ended first.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// StatusError is a response with a non-2xx status. The platform usually still
// sends an envelope on those; its status fields are copied when they decode.
type StatusError struct {
	StatusCode  int
	URL         string
	ErrorCode   PlatformErrorCode
	ErrorStatus string
	Message     string
}

func (e *StatusError) Error() string {
	if e.ErrorStatus != "" {
		return fmt.Sprintf("GET %s: http status %d (%s: %s)", e.URL, e.StatusCode, e.ErrorStatus, e.Message)
	}
	return fmt.Sprintf("GET %s: http status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// PlatformError is the error form of an envelope whose ErrorCode is not
// SuccessCode. Call never returns one; use Envelope.Err to get it.
type PlatformError struct {
	Code            PlatformErrorCode
	Status          string
	Message         string
	MessageData     map[string]string
	ThrottleSeconds int
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("bungie returned %s (%d): %s", e.Status, int32(e.Code), e.Message)
}

// Throttle is the server-requested wait before retrying, zero if none.
func (e *PlatformError) Throttle() time.Duration {
	return throttleDuration(e.ThrottleSeconds)
}

// maxThrottleSeconds is the largest wait a time.Duration can hold.
const maxThrottleSeconds = math.MaxInt64 / int64(time.Second)

func throttleDuration(seconds int) time.Duration {
	switch {
	case seconds <= 0:
		return 0
	case int64(seconds) > maxThrottleSeconds:
		return time.Duration(maxThrottleSeconds) * time.Second
	}
	return time.Duration(seconds) * time.Second
}
