package bungie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Envelope wraps every response from the Bungie.net Platform. Response is only
// meaningful when IsSuccess is true, and ShouldThrottle has to be checked either way.
type Envelope[T any] struct {
	Response           T                 `json:"Response"`
	ErrorCode          PlatformErrorCode `json:"ErrorCode"`
	ThrottleSeconds    int               `json:"ThrottleSeconds"`
	ErrorStatus        string            `json:"ErrorStatus"`
	Message            string            `json:"Message"`
	MessageData        map[string]string `json:"MessageData"`
	DetailedErrorTrace *string           `json:"DetailedErrorTrace,omitempty"`
}

// envelopeWire drops the MarshalJSON method so Envelope can encode itself.
type envelopeWire[T any] Envelope[T]

// MarshalJSON writes a nil MessageData as an empty object, since Decode
// rejects a null one.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	w := envelopeWire[T](e)
	if w.MessageData == nil {
		w.MessageData = map[string]string{}
	}
	return json.Marshal(w)
}

// Wire keys of the envelope, in the order Decode checks them.
const (
	KeyResponse           = "Response"
	KeyErrorCode          = "ErrorCode"
	KeyThrottleSeconds    = "ThrottleSeconds"
	KeyErrorStatus        = "ErrorStatus"
	KeyMessage            = "Message"
	KeyMessageData        = "MessageData"
	KeyDetailedErrorTrace = "DetailedErrorTrace"
)

var requiredKeys = []string{
	KeyResponse,
	KeyErrorCode,
	KeyThrottleSeconds,
	KeyErrorStatus,
	KeyMessage,
	KeyMessageData,
}

// Kinds of DecodeError, for use with errors.Is.
var (
	ErrMalformedBody  = errors.New("malformed response body")
	ErrMissingField   = errors.New("missing required field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrInvalidPayload = errors.New("invalid payload")
)

// DecodeError reports a body that does not fit the envelope or the payload type.
// Path is the wire key, or a dotted path below Response for payload fields.
type DecodeError struct {
	Path string
	Kind error
	Err  error
}

func (e *DecodeError) Error() string {
	var b bytes.Buffer
	b.WriteString("decoding envelope: ")
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, " at %q", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Decode parses body as an Envelope carrying a T. Every required key must be
// present; only DetailedErrorTrace may be absent.
//
// When ErrorCode is not SuccessCode a Response that does not fit T is not an
// error: the platform sends placeholders like 0 in that case, and Response is
// left as the zero T.
func Decode[T any](body []byte) (*Envelope[T], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &DecodeError{Kind: ErrTypeMismatch, Err: errors.Errorf("body is a JSON %s, not an object", typeErr.Value)}
		}
		return nil, &DecodeError{Kind: ErrMalformedBody, Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Kind: ErrTypeMismatch, Err: errors.New("body is null")}
	}

	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return nil, &DecodeError{Path: key, Kind: ErrMissingField}
		}
	}

	env := &Envelope[T]{}
	if err := decodeScalar(fields, KeyErrorCode, &env.ErrorCode); err != nil {
		return nil, err
	}
	if err := decodeScalar(fields, KeyThrottleSeconds, &env.ThrottleSeconds); err != nil {
		return nil, err
	}
	if err := decodeScalar(fields, KeyErrorStatus, &env.ErrorStatus); err != nil {
		return nil, err
	}
	if err := decodeScalar(fields, KeyMessage, &env.Message); err != nil {
		return nil, err
	}

	env.MessageData = map[string]string{}
	if raw := fields[KeyMessageData]; !isNull(raw) {
		if err := json.Unmarshal(raw, &env.MessageData); err != nil {
			return nil, fieldError(KeyMessageData, err)
		}
	}

	if raw, ok := fields[KeyDetailedErrorTrace]; ok && !isNull(raw) {
		var trace string
		if err := json.Unmarshal(raw, &trace); err != nil {
			return nil, fieldError(KeyDetailedErrorTrace, err)
		}
		env.DetailedErrorTrace = &trace
	}

	if raw := fields[KeyResponse]; !isNull(raw) {
		if err := json.Unmarshal(raw, &env.Response); err != nil {
			if env.ErrorCode == SuccessCode {
				return nil, fieldError(KeyResponse, err)
			}
			var zero T
			env.Response = zero
		}
	}

	return env, nil
}

// IsSuccess reports whether ErrorCode is SuccessCode.
func (e *Envelope[T]) IsSuccess() bool {
	return e.ErrorCode == SuccessCode
}

// ShouldThrottle is how long the caller must wait before repeating the call.
// Zero means no throttling was requested. It is independent of IsSuccess.
func (e *Envelope[T]) ShouldThrottle() time.Duration {
	return throttleDuration(e.ThrottleSeconds)
}

// Err returns nil for a successful envelope and a *PlatformError otherwise.
func (e *Envelope[T]) Err() error {
	if e.IsSuccess() {
		return nil
	}
	return &PlatformError{
		Code:            e.ErrorCode,
		Status:          e.ErrorStatus,
		Message:         e.Message,
		MessageData:     e.MessageData,
		ThrottleSeconds: e.ThrottleSeconds,
	}
}

func decodeScalar(fields map[string]json.RawMessage, key string, dst any) error {
	raw := fields[key]
	if isNull(raw) {
		return &DecodeError{Path: key, Kind: ErrTypeMismatch, Err: errors.New("unexpected null")}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fieldError(key, err)
	}
	return nil
}

func fieldError(key string, err error) *DecodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := key
		if typeErr.Field != "" {
			path = key + "." + typeErr.Field
		}
		return &DecodeError{Path: path, Kind: ErrTypeMismatch, Err: err}
	}
	if key == KeyResponse {
		return &DecodeError{Path: key, Kind: ErrInvalidPayload, Err: err}
	}
	return &DecodeError{Path: key, Kind: ErrTypeMismatch, Err: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
