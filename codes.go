package bungie

import "fmt"

// PlatformErrorCode is the numeric ErrorCode the Bungie.net Platform puts in every response.
type PlatformErrorCode int32

// Only the codes this package branches on or commonly surfaces are named here.
const (
	PlatformErrorNone                             PlatformErrorCode = 0
	PlatformErrorSuccess                          PlatformErrorCode = 1
	PlatformErrorTransportException               PlatformErrorCode = 2
	PlatformErrorUnhandledException               PlatformErrorCode = 3
	PlatformErrorNotImplemented                   PlatformErrorCode = 4
	PlatformErrorSystemDisabled                   PlatformErrorCode = 5
	PlatformErrorParameterParseFailure            PlatformErrorCode = 7
	PlatformErrorParameterInvalidRange            PlatformErrorCode = 8
	PlatformErrorBadRequest                       PlatformErrorCode = 9
	PlatformErrorThrottleLimitExceeded            PlatformErrorCode = 31
	PlatformErrorThrottleLimitExceededMinutes     PlatformErrorCode = 35
	PlatformErrorThrottleLimitExceededMomentarily PlatformErrorCode = 36
	PlatformErrorThrottleLimitExceededSeconds     PlatformErrorCode = 37
	PlatformErrorDestinyAccountNotFound           PlatformErrorCode = 1601
	PlatformErrorAPIInvalidOrExpiredKey           PlatformErrorCode = 2101
	PlatformErrorAPIKeyMissingFromRequest         PlatformErrorCode = 2102
)

// SuccessCode is the ErrorCode meaning the Response payload is valid.
const SuccessCode = PlatformErrorSuccess

var platformErrorNames = map[PlatformErrorCode]string{
	PlatformErrorNone:                             "None",
	PlatformErrorSuccess:                          "Success",
	PlatformErrorTransportException:               "TransportException",
	PlatformErrorUnhandledException:               "UnhandledException",
	PlatformErrorNotImplemented:                   "NotImplemented",
	PlatformErrorSystemDisabled:                   "SystemDisabled",
	PlatformErrorParameterParseFailure:            "ParameterParseFailure",
	PlatformErrorParameterInvalidRange:            "ParameterInvalidRange",
	PlatformErrorBadRequest:                       "BadRequest",
	PlatformErrorThrottleLimitExceeded:            "ThrottleLimitExceeded",
	PlatformErrorThrottleLimitExceededMinutes:     "ThrottleLimitExceededMinutes",
	PlatformErrorThrottleLimitExceededMomentarily: "ThrottleLimitExceededMomentarily",
	PlatformErrorThrottleLimitExceededSeconds:     "ThrottleLimitExceededSeconds",
	PlatformErrorDestinyAccountNotFound:           "DestinyAccountNotFound",
	PlatformErrorAPIInvalidOrExpiredKey:           "ApiInvalidOrExpiredKey",
	PlatformErrorAPIKeyMissingFromRequest:         "ApiKeyMissingFromRequest",
}

func (c PlatformErrorCode) String() string {
	if name, ok := platformErrorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PlatformErrorCode(%d)", int32(c))
}

// IsThrottleCode reports whether code belongs to the throttle family. These
// usually arrive with a nonzero ThrottleSeconds, but not always.
func IsThrottleCode(code PlatformErrorCode) bool {
	switch code {
	case PlatformErrorThrottleLimitExceeded,
		PlatformErrorThrottleLimitExceededMinutes,
		PlatformErrorThrottleLimitExceededMomentarily,
		PlatformErrorThrottleLimitExceededSeconds:
		return true
	}
	return false
}
