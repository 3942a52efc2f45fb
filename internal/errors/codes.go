package errors

import "net/http"

// Code classifies an error.
type Code string

// Error codes. The set mirrors the usual RPC codes so transport status
// mapping stays mechanical.
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// FromHTTPStatus maps an HTTP response status to an error code. Used by the
// arena transport to classify non-2xx responses from the resolution service.
func FromHTTPStatus(status int) Code {
	switch {
	case status >= 200 && status < 300:
		return CodeOK
	case status == http.StatusBadRequest:
		return CodeInvalidArgument
	case status == http.StatusForbidden:
		return CodePermissionDenied
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeAlreadyExists
	case status == http.StatusPreconditionFailed:
		return CodeFailedPrecondition
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return CodeDeadlineExceeded
	case status == http.StatusServiceUnavailable, status == http.StatusBadGateway:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}
