package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error. Plain errors report
// CodeInternal; nil reports CodeOK.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMessage extracts the user-facing message from an error.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// GetMeta extracts metadata from an error.
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsFailedPrecondition checks if an error is a failed precondition error.
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsPermissionDenied checks if an error is a permission denied error.
func IsPermissionDenied(err error) bool {
	return GetCode(err) == CodePermissionDenied
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsDeadlineExceeded checks if an error is a deadline exceeded error.
func IsDeadlineExceeded(err error) bool {
	return GetCode(err) == CodeDeadlineExceeded
}

// IsDataLoss checks if an error is a data loss error.
func IsDataLoss(err error) bool {
	return GetCode(err) == CodeDataLoss
}

// IsTransport reports whether an error came from the transport layer and the
// triggering operation may be retried.
func IsTransport(err error) bool {
	code := GetCode(err)
	return code == CodeUnavailable || code == CodeDeadlineExceeded
}
