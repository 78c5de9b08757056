package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	dxerrors "github.com/zadonuts/donutdex/pkg/errors"
	"github.com/zadonuts/donutdex/pkg/serializer"
)

// HTTPStatusFromCode maps structured error codes to HTTP status codes.
func HTTPStatusFromCode(code dxerrors.ErrorCode) int {
	switch code {
	case dxerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case dxerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case dxerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dxerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case dxerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case dxerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry the request
// unchanged. Transient conditions are retryable; caller mistakes are
// not.
func retryableFromCode(code dxerrors.ErrorCode) bool {
	switch code {
	case dxerrors.ErrCodeTimeout,
		dxerrors.ErrCodeUnavailable,
		dxerrors.ErrCodeRateLimitExceeded,
		dxerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails combines two detail maps, the second overwriting the
// first. Returns nil when both are empty so the field is omitted from
// the envelope.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes the standard error envelope with an explicit
// status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code dxerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps a structured error onto the envelope. The
// fallback message is used when the error carries none; extra details
// are merged over the error's own context.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallback string, details map[string]any) {

	code := dxerrors.GetCode(err)

	message := fallback
	var errDetails map[string]any

	var structured *dxerrors.StructuredError
	if errors.As(err, &structured) {
		if structured.Message != "" {
			message = structured.Message
		}
		errDetails = structured.Context
		if cause := structured.Unwrap(); cause != nil {
			errDetails = mergeDetails(errDetails, map[string]any{"error": cause.Error()})
		}
	} else if err != nil {
		errDetails = map[string]any{"error": err.Error()}
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message,
		retryableFromCode(code), mergeDetails(errDetails, details))
}
