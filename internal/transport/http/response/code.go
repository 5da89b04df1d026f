package response

import (
	"errors"
	"net/http"

	"account-api/internal/domain"
)

// StatusFor maps a service error kind onto its HTTP status.
func StatusFor(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden, domain.KindInactive:
		return http.StatusForbidden
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Request body too large",
	http.StatusInternalServerError:   domain.MsgUnexpected,
	http.StatusServiceUnavailable:    "Server busy",
	http.StatusGatewayTimeout:        "Request timed out",
}

func DefaultMessage(status int) string {
	if m, ok := defaultMessages[status]; ok {
		return m
	}
	return http.StatusText(status)
}

// FromError renders err. Foreign errors never leak their text.
func FromError(err error) Envelope {
	var de *domain.Error
	if errors.As(err, &de) {
		msg := de.Message
		if de.Kind == domain.KindUnexpected {
			msg = domain.MsgUnexpected
		}
		return Error(StatusFor(de.Kind), msg)
	}
	return Error(http.StatusInternalServerError, domain.MsgUnexpected)
}
