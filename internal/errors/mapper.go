package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Map converts repo/service errors into an HTTP status plus a JSON-ready
// body. Keeps handlers clean by centralizing error mapping.
func Map(err error) (int, map[string]string) {
	if err == nil {
		return http.StatusOK, nil
	}

	var de *Error
	if errors.As(err, &de) {
		return statusFor(de.Kind), map[string]string{
			"error":   string(de.Kind),
			"message": de.Message,
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, map[string]string{
			"error":   string(KindNotFound),
			"message": "record not found",
		}

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, map[string]string{
			"error":   string(KindPersistence),
			"message": "request timed out",
		}

	case errors.Is(err, context.Canceled):
		return 499, map[string]string{
			"error":   string(KindPersistence),
			"message": "request was canceled",
		}

	default:
		return http.StatusInternalServerError, map[string]string{
			"error":   string(KindPersistence),
			"message": err.Error(),
		}
	}
}

func statusFor(k Kind) int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
