package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	var (
		authErr    *apperr.AuthError
		uploadErr  *apperr.UploadError
		storageErr *apperr.StorageError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrDuplicatePhone), errors.Is(err, apperr.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.As(err, &authErr):
		if authErr.Forbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &uploadErr), errors.As(err, &storageErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
