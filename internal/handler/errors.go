package handler

import (
	"errors"
	"net/http"

	"github.com/hzqoola/blog-service/internal/service"
)

var errNotAuthorized = errors.New("user is not authorized")

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrMessageRequired),
		errors.Is(err, service.ErrPostSlugRequired),
		errors.Is(err, service.ErrCommentIDRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
