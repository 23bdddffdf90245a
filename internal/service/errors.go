package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrUnauthorized = errors.New("user is not authorized")
	ErrForbidden = errors.New("no rights to perform this action")
	ErrPostNotFound = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrMessageRequired = errors.New("message must not be empty")
	ErrPostSlugRequired = errors.New("post slug must not be empty")
	ErrCommentIDRequired = errors.New("comment ID must not be empty")
)
