package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSubmissionsClosed = errors.New("submissions are closed")
	ErrPlayerNotFound    = errors.New("player not in catalog")
)
