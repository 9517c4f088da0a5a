package domain

import "errors"

// Domain errors - business logic errors that are translated to HTTP status
// codes by the handler layer

var (
	// Problem errors
	ErrProblemNotFound = errors.New("problem not found")

	// Submission errors
	ErrInvalidAnswer = errors.New("invalid answer format")

	// General errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)
