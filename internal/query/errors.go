package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("query: exercise not found")
	ErrBadRequest = errors.New("query: bad request")
)

// NotFoundError reports a lookup for an id absent from the snapshot.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	id := strings.TrimSpace(e.ID)
	if id != "" {
		return fmt.Sprintf("%s: id=%s", ErrNotFound.Error(), id)
	}
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// BadRequestError reports a request missing a required parameter.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	if e == nil {
		return ErrBadRequest.Error()
	}
	reason := strings.TrimSpace(e.Reason)
	if reason != "" {
		return fmt.Sprintf("%s: %s", ErrBadRequest.Error(), reason)
	}
	return ErrBadRequest.Error()
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}
