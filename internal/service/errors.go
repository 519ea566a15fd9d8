package service

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery matches every error caused by the query request itself.
var ErrInvalidQuery = errors.New("invalid query")

type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	if e.Field == "" {
		return "invalid field: empty field name"
	}
	return fmt.Sprintf("invalid field %q", e.Field)
}

func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidQuery
}

type QueryError struct {
	Cause string
}

func (e *QueryError) Error() string {
	return "query error: " + e.Cause
}

func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}
