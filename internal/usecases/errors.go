package usecases

import (
	"aura_journal/internal/storage"
	"errors"
)

type ErrorCode string

const (
	ErrorInvalid       ErrorCode = "invalid"
	ErrorNotFound      ErrorCode = "not_found"
	ErrorConflict      ErrorCode = "conflict"
	ErrorUpstream      ErrorCode = "upstream_classification_failure"
	ErrorUninitialized ErrorCode = "uninitialized"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }

// NewUpstreamError marks a failed classification call. The entry it was
// meant for is already persisted.
func NewUpstreamError(msg string, err error) error {
	return &ServiceError{Code: ErrorUpstream, Message: msg, Err: err}
}

func NewUninitializedError(err error) error {
	return &ServiceError{Code: ErrorUninitialized, Message: "store is not initialized", Err: err}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err carries the given service error code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsServiceError(err)
	return ok && se.Code == code
}

func fromStore(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsServiceError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &ServiceError{Code: ErrorNotFound, Message: notFoundMsg, Err: err}
	case errors.Is(err, storage.ErrUninitialized):
		return NewUninitializedError(err)
	}
	return err
}
