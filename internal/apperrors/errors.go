package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyMarked indicates that a duplicate check already carries a terminal decision.
var ErrAlreadyMarked = errors.New("already marked")

// ErrPersistence indicates that the store was unavailable or the unit of work aborted.
var ErrPersistence = errors.New("persistence error")

// ErrResolution indicates that a multi-step resolution failed and was rolled back.
var ErrResolution = errors.New("resolution error")

// AppError carries an error kind (one of the sentinels above), an HTTP status code,
// a human readable message and the underlying cause.
type AppError struct {
	Code    int
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: ErrNotFound, Message: message}
}

func NewDuplicateError(message string, err error) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: ErrDuplicate, Message: message, Err: err}
}

func NewAlreadyMarkedError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: ErrAlreadyMarked, Message: message}
}

func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Kind: ErrPersistence, Message: message, Err: err}
}

func NewResolutionError(message string, err error) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: ErrResolution, Message: message, Err: err}
}

// Kind returns the short name rendered to tool callers for the given error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFoundError"
	case errors.Is(err, ErrAlreadyMarked):
		return "AlreadyMarkedError"
	case errors.Is(err, ErrDuplicate):
		return "DuplicateError"
	case errors.Is(err, ErrResolution):
		return "ResolutionError"
	case errors.Is(err, ErrPersistence):
		return "PersistenceError"
	default:
		return "InternalError"
	}
}

// HTTPStatus maps an error to the status code the handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyMarked), errors.Is(err, ErrResolution), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether a caller may safely retry the whole operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}
