package services

import (
	"errors"
	"fmt"

	"github.com/orderdesk/delivery/app/repositories"
	"github.com/orderdesk/delivery/pkg/validate"
)

// ErrNotFound marks operations whose target record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	Message string
	Fields  validate.Errors
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func invalidFields(errs validate.Errors) *ValidationError {
	return &ValidationError{Message: errs.Error(), Fields: errs}
}

// BackendError wraps a failure of the document store or the asset store.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// storeErr maps a repository error for op onto the service taxonomy.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return &BackendError{Op: op, Err: err}
}
