package services

import (
	"errors"
	"fmt"

	"infinite-experiment/logbook/internal/constants"
)

var (
	// ErrNoFlights is returned when a pilot has not logged anything yet
	ErrNoFlights = errors.New("no flights logged")

	// ErrInvalidArgument marks input rejected before it reaches storage
	ErrInvalidArgument = errors.New("invalid argument")
)

// ServiceError carries an error code alongside the underlying failure
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &ServiceError{
		Code:    constants.ErrCodeStorage,
		Message: op,
		Err:     err,
	}
}

// ErrorCode maps any error returned by this package to a constants.ErrCode* value
func ErrorCode(err error) string {
	var svcErr *ServiceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFlights):
		return constants.ErrCodeNoFlights
	case errors.Is(err, ErrInvalidArgument):
		return constants.ErrCodeInvalidArgument
	case errors.As(err, &svcErr):
		return svcErr.Code
	default:
		return constants.ErrCodeStorage
	}
}
