package mandel

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError names the parameter that broke an invariant.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParameter, e.Field, e.Message)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

func paramErrorf(field, format string, args ...any) error {
	return &ParamError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
