package types

import (
	"errors"
	"fmt"
)

// State graph errors.
var (
	ErrStateNotFound    = errors.New("state not found")
	ErrInvalidStateDecl = errors.New("invalid state declaration")
	ErrNoRoute          = errors.New("no state matches url")
)

// Navigation errors.
var (
	ErrParamCoercion    = errors.New("parameter coercion failed")
	ErrRedirectLoop     = errors.New("redirect loop")
	ErrAbstractState    = errors.New("cannot settle on abstract state")
	ErrSuperseded       = errors.New("navigation superseded")
	ErrForcedNavigation = errors.New("forced navigation failed")
)

// Redirect memory errors.
var (
	ErrMemoryDetached = errors.New("redirect memory is detached")
)

// ParamCoercionError reports a URL parameter that cannot be coerced to its
// declared type. It matches ErrParamCoercion with errors.Is.
type ParamCoercionError struct {
	Param string
	Value any
	Type  ParamType
	Err   error
}

func (e *ParamCoercionError) Error() string {
	return fmt.Sprintf("param %q: cannot coerce %v to %s: %v", e.Param, e.Value, e.Type, e.Err)
}

// Is matches ErrParamCoercion.
func (e *ParamCoercionError) Is(target error) bool {
	return target == ErrParamCoercion
}

func (e *ParamCoercionError) Unwrap() error {
	return e.Err
}
