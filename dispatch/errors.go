package dispatch

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned by Table.Dispatch when no registered entry matches
// the request method and path. The caller decides how to surface it;
// Handler turns it into 404 Not Found per RFC 9110 Section 15.5.5.
var ErrNoRoute = errors.New("dispatch: no matching route")

// ErrMissingParam is the match target for MissingParamError values.
var ErrMissingParam = errors.New("dispatch: missing parameter")

// ErrInvalidParam is the match target for InvalidParamError values.
var ErrInvalidParam = errors.New("dispatch: invalid parameter")

// DuplicateRouteError is returned by Builder.Build when two entries share
// the same method and pattern shape. Registration is a startup-time
// activity; a duplicate means the table is never built.
type DuplicateRouteError struct {
	Method   string
	Template string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("dispatch: duplicate route %s %s", e.Method, e.Template)
}

// MissingParamError reports a declared required parameter with no value:
// either a required query parameter absent from the request, or a path
// parameter with no binding supplied to reverse routing.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("dispatch: missing parameter %q", e.Name)
}

func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// InvalidParamError reports a query parameter value that failed coercion
// to its declared type. Name and the raw value are carried so the caller
// can build a useful client error.
type InvalidParamError struct {
	Name  string
	Value string
	Type  string
	Err   error
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("dispatch: invalid parameter %q: value %q is not a valid %s", e.Name, e.Value, e.Type)
}

func (e *InvalidParamError) Unwrap() error {
	return e.Err
}

func (e *InvalidParamError) Is(target error) bool {
	return target == ErrInvalidParam
}

// UnboundActionError is returned by Table.Dispatch when the matched entry
// references an action id that has no attached ActionConfig. Entries
// without actions are legal (match-only and reverse-only tables), but
// dispatching to one is a programming error.
type UnboundActionError struct {
	ActionID string
}

func (e *UnboundActionError) Error() string {
	return fmt.Sprintf("dispatch: action %q has no handler attached", e.ActionID)
}
