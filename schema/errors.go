package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for the compiler error taxonomy. Every typed error below
// unwraps to one of these, so callers can use errors.Is.
var (
	ErrSchema              = errors.New("schema error")
	ErrInvalidPredicate    = errors.New("invalid predicate")
	ErrUnresolvedParameter = errors.New("unresolved parameter")
	ErrMalformedInput      = errors.New("malformed input")
)

// SchemaError reports an invalid field declaration.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: field %q: %s", e.Field, e.Reason)
}

// Unwrap returns ErrSchema.
func (e *SchemaError) Unwrap() error { return ErrSchema }

// InvalidPredicateError reports a rule expression that cannot be compiled.
type InvalidPredicateError struct {
	Field  string
	Rule   string
	Reason string
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("invalid predicate %q for field %q: %s", e.Rule, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidPredicate.
func (e *InvalidPredicateError) Unwrap() error { return ErrInvalidPredicate }

// UnresolvedParameterError reports a placeholder with no value in the parameter mapping.
type UnresolvedParameterError struct {
	Name string
	Text string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("unresolved parameter $%s in %q", e.Name, e.Text)
}

// Unwrap returns ErrUnresolvedParameter.
func (e *UnresolvedParameterError) Unwrap() error { return ErrUnresolvedParameter }

// MalformedInputError reports a missing or ill-typed key in the input description.
// Path is a JSON-style location such as characteristics[1].attributes[0].reasonCode.
type MalformedInputError struct {
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return "malformed input: " + e.Reason
	}
	return fmt.Sprintf("malformed input at %s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// Missing returns a MalformedInputError for a required key that is absent.
func Missing(path string) *MalformedInputError {
	return &MalformedInputError{Path: path, Reason: "required key is missing"}
}
