package errors

import (
	"fmt"
)

// QueryError is the engine's error value. Every error that can reach a client
// response is a QueryError: syntax errors from the parser, validation errors,
// coercion errors and errors raised while resolving fields.
type QueryError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Rule          string                 `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`

	// Nodes holds the offending AST nodes, when known. The concrete type is
	// ast.Node; it is declared as interface{} to keep this package free of an
	// ast dependency.
	Nodes []interface{} `json:"-"`

	// ClientSafe reports whether Message may be shown to a client verbatim.
	// Validation and coercion errors are client safe; engine invariant
	// violations and resolver panics are not.
	ClientSafe bool `json:"-"`
}

// Location is a line/column position in the query source. Both are 1-based.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// Errorf returns a client-safe QueryError. If an argument is an error it is
// kept as the cause, reachable through Unwrap.
func Errorf(format string, a ...interface{}) *QueryError {
	qe := &QueryError{
		Message:    fmt.Sprintf(format, a...),
		ClientSafe: true,
	}
	for _, arg := range a {
		if err, ok := arg.(error); ok {
			qe.ResolverError = err
			break
		}
	}
	return qe
}

// InternalErrorf returns a QueryError whose message must not reach clients.
func InternalErrorf(format string, a ...interface{}) *QueryError {
	return &QueryError{
		Message: fmt.Sprintf(format, a...),
	}
}

func (err *QueryError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (line %d, column %d)", loc.Line, loc.Column)
	}
	return str
}

// Unwrap exposes the underlying cause, if any.
func (err *QueryError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.ResolverError
}

var _ error = &QueryError{}

// SanitizedMessage replaces the message of a QueryError that is not client
// safe when a response is sanitized.
const SanitizedMessage = "Internal server error"

// Sanitize returns a copy of errs where every error that is not client safe
// has its message replaced by SanitizedMessage. Locations and paths are kept;
// they carry no sensitive detail and remain useful to clients.
func Sanitize(errs []*QueryError) []*QueryError {
	if len(errs) == 0 {
		return errs
	}
	out := make([]*QueryError, len(errs))
	for i, err := range errs {
		if err.ClientSafe {
			out[i] = err
			continue
		}
		clean := *err
		clean.Message = SanitizedMessage
		out[i] = &clean
	}
	return out
}

// AsQueryError converts err into a QueryError, preserving it if it already is
// one. Plain errors are considered client safe: they were produced by host
// code that chose the message.
func AsQueryError(err error) *QueryError {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*QueryError); ok {
		return qe
	}
	return &QueryError{
		Message:       err.Error(),
		ResolverError: err,
		ClientSafe:    true,
	}
}
