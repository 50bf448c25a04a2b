// Package tracer defines the hooks the engine calls around a request.
package tracer

import (
	"context"

	"github.com/ScyllaDigital/graphql-go/errors"
)

type QueryFinishFunc = func([]*errors.QueryError)
type FieldFinishFunc = func(*errors.QueryError)
type ValidationFinishFunc = func([]*errors.QueryError)

// Tracer is notified when a request starts and when each non-trivial field
// resolves. varTypes maps variable names to their declared type strings.
type Tracer interface {
	TraceQuery(ctx context.Context, queryString string, operationName string, variables map[string]interface{}, varTypes map[string]string) (context.Context, QueryFinishFunc)
	TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, FieldFinishFunc)
}

// ValidationTracer is implemented by tracers that also want to observe the
// validation phase.
type ValidationTracer interface {
	TraceValidation(ctx context.Context) ValidationFinishFunc
}
