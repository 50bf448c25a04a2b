// Package noop defines a no-op tracer.
package noop

import (
	"context"

	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/trace/tracer"
)

// Tracer discards all trace events.
type Tracer struct{}

func (Tracer) TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}, varTypes map[string]string) (context.Context, tracer.QueryFinishFunc) {
	return ctx, func([]*errors.QueryError) {}
}

func (Tracer) TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, tracer.FieldFinishFunc) {
	return ctx, func(*errors.QueryError) {}
}

func (Tracer) TraceValidation(ctx context.Context) tracer.ValidationFinishFunc {
	return func([]*errors.QueryError) {}
}

var _ tracer.Tracer = Tracer{}
var _ tracer.ValidationTracer = Tracer{}
