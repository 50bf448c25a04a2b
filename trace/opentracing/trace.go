// Package opentracing reports trace events as OpenTracing spans.
package opentracing

import (
	"context"
	"fmt"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/trace/tracer"
)

// Tracer creates an OpenTracing span per request and per non-trivial field.
type Tracer struct{}

func (Tracer) TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}, varTypes map[string]string) (context.Context, tracer.QueryFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "GraphQL request")
	span.SetTag("graphql.query", queryString)

	if operationName != "" {
		span.SetTag("graphql.operationName", operationName)
	}

	if len(variables) != 0 {
		span.LogFields(log.Object("graphql.variables", variables))
	}

	return spanCtx, func(errs []*errors.QueryError) {
		if len(errs) > 0 {
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", joinedMessage(errs))
		}
		span.Finish()
	}
}

func (Tracer) TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, tracer.FieldFinishFunc) {
	if trivial {
		return ctx, noop
	}

	span, spanCtx := opentracing.StartSpanFromContext(ctx, label)
	span.SetTag("graphql.type", typeName)
	span.SetTag("graphql.field", fieldName)
	for name, value := range args {
		span.SetTag("graphql.args."+name, value)
	}

	return spanCtx, func(err *errors.QueryError) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", err.Error())
		}
		span.Finish()
	}
}

func (Tracer) TraceValidation(ctx context.Context) tracer.ValidationFinishFunc {
	span, _ := opentracing.StartSpanFromContext(ctx, "Validate Query")

	return func(errs []*errors.QueryError) {
		if len(errs) > 0 {
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", joinedMessage(errs))
		}
		span.Finish()
	}
}

func joinedMessage(errs []*errors.QueryError) string {
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more errors)", len(errs)-1)
	}
	return msg
}

func noop(*errors.QueryError) {}

var _ tracer.Tracer = Tracer{}
var _ tracer.ValidationTracer = Tracer{}
