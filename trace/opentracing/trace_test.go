package opentracing

import (
	"context"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/require"

	"github.com/ScyllaDigital/graphql-go/errors"
)

func withMockTracer(t *testing.T) *mocktracer.MockTracer {
	t.Helper()
	mock := mocktracer.New()
	old := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(mock)
	t.Cleanup(func() { opentracing.SetGlobalTracer(old) })
	return mock
}

func TestTraceQuery(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceQuery(context.Background(), `{ hello }`, "Op", map[string]interface{}{"v": 1}, nil)
	finish(nil)

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "GraphQL request", spans[0].OperationName)
	require.Equal(t, `{ hello }`, spans[0].Tag("graphql.query"))
	require.Equal(t, "Op", spans[0].Tag("graphql.operationName"))
	require.Nil(t, spans[0].Tag("error"))
}

func TestTraceQueryReportsErrors(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceQuery(context.Background(), `{ hello }`, "", nil, nil)
	finish([]*errors.QueryError{errors.Errorf("first"), errors.Errorf("second")})

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	require.Equal(t, true, spans[0].Tag("error"))
	require.Equal(t, "graphql: first (and 1 more errors)", spans[0].Tag("graphql.error"))
}

func TestTraceFieldSkipsTrivial(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceField(context.Background(), "GraphQL field: Query.hello", "Query", "hello", true, nil)
	finish(nil)

	require.Empty(t, mock.FinishedSpans())
}

func TestTraceField(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceField(context.Background(), "GraphQL field: Query.hello", "Query", "hello", false, map[string]interface{}{"limit": 3})
	finish(errors.Errorf("nope"))

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "GraphQL field: Query.hello", spans[0].OperationName)
	require.Equal(t, "Query", spans[0].Tag("graphql.type"))
	require.Equal(t, "hello", spans[0].Tag("graphql.field"))
	require.Equal(t, 3, spans[0].Tag("graphql.args.limit"))
	require.Equal(t, true, spans[0].Tag("error"))
}

func TestTraceValidation(t *testing.T) {
	mock := withMockTracer(t)

	finish := Tracer{}.TraceValidation(context.Background())
	finish(nil)

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "Validate Query", spans[0].OperationName)
}
