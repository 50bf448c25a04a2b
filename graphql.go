// Package graphql executes GraphQL operations against a schema built with
// the types package.
package graphql

import (
	"context"
	"encoding/json"

	"github.com/segmentio/ksuid"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/deferred"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/coerce"
	"github.com/ScyllaDigital/graphql-go/internal/exec"
	"github.com/ScyllaDigital/graphql-go/internal/parser"
	"github.com/ScyllaDigital/graphql-go/log"
	"github.com/ScyllaDigital/graphql-go/trace/noop"
	"github.com/ScyllaDigital/graphql-go/trace/tracer"
	"github.com/ScyllaDigital/graphql-go/types"
	"github.com/ScyllaDigital/graphql-go/validation"
)

// Params is one request against a schema.
type Params struct {
	Schema *types.Schema

	// Source is the query text. It is ignored when Document is set.
	Source string
	// Document is a pre-parsed query, e.g. from ParseQuery.
	Document *ast.Document

	OperationName  string
	VariableValues map[string]interface{}

	// RootValue is handed to top-level resolvers as their source.
	RootValue interface{}
	// Context is forwarded to every resolver.
	Context context.Context

	// FieldResolver handles fields without their own resolver. Defaults to
	// exec.DefaultFieldResolver behavior (map key, struct field or method).
	FieldResolver types.FieldResolveFn

	// ValidationRules replaces the specified rule set. nil means the
	// specified rules; an empty non-nil slice disables validation.
	ValidationRules []validation.Rule

	// PromiseAdapter drives deferred resolver results. Defaults to a fresh
	// deferred.SyncAdapter per request.
	PromiseAdapter deferred.Adapter

	Tracer tracer.Tracer
	Logger log.Logger

	// ExposeInternalErrors skips replacing non-client-safe error messages
	// with "Internal server error".
	ExposeInternalErrors bool
}

// Result is the response of one request. Data is absent entirely when the
// request failed before execution started; it is JSON null when execution
// started and an error reached the response root.
type Result struct {
	Data       interface{}
	Errors     []*errors.QueryError
	Extensions map[string]interface{}

	hasData bool
}

func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, 3)
	if r.hasData {
		data, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		out["data"] = data
	}
	if len(r.Errors) > 0 {
		errs, err := json.Marshal(r.Errors)
		if err != nil {
			return nil, err
		}
		out["errors"] = errs
	}
	if len(r.Extensions) > 0 {
		ext, err := json.Marshal(r.Extensions)
		if err != nil {
			return nil, err
		}
		out["extensions"] = ext
	}
	// map order is fine here; keys are fixed and tests decode the result.
	return json.Marshal(out)
}

// ParseQuery parses query text into a document that can be passed to Do
// repeatedly.
func ParseQuery(source string) (*ast.Document, error) {
	doc, qe := parser.Parse(source)
	if qe != nil {
		return nil, qe
	}
	return doc, nil
}

// Do runs one request to completion. It never returns an error; failures of
// any phase are reported through Result.Errors.
func Do(p Params) *Result {
	r := do(p)
	if !p.ExposeInternalErrors {
		r.Errors = errors.Sanitize(r.Errors)
	}
	return r
}

func do(p Params) *Result {
	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tr := p.Tracer
	if tr == nil {
		tr = noop.Tracer{}
	}
	requestID := ksuid.New().String()

	doc := p.Document
	if doc == nil {
		parsed, qe := parser.Parse(p.Source)
		if qe != nil {
			return &Result{Errors: []*errors.QueryError{qe}}
		}
		doc = parsed
	}

	op, qe := selectOperation(doc, p.OperationName)
	if qe != nil {
		return &Result{Errors: []*errors.QueryError{qe}}
	}

	traceCtx, finishQuery := tr.TraceQuery(ctx, p.Source, p.OperationName, p.VariableValues, variableTypes(op))

	errs := validate(traceCtx, tr, p, doc)
	if len(errs) > 0 {
		finishQuery(errs)
		return &Result{Errors: errs}
	}

	variables, verrs := coerce.VariableValues(p.Schema, op, p.VariableValues)
	if len(verrs) > 0 {
		finishQuery(verrs)
		return &Result{Errors: verrs}
	}

	e := &exec.Execution{
		Schema:        p.Schema,
		Fragments:     fragments(doc),
		RootValue:     p.RootValue,
		Context:       traceCtx,
		Operation:     op,
		Variables:     variables,
		Adapter:       p.PromiseAdapter,
		FieldResolver: p.FieldResolver,
		Logger:        p.Logger,
		Tracer:        tr,
	}
	data := e.Execute()

	errs = e.Errors()
	for _, err := range errs {
		if err.ClientSafe {
			continue
		}
		if err.Extensions == nil {
			err.Extensions = map[string]interface{}{}
		}
		err.Extensions["requestId"] = requestID
	}
	finishQuery(errs)
	return &Result{Data: data, Errors: errs, hasData: true}
}

func validate(ctx context.Context, tr tracer.Tracer, p Params, doc *ast.Document) []*errors.QueryError {
	rules := p.ValidationRules
	if rules != nil && len(rules) == 0 {
		return nil
	}
	var finish tracer.ValidationFinishFunc
	if vt, ok := tr.(tracer.ValidationTracer); ok {
		finish = vt.TraceValidation(ctx)
	}
	errs := validation.Validate(p.Schema, doc, p.VariableValues, rules)
	if finish != nil {
		finish(errs)
	}
	return errs
}

func selectOperation(doc *ast.Document, name string) (*ast.OperationDefinition, *errors.QueryError) {
	var ops []*ast.OperationDefinition
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, errors.Errorf("Must provide an operation.")
	}
	if name == "" {
		if len(ops) > 1 {
			return nil, errors.Errorf("Must provide operation name if query contains multiple operations.")
		}
		return ops[0], nil
	}
	for _, op := range ops {
		if op.Name.Name == name {
			return op, nil
		}
	}
	return nil, errors.Errorf("Unknown operation named %q.", name)
}

func fragments(doc *ast.Document) map[string]*ast.FragmentDefinition {
	out := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok {
			if _, seen := out[frag.Name.Name]; !seen {
				out[frag.Name.Name] = frag
			}
		}
	}
	return out
}

func variableTypes(op *ast.OperationDefinition) map[string]string {
	if len(op.VariableDefinitions) == 0 {
		return nil
	}
	out := make(map[string]string, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		out[def.Variable.Name] = def.Type.String()
	}
	return out
}
