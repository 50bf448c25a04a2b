// Package exec resolves a validated operation against a schema.
package exec

import (
	"context"
	"sync"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/deferred"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/coerce"
	"github.com/ScyllaDigital/graphql-go/log"
	"github.com/ScyllaDigital/graphql-go/trace/noop"
	"github.com/ScyllaDigital/graphql-go/trace/tracer"
	"github.com/ScyllaDigital/graphql-go/types"
)

// Execution owns the per-request state of one operation.
type Execution struct {
	Schema    *types.Schema
	Fragments map[string]*ast.FragmentDefinition
	RootValue interface{}
	Context   context.Context
	Operation *ast.OperationDefinition
	Variables map[string]interface{}

	// Adapter drives deferred values returned by resolvers. Defaults to a
	// fresh SyncAdapter per execution.
	Adapter deferred.Adapter
	// FieldResolver handles fields without their own resolver. Defaults to
	// DefaultFieldResolver.
	FieldResolver types.FieldResolveFn
	Logger        log.Logger
	Tracer        tracer.Tracer

	mu   sync.Mutex
	errs []*errors.QueryError
}

// Execute runs the operation to completion. The returned data is nil when an
// error reached the response root; collected field errors are available via
// Errors.
func (e *Execution) Execute() interface{} {
	e.normalize()

	root, qe := e.rootType()
	if qe != nil {
		e.AddError(qe)
		return nil
	}
	groups := e.collectFields(root, e.Operation.SelectionSet)

	var v interface{}
	var bubbled *errors.QueryError
	if e.Operation.Operation == ast.Mutation {
		v, bubbled = e.executeFieldsSerially(root, e.RootValue, groups, nil)
	} else {
		v, bubbled = e.executeFields(root, e.RootValue, groups, nil)
	}
	if bubbled != nil {
		e.AddError(bubbled)
		return nil
	}

	settled, err := e.Adapter.Await(v)
	if err != nil {
		e.AddError(errors.AsQueryError(err))
		return nil
	}
	return settled
}

func (e *Execution) normalize() {
	if e.Context == nil {
		e.Context = context.Background()
	}
	if e.Adapter == nil {
		e.Adapter = deferred.NewSyncAdapter()
	}
	if e.FieldResolver == nil {
		e.FieldResolver = DefaultFieldResolver
	}
	if e.Logger == nil {
		e.Logger = log.DefaultLogger{}
	}
	if e.Tracer == nil {
		e.Tracer = noop.Tracer{}
	}
}

func (e *Execution) rootType() (*types.Object, *errors.QueryError) {
	switch e.Operation.Operation {
	case ast.Mutation:
		if e.Schema.MutationType() == nil {
			return nil, errors.Errorf("Schema is not configured for mutations.")
		}
		return e.Schema.MutationType(), nil
	case ast.Subscription:
		if e.Schema.SubscriptionType() == nil {
			return nil, errors.Errorf("Schema is not configured for subscriptions.")
		}
		return e.Schema.SubscriptionType(), nil
	default:
		return e.Schema.QueryType(), nil
	}
}

func (e *Execution) AddError(qe *errors.QueryError) {
	e.mu.Lock()
	e.errs = append(e.errs, qe)
	e.mu.Unlock()
}

func (e *Execution) Errors() []*errors.QueryError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*errors.QueryError(nil), e.errs...)
}

// executeFields resolves a group list against one object value. The result is
// an *OrderedMap, deferred when any field is still pending. A non-nil bubbled
// error means a non-null field failed and the caller must null out.
func (e *Execution) executeFields(obj *types.Object, source interface{}, groups []*fieldGroup, path *types.Path) (interface{}, *errors.QueryError) {
	keys := make([]string, 0, len(groups))
	vals := make([]interface{}, 0, len(groups))
	hasDeferred := false
	for _, g := range groups {
		v, bubbled, ok := e.executeField(obj, source, g, path)
		if bubbled != nil {
			return nil, bubbled
		}
		if !ok {
			continue
		}
		keys = append(keys, g.key)
		vals = append(vals, v)
		if e.Adapter.IsDeferred(v) {
			hasDeferred = true
		}
	}
	if !hasDeferred {
		return orderedResult(keys, vals), nil
	}
	return e.Adapter.Then(e.Adapter.All(vals), func(resolved interface{}) (interface{}, error) {
		return orderedResult(keys, resolved.([]interface{})), nil
	}, nil), nil
}

// executeFieldsSerially waits for each field, and everything it transitively
// deferred, before starting the next one.
func (e *Execution) executeFieldsSerially(obj *types.Object, source interface{}, groups []*fieldGroup, path *types.Path) (interface{}, *errors.QueryError) {
	result := NewOrderedMap(len(groups))
	for _, g := range groups {
		v, bubbled, ok := e.executeField(obj, source, g, path)
		if bubbled != nil {
			return nil, bubbled
		}
		if !ok {
			continue
		}
		settled, err := e.Adapter.Await(v)
		if err != nil {
			return nil, errors.AsQueryError(err)
		}
		result.Set(g.key, settled)
	}
	return result, nil
}

func orderedResult(keys []string, vals []interface{}) *OrderedMap {
	m := NewOrderedMap(len(keys))
	for i, key := range keys {
		m.Set(key, vals[i])
	}
	return m
}

// executeField resolves one response key. ok is false when the field is not
// defined on obj, which validation normally rules out.
func (e *Execution) executeField(obj *types.Object, source interface{}, g *fieldGroup, parentPath *types.Path) (interface{}, *errors.QueryError, bool) {
	def, ok := e.fieldDefinition(obj, g.fields[0].Name.Name)
	if !ok {
		return nil, nil, false
	}
	path := parentPath.Append(g.key)
	info := &types.ResolveInfo{
		FieldName:       def.Name,
		FieldASTs:       g.fields,
		FieldDefinition: def,
		ReturnType:      def.Type,
		ParentType:      obj,
		Path:            path,
		Schema:          e.Schema,
		Fragments:       e.Fragments,
		RootValue:       e.RootValue,
		Operation:       e.Operation,
		VariableValues:  e.Variables,
	}

	args, argErrs := coerce.ArgumentValues(def.Args, g.fields[0].Arguments, e.Variables)
	if len(argErrs) > 0 {
		qe := argErrs[0]
		if qe.Path == nil {
			qe.Path = path.Slice()
		}
		v, bubbled := e.handleFieldError(def.Type, qe)
		return v, bubbled, true
	}

	resolver := def.Resolve
	trivial := resolver == nil
	if resolver == nil {
		resolver = e.FieldResolver
	}

	label := "GraphQL field: " + obj.TypeName() + "." + def.Name
	traceCtx, finish := e.Tracer.TraceField(e.Context, label, obj.TypeName(), def.Name, trivial, args)

	v, rerr := e.resolve(resolver, types.ResolveParams{Context: traceCtx, Source: source, Args: args, Info: info})
	if rerr != nil {
		qe := e.located(rerr, info, path)
		finish(qe)
		val, bubbled := e.handleFieldError(def.Type, qe)
		return val, bubbled, true
	}
	finish(nil)

	val, bubbled := e.completeCatching(def.Type, info, path, v)
	return val, bubbled, true
}

// resolve invokes a resolver, converting panics into internal errors.
func (e *Execution) resolve(resolver types.FieldResolveFn, p types.ResolveParams) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.LogPanic(p.Context, r)
			err = errors.InternalErrorf("panic occurred: %v", r)
		}
	}()
	return resolver(p)
}

// handleFieldError absorbs a field error at a nullable position; at a
// non-null position it hands the error to the caller to null out.
func (e *Execution) handleFieldError(t types.Output, qe *errors.QueryError) (interface{}, *errors.QueryError) {
	if _, nonNull := t.(*types.NonNull); nonNull {
		return nil, qe
	}
	e.AddError(qe)
	return nil, nil
}

// located attaches the field's position to an error that lacks one.
func (e *Execution) located(err error, info *types.ResolveInfo, path *types.Path) *errors.QueryError {
	qe := errors.AsQueryError(err)
	if qe.Path == nil {
		qe.Path = path.Slice()
	}
	if len(qe.Locations) == 0 && len(info.FieldASTs) > 0 {
		qe.Locations = []errors.Location{info.FieldASTs[0].Loc}
	}
	return qe
}
