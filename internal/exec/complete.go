package exec

import (
	"reflect"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

// completeCatching completes a value and absorbs its errors when the declared
// type allows null. For non-null types the error, including a rejection of a
// still-pending value, is left for the parent to absorb.
func (e *Execution) completeCatching(t types.Output, info *types.ResolveInfo, path *types.Path, v interface{}) (interface{}, *errors.QueryError) {
	completed, qe := e.complete(t, info, path, v)
	if qe != nil {
		return e.handleFieldError(t, qe)
	}
	if !e.Adapter.IsDeferred(completed) {
		return completed, nil
	}
	if _, nonNull := t.(*types.NonNull); nonNull {
		return completed, nil
	}
	return e.Adapter.Then(completed, nil, func(err error) (interface{}, error) {
		e.AddError(errors.AsQueryError(err))
		return nil, nil
	}), nil
}

// complete fits a resolved value to its declared type. Completion is driven
// by the type, not the runtime shape of the value.
func (e *Execution) complete(t types.Output, info *types.ResolveInfo, path *types.Path, v interface{}) (interface{}, *errors.QueryError) {
	if e.Adapter.IsDeferred(v) {
		return e.Adapter.Then(v,
			func(rv interface{}) (interface{}, error) {
				cv, qe := e.complete(t, info, path, rv)
				if qe != nil {
					return nil, qe
				}
				return cv, nil
			},
			func(err error) (interface{}, error) {
				return nil, e.located(err, info, path)
			}), nil
	}

	if nn, ok := t.(*types.NonNull); ok {
		inner, qe := e.complete(nn.OfType.(types.Output), info, path, v)
		if qe != nil {
			return nil, qe
		}
		if e.Adapter.IsDeferred(inner) {
			return e.Adapter.Then(inner, func(rv interface{}) (interface{}, error) {
				if isNil(rv) {
					return nil, e.nonNullError(info, path)
				}
				return rv, nil
			}, nil), nil
		}
		if isNil(inner) {
			return nil, e.nonNullError(info, path)
		}
		return inner, nil
	}

	if isNil(v) {
		return nil, nil
	}

	switch t := t.(type) {
	case *types.List:
		return e.completeList(t, info, path, v)
	case *types.Scalar:
		out, err := t.Serialize(v)
		if err != nil {
			return nil, e.located(err, info, path)
		}
		return out, nil
	case *types.Enum:
		name, err := t.Serialize(v)
		if err != nil {
			return nil, e.located(err, info, path)
		}
		return name, nil
	case *types.Object:
		return e.completeObject(t, info, path, v)
	case types.Abstract:
		obj, qe := e.runtimeType(t, info, path, v)
		if qe != nil {
			return nil, qe
		}
		return e.completeObject(obj, info, path, v)
	}
	return nil, errors.InternalErrorf("cannot complete value of type %q", t.String())
}

func (e *Execution) completeList(t *types.List, info *types.ResolveInfo, path *types.Path, v interface{}) (interface{}, *errors.QueryError) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, e.located(errors.Errorf("Expected Iterable, but did not find one for field \"%s.%s\".", info.ParentType.TypeName(), info.FieldName), info, path)
	}

	itemType := t.OfType.(types.Output)
	items := make([]interface{}, rv.Len())
	hasDeferred := false
	for i := range items {
		item, bubbled := e.completeCatching(itemType, info, path.Append(i), rv.Index(i).Interface())
		if bubbled != nil {
			return nil, bubbled
		}
		items[i] = item
		if e.Adapter.IsDeferred(item) {
			hasDeferred = true
		}
	}
	if !hasDeferred {
		return items, nil
	}
	return e.Adapter.All(items), nil
}

func (e *Execution) completeObject(obj *types.Object, info *types.ResolveInfo, path *types.Path, v interface{}) (interface{}, *errors.QueryError) {
	var sets []*ast.SelectionSet
	for _, f := range info.FieldASTs {
		if f.SelectionSet != nil {
			sets = append(sets, f.SelectionSet)
		}
	}
	groups := e.collectFields(obj, sets...)
	return e.executeFields(obj, v, groups, path)
}

// runtimeType determines the concrete object type of a value at an abstract
// position: the type's own resolver first, then a scan of the possible
// types' IsTypeOf functions.
func (e *Execution) runtimeType(abstract types.Abstract, info *types.ResolveInfo, path *types.Path, v interface{}) (*types.Object, *errors.QueryError) {
	var resolveType types.ResolveTypeFn
	switch t := abstract.(type) {
	case *types.Interface:
		resolveType = t.ResolveType()
	case *types.Union:
		resolveType = t.ResolveType()
	}

	var resolved *types.Object
	if resolveType != nil {
		resolved = resolveType(types.ResolveTypeParams{Context: e.Context, Value: v, Info: info})
	}
	if resolved == nil {
		for _, possible := range e.Schema.PossibleTypes(abstract) {
			if fn := possible.IsTypeOf(); fn != nil && fn(types.IsTypeOfParams{Context: e.Context, Value: v, Info: info}) {
				resolved = possible
				break
			}
		}
	}
	if resolved == nil {
		return nil, e.located(errors.Errorf("Abstract type %q must resolve to an Object type at runtime for field \"%s.%s\". Either the %q type should provide a \"resolveType\" function or each possible type should provide an \"isTypeOf\" function.", abstract.TypeName(), info.ParentType.TypeName(), info.FieldName, abstract.TypeName()), info, path)
	}
	if !e.Schema.IsPossibleType(abstract, resolved) {
		return nil, e.located(errors.Errorf("Runtime Object type %q is not a possible type for %q.", resolved.TypeName(), abstract.TypeName()), info, path)
	}
	return resolved, nil
}

func (e *Execution) nonNullError(info *types.ResolveInfo, path *types.Path) *errors.QueryError {
	qe := errors.Errorf("Cannot return null for non-nullable field %s.%s", info.ParentType.TypeName(), info.FieldName)
	qe.Path = path.Slice()
	if len(info.FieldASTs) > 0 {
		qe.Locations = []errors.Location{info.FieldASTs[0].Loc}
	}
	return qe
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
