// Package coerce implements the two input coercion directions: host values
// (variables) and AST literals (arguments, defaults).
package coerce

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/suggestion"
	"github.com/ScyllaDigital/graphql-go/types"
)

// InputValue coerces a host value against an input type. All problems are
// collected, not just the first; each error's path extends the given path
// into the value.
func InputValue(value interface{}, t types.Input, path *types.Path) (interface{}, []*errors.QueryError) {
	switch t := t.(type) {
	case *types.NonNull:
		if value == nil {
			return nil, []*errors.QueryError{inputError(path, "Expected non-nullable type %q not to be null.", t.String())}
		}
		return InputValue(value, t.OfType.(types.Input), path)
	}

	if value == nil {
		return nil, nil
	}

	switch t := t.(type) {
	case *types.List:
		return coerceListValue(value, t, path)
	case *types.InputObject:
		return coerceObjectValue(value, t, path)
	case *types.Scalar:
		coerced, err := t.ParseValue(value)
		if err != nil {
			qe := inputError(path, "Expected type %q. %s", t.String(), err.Error())
			qe.ResolverError = err
			return nil, []*errors.QueryError{qe}
		}
		return coerced, nil
	case *types.Enum:
		name, ok := value.(string)
		if !ok {
			return nil, []*errors.QueryError{inputError(path, "Enum %q cannot represent non-string value: %v.", t.String(), value)}
		}
		val, ok := t.Value(name)
		if !ok {
			names := make([]string, 0, len(t.Values()))
			for _, v := range t.Values() {
				names = append(names, v.Name)
			}
			msg := fmt.Sprintf("Value %q does not exist in %q enum.", name, t.String())
			if sugg := suggestion.List(name, names); len(sugg) > 0 {
				msg += " Did you mean the enum value " + suggestion.QuotedOrList(sugg) + "?"
			}
			return nil, []*errors.QueryError{inputError(path, "%s", msg)}
		}
		return val.Value, nil
	}

	return nil, []*errors.QueryError{inputError(path, "Unexpected input type %q.", t.String())}
}

func coerceListValue(value interface{}, t *types.List, path *types.Path) (interface{}, []*errors.QueryError) {
	itemType := t.OfType.(types.Input)

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		// A single value coerces to a list of one.
		item, errs := InputValue(value, itemType, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return []interface{}{item}, nil
	}

	out := make([]interface{}, rv.Len())
	var allErrs []*errors.QueryError
	for i := 0; i < rv.Len(); i++ {
		item, errs := InputValue(rv.Index(i).Interface(), itemType, path.Append(i))
		if len(errs) > 0 {
			allErrs = append(allErrs, errs...)
			continue
		}
		out[i] = item
	}
	if len(allErrs) > 0 {
		return nil, allErrs
	}
	return out, nil
}

func coerceObjectValue(value interface{}, t *types.InputObject, path *types.Path) (interface{}, []*errors.QueryError) {
	fields, ok := value.(map[string]interface{})
	if !ok {
		return nil, []*errors.QueryError{inputError(path, "Expected type %q to be an object.", t.String())}
	}

	var allErrs []*errors.QueryError
	out := make(map[string]interface{}, len(t.Fields()))
	for _, f := range t.Fields() {
		fv, present := fields[f.Name]
		if !present {
			if f.HasDefault {
				out[f.Name] = defaultInputValue(f.DefaultValue, f.Type)
				continue
			}
			if _, nonNull := f.Type.(*types.NonNull); nonNull {
				allErrs = append(allErrs, inputError(path, "Field %q of required type %q was not provided.", f.Name, f.Type.String()))
			}
			continue
		}
		coerced, errs := InputValue(fv, f.Type, path.Append(f.Name))
		if len(errs) > 0 {
			allErrs = append(allErrs, errs...)
			continue
		}
		out[f.Name] = coerced
	}

	var unknown []string
	for name := range fields {
		if _, defined := t.Field(name); !defined {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fieldNames := make([]string, 0, len(t.Fields()))
		for _, f := range t.Fields() {
			fieldNames = append(fieldNames, f.Name)
		}
		msg := fmt.Sprintf("Field %q is not defined by type %q.", name, t.String())
		msg += suggestion.DidYouMean(suggestion.List(name, fieldNames))
		allErrs = append(allErrs, inputError(path, "%s", msg))
	}

	if len(allErrs) > 0 {
		return nil, allErrs
	}
	return out, nil
}

// defaultInputValue materializes a configured default, which is either an AST
// literal or an already-coerced Go value.
func defaultInputValue(def interface{}, t types.Input) interface{} {
	if lit, ok := def.(astValue); ok {
		v, _ := Literal(lit, t, nil)
		return v
	}
	return def
}

func inputError(path *types.Path, format string, a ...interface{}) *errors.QueryError {
	qe := errors.Errorf(format, a...)
	qe.Path = path.Slice()
	return qe
}
