package exec

import (
	"reflect"
	"strings"

	"github.com/ScyllaDigital/graphql-go/types"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// DefaultFieldResolver reads a field from the source value: a map entry, an
// exported struct field or a method, matched case-insensitively. A niladic
// function value is called and may return a trailing error.
func DefaultFieldResolver(p types.ResolveParams) (interface{}, error) {
	v, ok := lookupField(p.Source, p.Info.FieldName)
	if !ok {
		return nil, nil
	}
	return callIfFunc(v)
}

func lookupField(source interface{}, name string) (interface{}, bool) {
	if source == nil {
		return nil, false
	}
	if m, ok := source.(map[string]interface{}); ok {
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(source)
	if method := rv.MethodByName(exportedName(name)); method.IsValid() {
		return method.Interface(), true
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(name))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		if method := rv.MethodByName(exportedName(name)); method.IsValid() {
			return method.Interface(), true
		}
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			if strings.EqualFold(f.Name, name) {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// callIfFunc invokes niladic function values; anything else passes through.
func callIfFunc(v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.Type().NumIn() != 0 {
		return v, nil
	}
	out := rv.Call(nil)
	switch len(out) {
	case 1:
		if rv.Type().Out(0) == errType {
			err, _ := out[0].Interface().(error)
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		err, _ := out[1].Interface().(error)
		return out[0].Interface(), err
	}
	return nil, nil
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
