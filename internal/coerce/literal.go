package coerce

import (
	"strconv"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/types"
)

type astValue = ast.Value

// Literal coerces an AST literal against an input type. The second result is
// false when the literal has no value at all: a type mismatch, an unknown
// enum value, or a variable reference with no runtime value. Callers fall
// back to defaults in that case.
//
// An explicit null literal is a value: it returns (nil, true) for nullable
// positions and (nil, false) for non-null ones.
func Literal(lit ast.Value, t types.Input, variables map[string]interface{}) (interface{}, bool) {
	if v, ok := lit.(*ast.Variable); ok {
		if variables == nil {
			return nil, false
		}
		value, provided := variables[v.Name.Name]
		if !provided {
			return nil, false
		}
		if _, nonNull := t.(*types.NonNull); nonNull && value == nil {
			return nil, false
		}
		// Variable values were coerced up front; use as is.
		return value, true
	}

	switch t := t.(type) {
	case *types.NonNull:
		if _, isNull := lit.(*ast.NullValue); isNull {
			return nil, false
		}
		v, ok := Literal(lit, t.OfType.(types.Input), variables)
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}

	if _, isNull := lit.(*ast.NullValue); isNull {
		return nil, true
	}

	switch t := t.(type) {
	case *types.List:
		itemType := t.OfType.(types.Input)
		list, isList := lit.(*ast.ListValue)
		if !isList {
			item, ok := Literal(lit, itemType, variables)
			if !ok {
				return nil, false
			}
			return []interface{}{item}, true
		}
		out := make([]interface{}, len(list.Values))
		for i, itemLit := range list.Values {
			item, ok := Literal(itemLit, itemType, variables)
			if !ok {
				// A missing variable in a nullable item position becomes
				// null; anywhere else the whole list is undefined.
				if _, isVar := itemLit.(*ast.Variable); isVar {
					if _, nonNull := itemType.(*types.NonNull); !nonNull {
						out[i] = nil
						continue
					}
				}
				return nil, false
			}
			out[i] = item
		}
		return out, true

	case *types.InputObject:
		obj, isObj := lit.(*ast.ObjectValue)
		if !isObj {
			return nil, false
		}
		litFields := make(map[string]ast.Value, len(obj.Fields))
		for _, f := range obj.Fields {
			litFields[f.Name.Name] = f.Value
		}
		for _, f := range obj.Fields {
			if _, defined := t.Field(f.Name.Name); !defined {
				return nil, false
			}
		}
		out := make(map[string]interface{}, len(t.Fields()))
		for _, f := range t.Fields() {
			fieldLit, present := litFields[f.Name]
			if !present {
				if f.HasDefault {
					out[f.Name] = defaultInputValue(f.DefaultValue, f.Type)
					continue
				}
				if _, nonNull := f.Type.(*types.NonNull); nonNull {
					return nil, false
				}
				continue
			}
			v, ok := Literal(fieldLit, f.Type, variables)
			if !ok {
				if f.HasDefault {
					out[f.Name] = defaultInputValue(f.DefaultValue, f.Type)
					continue
				}
				if _, nonNull := f.Type.(*types.NonNull); nonNull {
					return nil, false
				}
				continue
			}
			out[f.Name] = v
		}
		return out, true

	case *types.Scalar:
		if !t.HasLiteralParser() {
			return Untyped(lit, variables), true
		}
		v, err := t.ParseLiteral(lit)
		if err != nil {
			return nil, false
		}
		return v, true

	case *types.Enum:
		ev, isEnum := lit.(*ast.EnumValue)
		if !isEnum {
			return nil, false
		}
		val, defined := t.Value(ev.Value)
		if !defined {
			return nil, false
		}
		return val.Value, true
	}

	return nil, false
}

// Untyped converts a literal to a plain Go value without consulting any type:
// the fallback for custom scalars that parse host values only.
func Untyped(lit ast.Value, variables map[string]interface{}) interface{} {
	switch lit := lit.(type) {
	case *ast.Variable:
		return variables[lit.Name.Name]
	case *ast.IntValue:
		if i, err := strconv.ParseInt(lit.Value, 10, 32); err == nil {
			return int32(i)
		}
		i, _ := strconv.ParseInt(lit.Value, 10, 64)
		return i
	case *ast.FloatValue:
		f, _ := strconv.ParseFloat(lit.Value, 64)
		return f
	case *ast.StringValue:
		return lit.Value
	case *ast.BooleanValue:
		return lit.Value
	case *ast.NullValue:
		return nil
	case *ast.EnumValue:
		return lit.Value
	case *ast.ListValue:
		out := make([]interface{}, len(lit.Values))
		for i, item := range lit.Values {
			out[i] = Untyped(item, variables)
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(lit.Fields))
		for _, f := range lit.Fields {
			out[f.Name.Name] = Untyped(f.Value, variables)
		}
		return out
	}
	return nil
}
