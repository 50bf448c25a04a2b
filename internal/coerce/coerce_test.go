package coerce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/internal/parser"
	"github.com/ScyllaDigital/graphql-go/types"
)

var colorEnum = types.NewEnum(types.EnumConfig{
	Name: "Color",
	Values: []*types.EnumValueDefinition{
		{Name: "RED", Value: 0},
		{Name: "GREEN", Value: 1},
		{Name: "BLUE", Value: 2},
	},
})

var pointInput = types.NewInputObject(types.InputObjectConfig{
	Name: "Point",
	Fields: []*types.InputField{
		{Name: "x", Type: types.NewNonNull(types.Int)},
		{Name: "y", Type: types.NewNonNull(types.Int)},
		{Name: "label", Type: types.String, DefaultValue: "origin", HasDefault: true},
	},
})

func TestInputValueScalars(t *testing.T) {
	v, errs := InputValue(7, types.Int, nil)
	require.Empty(t, errs)
	require.Equal(t, int32(7), v)

	_, errs = InputValue("x", types.Int, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Expected type "Int". Int cannot represent non-integer value: x`, errs[0].Message)
	require.Error(t, errs[0].ResolverError)
}

func TestInputValueNonNull(t *testing.T) {
	_, errs := InputValue(nil, types.NewNonNull(types.Int), nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Expected non-nullable type "Int!" not to be null.`, errs[0].Message)

	v, errs := InputValue(nil, types.Int, nil)
	require.Empty(t, errs)
	require.Nil(t, v)
}

func TestInputValueEnum(t *testing.T) {
	v, errs := InputValue("GREEN", colorEnum, nil)
	require.Empty(t, errs)
	require.Equal(t, 1, v)

	_, errs = InputValue(1, colorEnum, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Enum "Color" cannot represent non-string value: 1.`, errs[0].Message)

	_, errs = InputValue("GREN", colorEnum, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Value "GREN" does not exist in "Color" enum. Did you mean the enum value "GREEN"?`, errs[0].Message)
}

func TestInputValueList(t *testing.T) {
	listOfInt := types.NewList(types.Int)

	v, errs := InputValue([]interface{}{1, 2}, listOfInt, nil)
	require.Empty(t, errs)
	require.Equal(t, []interface{}{int32(1), int32(2)}, v)

	// a single value coerces to a list of one
	v, errs = InputValue(3, listOfInt, nil)
	require.Empty(t, errs)
	require.Equal(t, []interface{}{int32(3)}, v)

	_, errs = InputValue([]interface{}{1, "x"}, listOfInt, nil)
	require.Len(t, errs, 1)
	require.Equal(t, []interface{}{1}, errs[0].Path)
}

func TestInputValueObject(t *testing.T) {
	v, errs := InputValue(map[string]interface{}{"x": 1, "y": 2}, pointInput, nil)
	require.Empty(t, errs)
	require.Equal(t, map[string]interface{}{"x": int32(1), "y": int32(2), "label": "origin"}, v)

	_, errs = InputValue(map[string]interface{}{"x": 1}, pointInput, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Field "y" of required type "Int!" was not provided.`, errs[0].Message)

	_, errs = InputValue(map[string]interface{}{"x": 1, "y": 2, "lable": ""}, pointInput, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Field "lable" is not defined by type "Point". Did you mean "label"?`, errs[0].Message)
}

func TestInputValuePath(t *testing.T) {
	nested := types.NewInputObject(types.InputObjectConfig{
		Name: "Box",
		Fields: []*types.InputField{
			{Name: "points", Type: types.NewList(pointInput)},
		},
	})

	_, errs := InputValue(map[string]interface{}{
		"points": []interface{}{map[string]interface{}{"x": 1, "y": "no"}},
	}, nested, nil)
	require.Len(t, errs, 1)
	require.Equal(t, []interface{}{"points", 0, "y"}, errs[0].Path)
}

func argumentValue(t *testing.T, source string) ast.Value {
	t.Helper()
	doc, qe := parser.Parse(source)
	require.Nil(t, qe)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	return op.SelectionSet.Selections[0].(*ast.Field).Arguments[0].Value
}

func TestLiteral(t *testing.T) {
	lit := argumentValue(t, `{ f(a: {x: 1, y: 2}) }`)
	v, ok := Literal(lit, pointInput, nil)
	require.True(t, ok)
	require.Equal(t, map[string]interface{}{"x": int32(1), "y": int32(2), "label": "origin"}, v)

	// explicit null is a value; it is not "undefined"
	lit = argumentValue(t, `{ f(a: null) }`)
	v, ok = Literal(lit, types.Int, nil)
	require.True(t, ok)
	require.Nil(t, v)

	lit = argumentValue(t, `{ f(a: null) }`)
	_, ok = Literal(lit, types.NewNonNull(types.Int), nil)
	require.False(t, ok)

	// a single literal coerces to a list of one
	lit = argumentValue(t, `{ f(a: 4) }`)
	v, ok = Literal(lit, types.NewList(types.Int), nil)
	require.True(t, ok)
	require.Equal(t, []interface{}{int32(4)}, v)

	lit = argumentValue(t, `{ f(a: GREEN) }`)
	v, ok = Literal(lit, colorEnum, nil)
	require.True(t, ok)
	require.Equal(t, 1, v)

	// enum names must be enum literals, not strings
	lit = argumentValue(t, `{ f(a: "GREEN") }`)
	_, ok = Literal(lit, colorEnum, nil)
	require.False(t, ok)
}

func TestLiteralVariables(t *testing.T) {
	lit := argumentValue(t, `{ f(a: $v) }`)

	v, ok := Literal(lit, types.Int, map[string]interface{}{"v": int32(7)})
	require.True(t, ok)
	require.Equal(t, int32(7), v)

	// a dangling variable leaves the value undefined
	_, ok = Literal(lit, types.Int, map[string]interface{}{})
	require.False(t, ok)

	// inside a nullable list item it becomes null instead
	lit = argumentValue(t, `{ f(a: [1, $v]) }`)
	v, ok = Literal(lit, types.NewList(types.Int), map[string]interface{}{})
	require.True(t, ok)
	require.Equal(t, []interface{}{int32(1), nil}, v)
}

func variableDefs(t *testing.T, source string) *ast.OperationDefinition {
	t.Helper()
	doc, qe := parser.Parse(source)
	require.Nil(t, qe)
	return doc.Definitions[0].(*ast.OperationDefinition)
}

func testSchema(t *testing.T) *types.Schema {
	t.Helper()
	query := types.NewObject(types.ObjectConfig{
		Name: "Query",
		Fields: []*types.FieldDefinition{
			{Name: "f", Type: types.Int},
		},
	})
	s, err := types.NewSchema(types.SchemaConfig{Query: query, Types: []types.NamedType{pointInput, colorEnum}})
	require.NoError(t, err)
	return s
}

func TestVariableValues(t *testing.T) {
	s := testSchema(t)

	op := variableDefs(t, `query Q($a: Int!, $b: String = "hi") { f }`)

	vars, errs := VariableValues(s, op, map[string]interface{}{"a": 1})
	require.Empty(t, errs)
	require.Equal(t, int32(1), vars["a"])
	require.Equal(t, "hi", vars["b"])

	_, errs = VariableValues(s, op, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Variable "$a" of required type "Int!" was not provided.`, errs[0].Message)

	_, errs = VariableValues(s, op, map[string]interface{}{"a": nil})
	require.Len(t, errs, 1)
	require.Equal(t, `Variable "$a" of non-null type "Int!" must not be null.`, errs[0].Message)
}

func TestVariableValuesInvalidValue(t *testing.T) {
	s := testSchema(t)
	op := variableDefs(t, `query Q($p: Point) { f }`)

	_, errs := VariableValues(s, op, map[string]interface{}{"p": map[string]interface{}{"x": 1}})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, `Variable "$p" got invalid value`)
	require.Contains(t, errs[0].Message, `Field "y" of required type "Int!" was not provided.`)
}

func TestArgumentValues(t *testing.T) {
	argDefs := []*types.Argument{
		{Name: "x", Type: types.NewNonNull(types.Int)},
		{Name: "limit", Type: types.Int, DefaultValue: 10, HasDefault: true},
	}

	op := variableDefs(t, `{ f(x: 3) }`)
	field := op.SelectionSet.Selections[0].(*ast.Field)

	args, errs := ArgumentValues(argDefs, field.Arguments, nil)
	require.Empty(t, errs)
	require.Equal(t, map[string]interface{}{"x": int32(3), "limit": 10}, args)

	op = variableDefs(t, `{ f }`)
	field = op.SelectionSet.Selections[0].(*ast.Field)
	_, errs = ArgumentValues(argDefs, field.Arguments, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Argument "x" of required type "Int!" was not provided.`, errs[0].Message)

	op = variableDefs(t, `{ f(x: "bad") }`)
	field = op.SelectionSet.Selections[0].(*ast.Field)
	_, errs = ArgumentValues(argDefs, field.Arguments, nil)
	require.Len(t, errs, 1)
	require.Equal(t, `Argument "x" has invalid value "bad".`, errs[0].Message)
}
