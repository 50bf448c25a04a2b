package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/types"
)

// TypeInfo tracks the schema position of the walker: the output type, parent
// composite type, input type, field definition, directive and argument the
// current node sits at. Unknown names push nil so the stacks stay balanced
// and rules can degrade gracefully.
type TypeInfo struct {
	schema *types.Schema

	typeStack       []types.Output
	parentTypeStack []types.Composite
	inputTypeStack  []types.Input
	defaultStack    []bool
	fieldDefStack   []*types.FieldDefinition

	directive *types.Directive
	argument  *types.Argument
	enumValue *types.EnumValueDefinition
}

func newTypeInfo(s *types.Schema) *TypeInfo {
	return &TypeInfo{schema: s}
}

func (ti *TypeInfo) Type() types.Output {
	if len(ti.typeStack) == 0 {
		return nil
	}
	return ti.typeStack[len(ti.typeStack)-1]
}

func (ti *TypeInfo) ParentType() types.Composite {
	if len(ti.parentTypeStack) == 0 {
		return nil
	}
	return ti.parentTypeStack[len(ti.parentTypeStack)-1]
}

func (ti *TypeInfo) InputType() types.Input {
	if len(ti.inputTypeStack) == 0 {
		return nil
	}
	return ti.inputTypeStack[len(ti.inputTypeStack)-1]
}

func (ti *TypeInfo) HasLocationDefault() bool {
	if len(ti.defaultStack) == 0 {
		return false
	}
	return ti.defaultStack[len(ti.defaultStack)-1]
}

func (ti *TypeInfo) FieldDef() *types.FieldDefinition {
	if len(ti.fieldDefStack) == 0 {
		return nil
	}
	return ti.fieldDefStack[len(ti.fieldDefStack)-1]
}

func (ti *TypeInfo) CurrentDirective() *types.Directive    { return ti.directive }
func (ti *TypeInfo) CurrentArgument() *types.Argument      { return ti.argument }
func (ti *TypeInfo) EnumValue() *types.EnumValueDefinition { return ti.enumValue }

func (ti *TypeInfo) enter(node ast.Node) {
	switch n := node.(type) {
	case *ast.SelectionSet:
		named := types.Named(ti.Type())
		composite, _ := named.(types.Composite)
		ti.parentTypeStack = append(ti.parentTypeStack, composite)

	case *ast.Field:
		var fd *types.FieldDefinition
		if parent := ti.ParentType(); parent != nil {
			fd = FieldDef(ti.schema, parent, n.Name.Name)
		}
		ti.fieldDefStack = append(ti.fieldDefStack, fd)
		if fd != nil {
			ti.typeStack = append(ti.typeStack, fd.Type)
		} else {
			ti.typeStack = append(ti.typeStack, nil)
		}

	case *ast.Directive:
		d, _ := ti.schema.Directive(n.Name.Name)
		ti.directive = d

	case *ast.OperationDefinition:
		var root types.Output
		switch n.Operation {
		case ast.Query:
			root = ti.schema.QueryType()
		case ast.Mutation:
			root = ti.schema.MutationType()
		case ast.Subscription:
			root = ti.schema.SubscriptionType()
		}
		if obj, ok := root.(*types.Object); !ok || obj == nil {
			root = nil
		}
		ti.typeStack = append(ti.typeStack, root)

	case *ast.InlineFragment:
		var t types.Output
		if n.TypeCondition != nil {
			t, _ = ti.schema.GetType(n.TypeCondition.Name.Name).(types.Output)
		} else {
			t = ti.Type()
		}
		ti.typeStack = append(ti.typeStack, t)

	case *ast.FragmentDefinition:
		var t types.Output
		if n.TypeCondition != nil {
			t, _ = ti.schema.GetType(n.TypeCondition.Name.Name).(types.Output)
		}
		ti.typeStack = append(ti.typeStack, t)

	case *ast.VariableDefinition:
		input, _ := types.TypeFromAST(ti.schema, n.Type).(types.Input)
		ti.inputTypeStack = append(ti.inputTypeStack, input)
		ti.defaultStack = append(ti.defaultStack, n.DefaultValue != nil)

	case *ast.Argument:
		var arg *types.Argument
		if ti.directive != nil {
			arg, _ = ti.directive.Argument(n.Name.Name)
		} else if fd := ti.FieldDef(); fd != nil {
			arg, _ = fd.Argument(n.Name.Name)
		}
		ti.argument = arg
		if arg != nil {
			ti.inputTypeStack = append(ti.inputTypeStack, arg.Type)
			ti.defaultStack = append(ti.defaultStack, arg.HasDefault)
		} else {
			ti.inputTypeStack = append(ti.inputTypeStack, nil)
			ti.defaultStack = append(ti.defaultStack, false)
		}

	case *ast.ListValue:
		var item types.Input
		if list, ok := types.Nullable(ti.InputType()).(*types.List); ok {
			item, _ = list.OfType.(types.Input)
		}
		ti.inputTypeStack = append(ti.inputTypeStack, item)
		ti.defaultStack = append(ti.defaultStack, false)

	case *ast.ObjectField:
		var fieldType types.Input
		hasDefault := false
		if obj, ok := types.Named(ti.InputType()).(*types.InputObject); ok {
			if f, found := obj.Field(n.Name.Name); found {
				fieldType = f.Type
				hasDefault = f.HasDefault
			}
		}
		ti.inputTypeStack = append(ti.inputTypeStack, fieldType)
		ti.defaultStack = append(ti.defaultStack, hasDefault)

	case *ast.EnumValue:
		if enum, ok := types.Named(ti.InputType()).(*types.Enum); ok {
			ti.enumValue, _ = enum.Value(n.Value)
		}
	}
}

func (ti *TypeInfo) leave(node ast.Node) {
	switch node.(type) {
	case *ast.SelectionSet:
		ti.parentTypeStack = ti.parentTypeStack[:len(ti.parentTypeStack)-1]
	case *ast.Field:
		ti.fieldDefStack = ti.fieldDefStack[:len(ti.fieldDefStack)-1]
		ti.typeStack = ti.typeStack[:len(ti.typeStack)-1]
	case *ast.Directive:
		ti.directive = nil
	case *ast.OperationDefinition, *ast.InlineFragment, *ast.FragmentDefinition:
		ti.typeStack = ti.typeStack[:len(ti.typeStack)-1]
	case *ast.VariableDefinition, *ast.ListValue, *ast.ObjectField:
		ti.inputTypeStack = ti.inputTypeStack[:len(ti.inputTypeStack)-1]
		ti.defaultStack = ti.defaultStack[:len(ti.defaultStack)-1]
	case *ast.Argument:
		ti.argument = nil
		ti.inputTypeStack = ti.inputTypeStack[:len(ti.inputTypeStack)-1]
		ti.defaultStack = ti.defaultStack[:len(ti.defaultStack)-1]
	case *ast.EnumValue:
		ti.enumValue = nil
	}
}

// FieldDef resolves a field name against a composite parent, including the
// implicit meta fields: __schema and __type at the query root and __typename
// on every composite type.
func FieldDef(s *types.Schema, parent types.Composite, name string) *types.FieldDefinition {
	switch name {
	case "__schema":
		if parent == types.Composite(s.QueryType()) {
			return types.SchemaMetaFieldDef
		}
	case "__type":
		if parent == types.Composite(s.QueryType()) {
			return types.TypeMetaFieldDef
		}
	case "__typename":
		return types.TypeNameMetaFieldDef
	}
	switch parent := parent.(type) {
	case *types.Object:
		if f, ok := parent.Field(name); ok {
			return f
		}
	case *types.Interface:
		if f, ok := parent.Field(name); ok {
			return f
		}
	}
	return nil
}
