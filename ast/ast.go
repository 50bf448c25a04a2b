// Package ast declares the nodes of a parsed GraphQL query document.
//
// Nodes carry a kind tag and the source location of the token that started
// them. Documents are treated as immutable after parsing; transformations go
// through Clone or through a visitor returning replacements.
package ast

import (
	"github.com/ScyllaDigital/graphql-go/errors"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Location() errors.Location
}

// Definition is a top-level entry of a document.
type Definition interface {
	Node
	definition()
}

// Selection is an entry of a selection set: a field, a fragment spread or an
// inline fragment.
type Selection interface {
	Node
	selection()
}

// Value is a literal input value, including variables.
type Value interface {
	Node
	// String renders the value the way it would appear in a query.
	String() string
	value()
}

// Type is a type reference: a named type, possibly wrapped in list and
// non-null markers.
type Type interface {
	Node
	String() string
	typeRef()
}

// Ident is a name together with the location it was written at.
type Ident struct {
	Name string
	Loc  errors.Location
}

type Document struct {
	Definitions []Definition
	Loc         errors.Location
}

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type OperationDefinition struct {
	Operation OperationType
	// Name is the zero Ident for an anonymous operation.
	Name                Ident
	VariableDefinitions []*VariableDefinition
	Directives          DirectiveList
	SelectionSet        *SelectionSet
	Loc                 errors.Location
}

type VariableDefinition struct {
	Variable Ident
	Type     Type
	// DefaultValue is nil when no default was written.
	DefaultValue Value
	Directives   DirectiveList
	Loc          errors.Location
}

type SelectionSet struct {
	Selections []Selection
	Loc        errors.Location
}

type Field struct {
	// Alias equals Name when no alias was written.
	Alias        Ident
	Name         Ident
	Arguments    ArgumentList
	Directives   DirectiveList
	SelectionSet *SelectionSet
	Loc          errors.Location
}

// ResponseKey is the key the field's value appears under in the response.
func (f *Field) ResponseKey() string {
	if f.Alias.Name != "" {
		return f.Alias.Name
	}
	return f.Name.Name
}

type Argument struct {
	Name  Ident
	Value Value
	Loc   errors.Location
}

type ArgumentList []*Argument

func (l ArgumentList) Get(name string) (*Argument, bool) {
	for _, arg := range l {
		if arg.Name.Name == name {
			return arg, true
		}
	}
	return nil, false
}

type Directive struct {
	Name      Ident
	Arguments ArgumentList
	Loc       errors.Location
}

type DirectiveList []*Directive

func (l DirectiveList) Get(name string) (*Directive, bool) {
	for _, d := range l {
		if d.Name.Name == name {
			return d, true
		}
	}
	return nil, false
}

type FragmentSpread struct {
	Name       Ident
	Directives DirectiveList
	Loc        errors.Location
}

type InlineFragment struct {
	// TypeCondition is nil when the fragment has no "on Type" clause.
	TypeCondition *Named
	Directives    DirectiveList
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

type FragmentDefinition struct {
	Name          Ident
	TypeCondition *Named
	Directives    DirectiveList
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

// SchemaDefinition is a "schema { ... }" block. Query documents may not
// contain one; it exists so such documents can be represented and rejected by
// validation.
type SchemaDefinition struct {
	Loc errors.Location
}

// TypeDefinition is any type-system definition appearing where executable
// definitions are expected. Only the name is kept; validation rejects the
// whole definition.
type TypeDefinition struct {
	Keyword string
	Name    Ident
	Loc     errors.Location
}

type Named struct {
	Name Ident
	Loc  errors.Location
}

type ListType struct {
	OfType Type
	Loc    errors.Location
}

type NonNullType struct {
	OfType Type
	Loc    errors.Location
}

type Variable struct {
	Name Ident
	Loc  errors.Location
}

type IntValue struct {
	Value string
	Loc   errors.Location
}

type FloatValue struct {
	Value string
	Loc   errors.Location
}

type StringValue struct {
	Value string
	Block bool
	Loc   errors.Location
}

type BooleanValue struct {
	Value bool
	Loc   errors.Location
}

type NullValue struct {
	Loc errors.Location
}

type EnumValue struct {
	Value string
	Loc   errors.Location
}

type ListValue struct {
	Values []Value
	Loc    errors.Location
}

type ObjectValue struct {
	Fields []*ObjectField
	Loc    errors.Location
}

type ObjectField struct {
	Name  Ident
	Value Value
	Loc   errors.Location
}

func (n *Document) Location() errors.Location            { return n.Loc }
func (n *OperationDefinition) Location() errors.Location { return n.Loc }
func (n *VariableDefinition) Location() errors.Location  { return n.Loc }
func (n *SelectionSet) Location() errors.Location        { return n.Loc }
func (n *Field) Location() errors.Location               { return n.Loc }
func (n *Argument) Location() errors.Location            { return n.Loc }
func (n *Directive) Location() errors.Location           { return n.Loc }
func (n *FragmentSpread) Location() errors.Location      { return n.Loc }
func (n *InlineFragment) Location() errors.Location      { return n.Loc }
func (n *FragmentDefinition) Location() errors.Location  { return n.Loc }
func (n *SchemaDefinition) Location() errors.Location    { return n.Loc }
func (n *TypeDefinition) Location() errors.Location      { return n.Loc }
func (n *Named) Location() errors.Location               { return n.Loc }
func (n *ListType) Location() errors.Location            { return n.Loc }
func (n *NonNullType) Location() errors.Location         { return n.Loc }
func (n *Variable) Location() errors.Location            { return n.Loc }
func (n *IntValue) Location() errors.Location            { return n.Loc }
func (n *FloatValue) Location() errors.Location          { return n.Loc }
func (n *StringValue) Location() errors.Location         { return n.Loc }
func (n *BooleanValue) Location() errors.Location        { return n.Loc }
func (n *NullValue) Location() errors.Location           { return n.Loc }
func (n *EnumValue) Location() errors.Location           { return n.Loc }
func (n *ListValue) Location() errors.Location           { return n.Loc }
func (n *ObjectValue) Location() errors.Location         { return n.Loc }
func (n *ObjectField) Location() errors.Location         { return n.Loc }

func (*OperationDefinition) definition() {}
func (*FragmentDefinition) definition()  {}
func (*SchemaDefinition) definition()    {}
func (*TypeDefinition) definition()      {}

func (*Field) selection()          {}
func (*FragmentSpread) selection() {}
func (*InlineFragment) selection() {}

func (*Variable) value()     {}
func (*IntValue) value()     {}
func (*FloatValue) value()   {}
func (*StringValue) value()  {}
func (*BooleanValue) value() {}
func (*NullValue) value()    {}
func (*EnumValue) value()    {}
func (*ListValue) value()    {}
func (*ObjectValue) value()  {}

func (*Named) typeRef()       {}
func (*ListType) typeRef()    {}
func (*NonNullType) typeRef() {}

func (t *Named) String() string       { return t.Name.Name }
func (t *ListType) String() string    { return "[" + t.OfType.String() + "]" }
func (t *NonNullType) String() string { return t.OfType.String() + "!" }
