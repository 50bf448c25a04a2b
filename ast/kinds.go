package ast

// Kind tags a node with its syntactic category. The set is closed; consumers
// may switch exhaustively over it.
type Kind string

const (
	KindDocument            Kind = "Document"
	KindOperationDefinition Kind = "OperationDefinition"
	KindVariableDefinition  Kind = "VariableDefinition"
	KindSelectionSet        Kind = "SelectionSet"
	KindField               Kind = "Field"
	KindArgument            Kind = "Argument"
	KindDirective           Kind = "Directive"
	KindFragmentSpread      Kind = "FragmentSpread"
	KindInlineFragment      Kind = "InlineFragment"
	KindFragmentDefinition  Kind = "FragmentDefinition"
	KindSchemaDefinition    Kind = "SchemaDefinition"
	KindTypeDefinition      Kind = "TypeDefinition"
	KindNamed               Kind = "NamedType"
	KindListType            Kind = "ListType"
	KindNonNullType         Kind = "NonNullType"
	KindVariable            Kind = "Variable"
	KindIntValue            Kind = "IntValue"
	KindFloatValue          Kind = "FloatValue"
	KindStringValue         Kind = "StringValue"
	KindBooleanValue        Kind = "BooleanValue"
	KindNullValue           Kind = "NullValue"
	KindEnumValue           Kind = "EnumValue"
	KindListValue           Kind = "ListValue"
	KindObjectValue         Kind = "ObjectValue"
	KindObjectField         Kind = "ObjectField"
)

func (n *Document) Kind() Kind            { return KindDocument }
func (n *OperationDefinition) Kind() Kind { return KindOperationDefinition }
func (n *VariableDefinition) Kind() Kind  { return KindVariableDefinition }
func (n *SelectionSet) Kind() Kind        { return KindSelectionSet }
func (n *Field) Kind() Kind               { return KindField }
func (n *Argument) Kind() Kind            { return KindArgument }
func (n *Directive) Kind() Kind           { return KindDirective }
func (n *FragmentSpread) Kind() Kind      { return KindFragmentSpread }
func (n *InlineFragment) Kind() Kind      { return KindInlineFragment }
func (n *FragmentDefinition) Kind() Kind  { return KindFragmentDefinition }
func (n *SchemaDefinition) Kind() Kind    { return KindSchemaDefinition }
func (n *TypeDefinition) Kind() Kind      { return KindTypeDefinition }
func (n *Named) Kind() Kind               { return KindNamed }
func (n *ListType) Kind() Kind            { return KindListType }
func (n *NonNullType) Kind() Kind         { return KindNonNullType }
func (n *Variable) Kind() Kind            { return KindVariable }
func (n *IntValue) Kind() Kind            { return KindIntValue }
func (n *FloatValue) Kind() Kind          { return KindFloatValue }
func (n *StringValue) Kind() Kind         { return KindStringValue }
func (n *BooleanValue) Kind() Kind        { return KindBooleanValue }
func (n *NullValue) Kind() Kind           { return KindNullValue }
func (n *EnumValue) Kind() Kind           { return KindEnumValue }
func (n *ListValue) Kind() Kind           { return KindListValue }
func (n *ObjectValue) Kind() Kind         { return KindObjectValue }
func (n *ObjectField) Kind() Kind         { return KindObjectField }
