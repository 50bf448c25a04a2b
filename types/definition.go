// Package types is the runtime type system: the definitions a schema is built
// from and the resolver contract executed against them.
package types

import (
	"fmt"
	"reflect"
	"sync"
)

// Type is any GraphQL type, named or wrapping.
type Type interface {
	String() string
}

// Input is a type usable in input positions: arguments, variables and input
// object fields.
type Input interface {
	Type
	inputType()
}

// Output is a type usable in output positions: field return types.
type Output interface {
	Type
	outputType()
}

// NamedType is one of the six declarable types.
type NamedType interface {
	Type
	TypeName() string
	Description() string
}

// Composite types have selectable fields: objects, interfaces and unions.
type Composite interface {
	NamedType
	Output
	compositeType()
}

// Abstract types resolve to an object type at runtime.
type Abstract interface {
	Composite
	abstractType()
}

// Leaf types produce response values directly.
type Leaf interface {
	NamedType
	leafType()
}

// Scalar

type ScalarConfig struct {
	Name        string
	Description string
	// Serialize converts an internal value to its response form.
	Serialize func(value interface{}) (interface{}, error)
	// ParseValue coerces a variable (host) value.
	ParseValue func(value interface{}) (interface{}, error)
	// ParseLiteral coerces an AST literal. The argument is an ast.Value.
	ParseLiteral func(value interface{}) (interface{}, error)
}

type Scalar struct {
	name         string
	desc         string
	serialize    func(value interface{}) (interface{}, error)
	parseValue   func(value interface{}) (interface{}, error)
	parseLiteral func(value interface{}) (interface{}, error)
}

func NewScalar(cfg ScalarConfig) *Scalar {
	if cfg.Name == "" {
		panic("graphql: scalar must be named")
	}
	return &Scalar{
		name:         cfg.Name,
		desc:         cfg.Description,
		serialize:    cfg.Serialize,
		parseValue:   cfg.ParseValue,
		parseLiteral: cfg.ParseLiteral,
	}
}

func (t *Scalar) String() string      { return t.name }
func (t *Scalar) TypeName() string    { return t.name }
func (t *Scalar) Description() string { return t.desc }

func (t *Scalar) Serialize(value interface{}) (interface{}, error) {
	if t.serialize == nil {
		return value, nil
	}
	return t.serialize(value)
}

func (t *Scalar) ParseValue(value interface{}) (interface{}, error) {
	if t.parseValue == nil {
		return value, nil
	}
	return t.parseValue(value)
}

// ParseLiteral coerces an AST literal; lit is an ast.Value.
func (t *Scalar) ParseLiteral(lit interface{}) (interface{}, error) {
	if t.parseLiteral == nil {
		return nil, fmt.Errorf("scalar %q cannot parse literals", t.name)
	}
	return t.parseLiteral(lit)
}

// HasLiteralParser reports whether a ParseLiteral function was configured.
func (t *Scalar) HasLiteralParser() bool { return t.parseLiteral != nil }

// Enum

type EnumValueDefinition struct {
	Name string
	// Value is the internal payload; defaults to Name.
	Value             interface{}
	Description       string
	DeprecationReason string
}

type EnumConfig struct {
	Name        string
	Description string
	Values      []*EnumValueDefinition
}

type Enum struct {
	name   string
	desc   string
	values []*EnumValueDefinition
	byName map[string]*EnumValueDefinition
}

func NewEnum(cfg EnumConfig) *Enum {
	e := &Enum{
		name:   cfg.Name,
		desc:   cfg.Description,
		values: cfg.Values,
		byName: make(map[string]*EnumValueDefinition, len(cfg.Values)),
	}
	for _, v := range e.values {
		if v.Value == nil {
			v.Value = v.Name
		}
		e.byName[v.Name] = v
	}
	return e
}

func (t *Enum) String() string      { return t.name }
func (t *Enum) TypeName() string    { return t.name }
func (t *Enum) Description() string { return t.desc }

func (t *Enum) Values() []*EnumValueDefinition { return t.values }

func (t *Enum) Value(name string) (*EnumValueDefinition, bool) {
	v, ok := t.byName[name]
	return v, ok
}

// Serialize maps an internal payload back to its enum value name.
func (t *Enum) Serialize(value interface{}) (string, error) {
	for _, v := range t.values {
		if v.Value == value || reflect.DeepEqual(v.Value, value) {
			return v.Name, nil
		}
	}
	return "", fmt.Errorf("enum %q cannot represent value: %v", t.name, value)
}

// Object

type ObjectConfig struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
	// FieldsFn defers field construction, allowing type cycles.
	FieldsFn     func() []*FieldDefinition
	Interfaces   []*Interface
	InterfacesFn func() []*Interface
	IsTypeOf     IsTypeOfFn
}

type Object struct {
	name     string
	desc     string
	isTypeOf IsTypeOfFn

	fieldsFn     func() []*FieldDefinition
	interfacesFn func() []*Interface

	once       sync.Once
	fields     []*FieldDefinition
	fieldIndex map[string]*FieldDefinition
	interfaces []*Interface
}

func NewObject(cfg ObjectConfig) *Object {
	o := &Object{
		name:         cfg.Name,
		desc:         cfg.Description,
		isTypeOf:     cfg.IsTypeOf,
		fieldsFn:     cfg.FieldsFn,
		interfacesFn: cfg.InterfacesFn,
	}
	if o.fieldsFn == nil {
		fields := cfg.Fields
		o.fieldsFn = func() []*FieldDefinition { return fields }
	}
	if o.interfacesFn == nil {
		interfaces := cfg.Interfaces
		o.interfacesFn = func() []*Interface { return interfaces }
	}
	return o
}

func (t *Object) String() string       { return t.name }
func (t *Object) TypeName() string     { return t.name }
func (t *Object) Description() string  { return t.desc }
func (t *Object) IsTypeOf() IsTypeOfFn { return t.isTypeOf }

func (t *Object) resolveFields() {
	t.once.Do(func() {
		t.fields = t.fieldsFn()
		t.interfaces = t.interfacesFn()
		t.fieldIndex = make(map[string]*FieldDefinition, len(t.fields))
		for _, f := range t.fields {
			t.fieldIndex[f.Name] = f
		}
	})
}

// Fields returns the declared fields in declaration order.
func (t *Object) Fields() []*FieldDefinition {
	t.resolveFields()
	return t.fields
}

func (t *Object) Field(name string) (*FieldDefinition, bool) {
	t.resolveFields()
	f, ok := t.fieldIndex[name]
	return f, ok
}

func (t *Object) Interfaces() []*Interface {
	t.resolveFields()
	return t.interfaces
}

func (t *Object) Implements(iface *Interface) bool {
	for _, i := range t.Interfaces() {
		if i == iface {
			return true
		}
	}
	return false
}

// Interface

type InterfaceConfig struct {
	Name        string
	Description string
	Fields      []*FieldDefinition
	FieldsFn    func() []*FieldDefinition
	Interfaces  []*Interface
	ResolveType ResolveTypeFn
}

type Interface struct {
	name        string
	desc        string
	resolveType ResolveTypeFn
	interfaces  []*Interface

	fieldsFn func() []*FieldDefinition

	once       sync.Once
	fields     []*FieldDefinition
	fieldIndex map[string]*FieldDefinition
}

func NewInterface(cfg InterfaceConfig) *Interface {
	i := &Interface{
		name:        cfg.Name,
		desc:        cfg.Description,
		resolveType: cfg.ResolveType,
		interfaces:  cfg.Interfaces,
		fieldsFn:    cfg.FieldsFn,
	}
	if i.fieldsFn == nil {
		fields := cfg.Fields
		i.fieldsFn = func() []*FieldDefinition { return fields }
	}
	return i
}

func (t *Interface) String() string      { return t.name }
func (t *Interface) TypeName() string    { return t.name }
func (t *Interface) Description() string { return t.desc }
func (t *Interface) ResolveType() ResolveTypeFn { return t.resolveType }
func (t *Interface) Interfaces() []*Interface   { return t.interfaces }

func (t *Interface) resolveFields() {
	t.once.Do(func() {
		t.fields = t.fieldsFn()
		t.fieldIndex = make(map[string]*FieldDefinition, len(t.fields))
		for _, f := range t.fields {
			t.fieldIndex[f.Name] = f
		}
	})
}

func (t *Interface) Fields() []*FieldDefinition {
	t.resolveFields()
	return t.fields
}

func (t *Interface) Field(name string) (*FieldDefinition, bool) {
	t.resolveFields()
	f, ok := t.fieldIndex[name]
	return f, ok
}

// Union

type UnionConfig struct {
	Name        string
	Description string
	Types       []*Object
	TypesFn     func() []*Object
	ResolveType ResolveTypeFn
}

type Union struct {
	name        string
	desc        string
	resolveType ResolveTypeFn

	typesFn func() []*Object

	once  sync.Once
	types []*Object
}

func NewUnion(cfg UnionConfig) *Union {
	u := &Union{
		name:        cfg.Name,
		desc:        cfg.Description,
		resolveType: cfg.ResolveType,
		typesFn:     cfg.TypesFn,
	}
	if u.typesFn == nil {
		members := cfg.Types
		u.typesFn = func() []*Object { return members }
	}
	return u
}

func (t *Union) String() string      { return t.name }
func (t *Union) TypeName() string    { return t.name }
func (t *Union) Description() string { return t.desc }
func (t *Union) ResolveType() ResolveTypeFn { return t.resolveType }

func (t *Union) Types() []*Object {
	t.once.Do(func() { t.types = t.typesFn() })
	return t.types
}

// InputObject

type InputField struct {
	Name         string
	Type         Input
	DefaultValue interface{}
	HasDefault   bool
	Description  string
}

type InputObjectConfig struct {
	Name        string
	Description string
	Fields      []*InputField
	FieldsFn    func() []*InputField
}

type InputObject struct {
	name string
	desc string

	fieldsFn func() []*InputField

	once       sync.Once
	fields     []*InputField
	fieldIndex map[string]*InputField
}

func NewInputObject(cfg InputObjectConfig) *InputObject {
	io := &InputObject{
		name:     cfg.Name,
		desc:     cfg.Description,
		fieldsFn: cfg.FieldsFn,
	}
	if io.fieldsFn == nil {
		fields := cfg.Fields
		io.fieldsFn = func() []*InputField { return fields }
	}
	return io
}

func (t *InputObject) String() string      { return t.name }
func (t *InputObject) TypeName() string    { return t.name }
func (t *InputObject) Description() string { return t.desc }

func (t *InputObject) resolveFields() {
	t.once.Do(func() {
		t.fields = t.fieldsFn()
		t.fieldIndex = make(map[string]*InputField, len(t.fields))
		for _, f := range t.fields {
			t.fieldIndex[f.Name] = f
		}
	})
}

func (t *InputObject) Fields() []*InputField {
	t.resolveFields()
	return t.fields
}

func (t *InputObject) Field(name string) (*InputField, bool) {
	t.resolveFields()
	f, ok := t.fieldIndex[name]
	return f, ok
}

// Wrapping types

type List struct {
	OfType Type
}

func NewList(of Type) *List { return &List{OfType: of} }

func (t *List) String() string { return "[" + t.OfType.String() + "]" }

type NonNull struct {
	OfType Type
}

func NewNonNull(of Type) *NonNull { return &NonNull{OfType: of} }

func (t *NonNull) String() string { return t.OfType.String() + "!" }

// FieldDefinition describes one output field.
type FieldDefinition struct {
	Name    string
	Type    Output
	Args    []*Argument
	Resolve FieldResolveFn
	// Complexity overrides the default cost of 1 + child complexity.
	Complexity        ComplexityFn
	Description       string
	DeprecationReason string
	// Metadata is opaque to the engine; hosts use it to attach resolver hints.
	Metadata map[string]interface{}
}

func (f *FieldDefinition) Argument(name string) (*Argument, bool) {
	for _, arg := range f.Args {
		if arg.Name == name {
			return arg, true
		}
	}
	return nil, false
}

// Argument describes one field or directive argument.
type Argument struct {
	Name string
	Type Input
	// DefaultValue is either an already-coerced Go value or an ast.Value
	// literal. HasDefault distinguishes "default null" from "no default".
	DefaultValue interface{}
	HasDefault   bool
	Description  string
}

func (*Scalar) inputType()      {}
func (*Enum) inputType()        {}
func (*InputObject) inputType() {}
func (*List) inputType()        {}
func (*NonNull) inputType()     {}

func (*Scalar) outputType()    {}
func (*Enum) outputType()      {}
func (*Object) outputType()    {}
func (*Interface) outputType() {}
func (*Union) outputType()     {}
func (*List) outputType()      {}
func (*NonNull) outputType()   {}

func (*Object) compositeType()    {}
func (*Interface) compositeType() {}
func (*Union) compositeType()     {}

func (*Interface) abstractType() {}
func (*Union) abstractType()     {}

func (*Scalar) leafType() {}
func (*Enum) leafType()   {}
