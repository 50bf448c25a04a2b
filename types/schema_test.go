package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleQuery(fields ...*FieldDefinition) *Object {
	if fields == nil {
		fields = []*FieldDefinition{{Name: "ok", Type: Boolean}}
	}
	return NewObject(ObjectConfig{Name: "Query", Fields: fields})
}

func TestSchemaTypeMap(t *testing.T) {
	pet := NewInterface(InterfaceConfig{
		Name:   "Pet",
		Fields: []*FieldDefinition{{Name: "name", Type: NewNonNull(String)}},
	})
	dog := NewObject(ObjectConfig{
		Name:       "Dog",
		Fields:     []*FieldDefinition{{Name: "name", Type: NewNonNull(String)}, {Name: "barks", Type: Boolean}},
		Interfaces: []*Interface{pet},
	})
	cat := NewObject(ObjectConfig{
		Name:       "Cat",
		Fields:     []*FieldDefinition{{Name: "name", Type: NewNonNull(String)}},
		Interfaces: []*Interface{pet},
	})

	s, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "pet", Type: pet}),
		Types: []NamedType{dog, cat},
	})
	require.NoError(t, err)

	require.Equal(t, dog, s.GetType("Dog"))
	require.Nil(t, s.GetType("Missing"))

	// standard scalars and introspection types are always present, reachable
	// from the roots or not
	require.Equal(t, String, s.GetType("String"))
	require.Equal(t, Int, s.GetType("Int"))
	require.Equal(t, Float, s.GetType("Float"))
	require.Equal(t, ID, s.GetType("ID"))
	require.Equal(t, Boolean, s.GetType("Boolean"))
	require.NotNil(t, s.GetType("__Schema"))
	require.NotNil(t, s.GetType("__Type"))

	require.ElementsMatch(t, []*Object{dog, cat}, s.PossibleTypes(pet))
	require.True(t, s.IsPossibleType(pet, dog))

	names := s.TypeNames()
	require.Contains(t, names, "Pet")
	require.IsIncreasing(t, names)
}

func TestIntrospectionMetaTypes(t *testing.T) {
	require.Equal(t, "__TypeKind", TypeKindMetaType.TypeName())
	require.Equal(t, "__DirectiveLocation", DirectiveLocationMetaType.TypeName())

	// The ENUM directive location is a value of the meta enum, distinct from
	// the meta enum itself.
	_, ok := DirectiveLocationMetaType.Value(DirectiveLocationEnum)
	require.True(t, ok)
}

func TestSchemaRequiresQueryRoot(t *testing.T) {
	_, err := NewSchema(SchemaConfig{})
	require.ErrorContains(t, err, "Query root type must be provided.")
}

func TestSchemaRejectsDuplicateTypeNames(t *testing.T) {
	a := NewObject(ObjectConfig{Name: "Thing", Fields: []*FieldDefinition{{Name: "x", Type: Int}}})
	b := NewObject(ObjectConfig{Name: "Thing", Fields: []*FieldDefinition{{Name: "y", Type: Int}}})

	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(
			&FieldDefinition{Name: "a", Type: a},
			&FieldDefinition{Name: "b", Type: b},
		),
	})
	require.ErrorContains(t, err, `Schema must contain uniquely named types but contains multiple types named "Thing".`)
}

func TestSchemaRejectsReservedNames(t *testing.T) {
	bad := NewObject(ObjectConfig{Name: "__Bad", Fields: []*FieldDefinition{{Name: "x", Type: Int}}})

	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "bad", Type: bad}),
	})
	require.ErrorContains(t, err, `Name "__Bad" must not begin with "__"`)
}

func TestSchemaRejectsEmptyObject(t *testing.T) {
	empty := NewObject(ObjectConfig{Name: "Empty"})

	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "empty", Type: empty}),
	})
	require.ErrorContains(t, err, "Type Empty must define one or more fields.")
}

func TestSchemaRejectsNonNullOfNonNull(t *testing.T) {
	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "x", Type: NewNonNull(NewNonNull(Int))}),
	})
	require.ErrorContains(t, err, "to be a nullable type.")
}

func TestSchemaRejectsInputCycle(t *testing.T) {
	var loop *InputObject
	loop = NewInputObject(InputObjectConfig{
		Name: "Loop",
		FieldsFn: func() []*InputField {
			return []*InputField{{Name: "next", Type: NewNonNull(loop)}}
		},
	})

	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{
			Name: "find",
			Type: Boolean,
			Args: []*Argument{{Name: "in", Type: loop}},
		}),
	})
	require.ErrorContains(t, err, `Cannot reference Input Object "Loop" within itself`)
}

func TestSchemaValidatesImplements(t *testing.T) {
	named := NewInterface(InterfaceConfig{
		Name:   "Named",
		Fields: []*FieldDefinition{{Name: "name", Type: NewNonNull(String)}},
	})
	bad := NewObject(ObjectConfig{
		Name:       "Robot",
		Fields:     []*FieldDefinition{{Name: "serial", Type: Int}},
		Interfaces: []*Interface{named},
	})

	_, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "r", Type: bad}),
	})
	require.ErrorContains(t, err, "Interface field Named.name expected but Robot does not provide it.")
}

func TestSchemaTypeLoader(t *testing.T) {
	lazy := NewObject(ObjectConfig{Name: "Lazy", Fields: []*FieldDefinition{{Name: "x", Type: Int}}})
	calls := 0

	s, err := NewSchema(SchemaConfig{
		Query: simpleQuery(),
		TypeLoader: func(name string) NamedType {
			calls++
			if name == "Lazy" {
				return lazy
			}
			return nil
		},
	})
	require.NoError(t, err)

	require.Equal(t, lazy, s.GetType("Lazy"))
	require.Equal(t, lazy, s.GetType("Lazy"))
	require.Nil(t, s.GetType("Nope"))
}

func TestIsSubType(t *testing.T) {
	iface := NewInterface(InterfaceConfig{
		Name:   "Node",
		Fields: []*FieldDefinition{{Name: "id", Type: NewNonNull(ID)}},
	})
	impl := NewObject(ObjectConfig{
		Name:       "User",
		Fields:     []*FieldDefinition{{Name: "id", Type: NewNonNull(ID)}},
		Interfaces: []*Interface{iface},
	})

	s, err := NewSchema(SchemaConfig{
		Query: simpleQuery(&FieldDefinition{Name: "node", Type: iface}),
		Types: []NamedType{impl},
	})
	require.NoError(t, err)

	require.True(t, IsSubType(s, iface, impl))
	require.True(t, IsSubType(s, String, NewNonNull(String)))
	require.False(t, IsSubType(s, NewNonNull(String), String))
	require.True(t, IsSubType(s, NewList(iface), NewList(impl)))
	require.False(t, IsSubType(s, NewList(String), String))
}
