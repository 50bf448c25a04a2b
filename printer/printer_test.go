package printer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScyllaDigital/graphql-go/printer"
	"github.com/ScyllaDigital/graphql-go/types"
)

func TestPrintSchema(t *testing.T) {
	episode := types.NewEnum(types.EnumConfig{
		Name: "Episode",
		Values: []*types.EnumValueDefinition{
			{Name: "NEWHOPE"},
			{Name: "EMPIRE"},
			{Name: "JEDI", DeprecationReason: "No longer supported"},
		},
	})

	character := types.NewInterface(types.InterfaceConfig{
		Name:        "Character",
		Description: "A character in the saga",
		Fields:      []*types.FieldDefinition{{Name: "name", Type: types.NewNonNull(types.String)}},
	})

	droid := types.NewObject(types.ObjectConfig{
		Name: "Droid",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
			{Name: "primaryFunction", Type: types.String, DeprecationReason: "Use name"},
		},
		Interfaces: []*types.Interface{character},
	})

	human := types.NewObject(types.ObjectConfig{
		Name: "Human",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
		},
		Interfaces: []*types.Interface{character},
	})

	search := types.NewUnion(types.UnionConfig{
		Name:  "SearchResult",
		Types: []*types.Object{droid, human},
	})

	review := types.NewInputObject(types.InputObjectConfig{
		Name: "ReviewInput",
		Fields: []*types.InputField{
			{Name: "stars", Type: types.NewNonNull(types.Int)},
			{Name: "commentary", Type: types.String, DefaultValue: "none", HasDefault: true},
		},
	})

	query := types.NewObject(types.ObjectConfig{
		Name: "Query",
		Fields: []*types.FieldDefinition{
			{
				Name: "hero",
				Type: character,
				Args: []*types.Argument{
					{Name: "episode", Type: episode, DefaultValue: "JEDI", HasDefault: true},
				},
			},
			{Name: "search", Type: search},
			{Name: "review", Type: types.Int, Args: []*types.Argument{{Name: "input", Type: review}}},
		},
	})

	s, err := types.NewSchema(types.SchemaConfig{Query: query})
	require.NoError(t, err)

	want := `"""A character in the saga"""
interface Character {
  name: String!
}

type Droid implements Character {
  name: String!
  primaryFunction: String @deprecated(reason: "Use name")
}

enum Episode {
  NEWHOPE
  EMPIRE
  JEDI @deprecated
}

type Human implements Character {
  name: String!
}

type Query {
  hero(episode: Episode = JEDI): Character
  search: SearchResult
  review(input: ReviewInput): Int
}

input ReviewInput {
  stars: Int!
  commentary: String = "none"
}

union SearchResult = Droid | Human
`
	require.Equal(t, want, printer.PrintSchema(s))
}

func TestPrintSchemaUnconventionalRoots(t *testing.T) {
	root := types.NewObject(types.ObjectConfig{
		Name:   "RootQuery",
		Fields: []*types.FieldDefinition{{Name: "ok", Type: types.Boolean}},
	})
	s, err := types.NewSchema(types.SchemaConfig{Query: root})
	require.NoError(t, err)

	want := `schema {
  query: RootQuery
}

type RootQuery {
  ok: Boolean
}
`
	require.Equal(t, want, printer.PrintSchema(s))
}

func TestPrintSchemaCustomDirectiveAndScalar(t *testing.T) {
	timeScalar := types.NewScalar(types.ScalarConfig{Name: "Time", Description: "RFC 3339 timestamp"})
	query := types.NewObject(types.ObjectConfig{
		Name:   "Query",
		Fields: []*types.FieldDefinition{{Name: "now", Type: timeScalar}},
	})

	s, err := types.NewSchema(types.SchemaConfig{
		Query: query,
		Directives: append(append([]*types.Directive(nil), types.SpecifiedDirectives...), &types.Directive{
			Name:      "cacheControl",
			Locations: []string{types.DirectiveLocationFieldDefinition},
			Args:      []*types.Argument{{Name: "maxAge", Type: types.Int}},
		}),
	})
	require.NoError(t, err)

	want := `directive @cacheControl(maxAge: Int) on FIELD_DEFINITION

type Query {
  now: Time
}

"""RFC 3339 timestamp"""
scalar Time
`
	require.Equal(t, want, printer.PrintSchema(s))
}
