package graphql_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	graphql "github.com/ScyllaDigital/graphql-go"
	"github.com/ScyllaDigital/graphql-go/deferred"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/gqltesting"
	"github.com/ScyllaDigital/graphql-go/types"
	"github.com/ScyllaDigital/graphql-go/validation"
)

func mustSchema(t *testing.T, cfg types.SchemaConfig) *types.Schema {
	t.Helper()
	s, err := types.NewSchema(cfg)
	require.NoError(t, err)
	return s
}

func helloSchema(t *testing.T) *types.Schema {
	return mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "hello",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return "world", nil
					},
				},
			},
		}),
	})
}

func TestHelloWorld(t *testing.T) {
	gqltesting.RunTest(t, &gqltesting.Test{
		Schema:         helloSchema(t),
		Query:          `{ hello }`,
		ExpectedResult: `{"hello": "world"}`,
	})
}

func TestOperationSelection(t *testing.T) {
	s := helloSchema(t)

	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         s,
			Query:          `query A { hello } query B { a: hello }`,
			OperationName:  "B",
			ExpectedResult: `{"a": "world"}`,
		},
		{
			Schema: s,
			Query:  `query A { hello } query B { hello }`,
			ExpectedErrors: []*errors.QueryError{
				{Message: "Must provide operation name if query contains multiple operations."},
			},
		},
		{
			Schema:        s,
			Query:         `query A { hello }`,
			OperationName: "C",
			ExpectedErrors: []*errors.QueryError{
				{Message: `Unknown operation named "C".`},
			},
		},
		{
			Schema: s,
			Query:  `fragment F on Query { hello }`,
			ExpectedErrors: []*errors.QueryError{
				{Message: "Must provide an operation."},
			},
		},
	})
}

func TestNonNullRootField(t *testing.T) {
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "x",
					Type: types.NewNonNull(types.Int),
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return nil, nil
					},
				},
			},
		}),
	})

	result := graphql.Do(graphql.Params{Schema: s, Source: `{ x }`})

	require.Nil(t, result.Data)
	require.Len(t, result.Errors, 1)
	require.Equal(t, "Cannot return null for non-nullable field Query.x", result.Errors[0].Message)
	require.Equal(t, []interface{}{"x"}, result.Errors[0].Path)

	// the response still carries "data": null since execution started
	out, err := json.Marshal(result)
	require.NoError(t, err)
	require.Contains(t, string(out), `"data":null`)
}

func TestListItemErrorStopsAtNullableList(t *testing.T) {
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "items",
					Type: types.NewList(types.NewNonNull(types.Int)),
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return []interface{}{1, nil, 3}, nil
					},
				},
			},
		}),
	})

	gqltesting.RunTest(t, &gqltesting.Test{
		Schema:         s,
		Query:          `{ items }`,
		ExpectedResult: `{"items": null}`,
		ExpectedErrors: []*errors.QueryError{
			{Message: "Cannot return null for non-nullable field Query.items", Path: []interface{}{"items", 1}},
		},
	})
}

func TestResolverErrorBecomesNull(t *testing.T) {
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "broken",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return nil, errors.Errorf("it broke")
					},
				},
				{
					Name: "fine",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return "ok", nil
					},
				},
			},
		}),
	})

	gqltesting.RunTest(t, &gqltesting.Test{
		Schema:         s,
		Query:          `{ broken fine }`,
		ExpectedResult: `{"broken": null, "fine": "ok"}`,
		ExpectedErrors: []*errors.QueryError{
			{Message: "it broke", Path: []interface{}{"broken"}},
		},
	})
}

func TestPanicIsSanitized(t *testing.T) {
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "boom",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						panic("secret detail")
					},
				},
			},
		}),
	})

	result := graphql.Do(graphql.Params{Schema: s, Source: `{ boom }`})
	require.Len(t, result.Errors, 1)
	require.Equal(t, errors.SanitizedMessage, result.Errors[0].Message)
	require.NotEmpty(t, result.Errors[0].Extensions["requestId"])

	exposed := graphql.Do(graphql.Params{Schema: s, Source: `{ boom }`, ExposeInternalErrors: true})
	require.Len(t, exposed.Errors, 1)
	require.Equal(t, "panic occurred: secret detail", exposed.Errors[0].Message)
}

func TestFragmentsAndTypename(t *testing.T) {
	character := types.NewInterface(types.InterfaceConfig{
		Name:   "Character",
		Fields: []*types.FieldDefinition{{Name: "name", Type: types.NewNonNull(types.String)}},
	})
	droid := types.NewObject(types.ObjectConfig{
		Name: "Droid",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
			{Name: "primaryFunction", Type: types.String},
		},
		Interfaces: []*types.Interface{character},
		IsTypeOf: func(p types.IsTypeOfParams) bool {
			src, _ := p.Value.(map[string]interface{})
			return src["primaryFunction"] != nil
		},
	})
	human := types.NewObject(types.ObjectConfig{
		Name: "Human",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
		},
		Interfaces: []*types.Interface{character},
		IsTypeOf: func(p types.IsTypeOfParams) bool {
			src, _ := p.Value.(map[string]interface{})
			return src["primaryFunction"] == nil
		},
	})

	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "hero",
					Type: character,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return map[string]interface{}{"name": "R2-D2", "primaryFunction": "Astromech"}, nil
					},
				},
			},
		}),
		Types: []types.NamedType{droid, human},
	})

	// spread and inline fragment produce the same result as direct selection
	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         s,
			Query:          `{ hero { __typename name ... on Droid { primaryFunction } } }`,
			ExpectedResult: `{"hero": {"__typename": "Droid", "name": "R2-D2", "primaryFunction": "Astromech"}}`,
		},
		{
			Schema: s,
			Query: `{ hero { __typename name ...droidFields } }
				fragment droidFields on Droid { primaryFunction }`,
			ExpectedResult: `{"hero": {"__typename": "Droid", "name": "R2-D2", "primaryFunction": "Astromech"}}`,
		},
		{
			Schema:         s,
			Query:          `{ hero { ... on Human { name } } }`,
			ExpectedResult: `{"hero": {}}`,
		},
	})
}

func TestSkipAndInclude(t *testing.T) {
	s := helloSchema(t)

	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         s,
			Query:          `query Q($skip: Boolean!) { hello @skip(if: $skip) }`,
			Variables:      map[string]interface{}{"skip": true},
			ExpectedResult: `{}`,
		},
		{
			Schema:         s,
			Query:          `query Q($skip: Boolean!) { hello @skip(if: $skip) }`,
			Variables:      map[string]interface{}{"skip": false},
			ExpectedResult: `{"hello": "world"}`,
		},
		{
			Schema:         s,
			Query:          `{ hello @include(if: false) }`,
			ExpectedResult: `{}`,
		},
	})
}

func TestVariablesAndArguments(t *testing.T) {
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "add",
					Type: types.NewNonNull(types.Int),
					Args: []*types.Argument{
						{Name: "a", Type: types.NewNonNull(types.Int)},
						{Name: "b", Type: types.Int, DefaultValue: 10, HasDefault: true},
					},
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						a := p.Args["a"].(int32)
						var b int32
						switch v := p.Args["b"].(type) {
						case int32:
							b = v
						case int:
							b = int32(v)
						}
						return a + b, nil
					},
				},
			},
		}),
	})

	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         s,
			Query:          `{ add(a: 1, b: 2) }`,
			ExpectedResult: `{"add": 3}`,
		},
		{
			Schema:         s,
			Query:          `query Q($a: Int!) { add(a: $a) }`,
			Variables:      map[string]interface{}{"a": 5},
			ExpectedResult: `{"add": 15}`,
		},
		{
			Schema: s,
			Query:  `query Q($a: Int!) { add(a: $a) }`,
			ExpectedErrors: []*errors.QueryError{
				{Message: `Variable "$a" of required type "Int!" was not provided.`},
			},
		},
	})
}

func TestMutationsRunSerially(t *testing.T) {
	counter := 0
	adapter := deferred.NewSyncAdapter()

	field := func(name string) *types.FieldDefinition {
		return &types.FieldDefinition{
			Name: name,
			Type: types.Int,
			Resolve: func(p types.ResolveParams) (interface{}, error) {
				d := adapter.Scheduler().New()
				adapter.Scheduler().Run(func() {
					counter++
					d.Resolve(counter)
				})
				return d, nil
			},
		}
	}

	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name:   "Query",
			Fields: []*types.FieldDefinition{{Name: "ok", Type: types.Boolean}},
		}),
		Mutation: types.NewObject(types.ObjectConfig{
			Name:   "Mutation",
			Fields: []*types.FieldDefinition{field("first"), field("second"), field("third")},
		}),
	})

	result := graphql.Do(graphql.Params{
		Schema:         s,
		Source:         `mutation { third: first second first: third }`,
		PromiseAdapter: adapter,
	})
	require.Empty(t, result.Errors)

	out, err := json.Marshal(result.Data)
	require.NoError(t, err)
	// response keys keep query order; values show resolver invocation order
	require.Equal(t, `{"third":1,"second":2,"first":3}`, string(out))
}

func TestDeferredFieldValues(t *testing.T) {
	adapter := deferred.NewSyncAdapter()

	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "eventually",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						d := adapter.Scheduler().New()
						adapter.Scheduler().Run(func() { d.Resolve("done") })
						return d, nil
					},
				},
				{
					Name: "rejected",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return adapter.Rejected(errors.Errorf("deferred failure")), nil
					},
				},
			},
		}),
	})

	result := graphql.Do(graphql.Params{
		Schema:         s,
		Source:         `{ eventually rejected }`,
		PromiseAdapter: adapter,
	})

	require.Len(t, result.Errors, 1)
	require.Equal(t, "deferred failure", result.Errors[0].Message)
	require.Equal(t, []interface{}{"rejected"}, result.Errors[0].Path)

	out, err := json.Marshal(result.Data)
	require.NoError(t, err)
	require.Equal(t, `{"eventually":"done","rejected":null}`, string(out))
}

func TestDefaultFieldResolverOverStructs(t *testing.T) {
	type starship struct {
		Name   string
		Length float64
	}

	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "ship",
					Type: types.NewObject(types.ObjectConfig{
						Name: "Starship",
						Fields: []*types.FieldDefinition{
							{Name: "name", Type: types.String},
							{Name: "length", Type: types.Float},
						},
					}),
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						return starship{Name: "Falcon", Length: 34.37}, nil
					},
				},
			},
		}),
	})

	gqltesting.RunTest(t, &gqltesting.Test{
		Schema:         s,
		Query:          `{ ship { name length } }`,
		ExpectedResult: `{"ship": {"name": "Falcon", "length": 34.37}}`,
	})
}

func TestSchemaWithoutMutations(t *testing.T) {
	result := graphql.Do(graphql.Params{
		Schema: helloSchema(t),
		Source: `mutation { hello }`,
		// skip validation so the execution-phase error surfaces
		ValidationRules: []validation.Rule{},
	})
	require.Len(t, result.Errors, 1)
	require.Equal(t, "Schema is not configured for mutations.", result.Errors[0].Message)
}

func TestValidationRejectsBeforeExecution(t *testing.T) {
	called := false
	s := mustSchema(t, types.SchemaConfig{
		Query: types.NewObject(types.ObjectConfig{
			Name: "Query",
			Fields: []*types.FieldDefinition{
				{
					Name: "hello",
					Type: types.String,
					Resolve: func(p types.ResolveParams) (interface{}, error) {
						called = true
						return "world", nil
					},
				},
			},
		}),
	})

	result := graphql.Do(graphql.Params{Schema: s, Source: `{ hello nonsense }`})
	require.False(t, called)
	require.Len(t, result.Errors, 1)
	require.Equal(t, "FieldsOnCorrectType", result.Errors[0].Rule)

	// pre-execution failures carry no data member at all
	out, err := json.Marshal(result)
	require.NoError(t, err)
	require.NotContains(t, string(out), `"data"`)
}

func TestIntrospectionOfTypename(t *testing.T) {
	gqltesting.RunTests(t, []*gqltesting.Test{
		{
			Schema:         helloSchema(t),
			Query:          `{ __typename }`,
			ExpectedResult: `{"__typename": "Query"}`,
		},
		{
			Schema:         helloSchema(t),
			Query:          `{ __schema { queryType { name } } }`,
			ExpectedResult: `{"__schema": {"queryType": {"name": "Query"}}}`,
		},
		{
			Schema:         helloSchema(t),
			Query:          `{ __type(name: "Query") { kind name } }`,
			ExpectedResult: `{"__type": {"kind": "OBJECT", "name": "Query"}}`,
		},
	})
}

func TestIntrospect(t *testing.T) {
	out, err := graphql.Introspect(helloSchema(t))
	require.NoError(t, err)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &resp))
	schema := resp["__schema"].(map[string]interface{})
	require.Equal(t, map[string]interface{}{"name": "Query"}, schema["queryType"])
	require.NotEmpty(t, schema["types"])
	require.NotEmpty(t, schema["directives"])
}

func TestParseQuery(t *testing.T) {
	doc, err := graphql.ParseQuery(`{ hello }`)
	require.NoError(t, err)

	gqltestingResult := graphql.Do(graphql.Params{Schema: helloSchema(t), Document: doc})
	require.Empty(t, gqltestingResult.Errors)

	_, err = graphql.ParseQuery(`{ hello `)
	require.Error(t, err)
}
