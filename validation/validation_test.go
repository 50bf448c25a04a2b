package validation

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScyllaDigital/graphql-go/internal/parser"
	"github.com/ScyllaDigital/graphql-go/types"
)

func petSchema(t *testing.T) *types.Schema {
	t.Helper()

	dogCommand := types.NewEnum(types.EnumConfig{
		Name: "DogCommand",
		Values: []*types.EnumValueDefinition{
			{Name: "SIT"}, {Name: "DOWN"}, {Name: "HEEL"},
		},
	})

	pet := types.NewInterface(types.InterfaceConfig{
		Name:   "Pet",
		Fields: []*types.FieldDefinition{{Name: "name", Type: types.NewNonNull(types.String)}},
	})

	human := types.NewObject(types.ObjectConfig{
		Name:   "Human",
		Fields: []*types.FieldDefinition{{Name: "name", Type: types.NewNonNull(types.String)}},
	})

	dog := types.NewObject(types.ObjectConfig{
		Name: "Dog",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
			{Name: "nickname", Type: types.String},
			{Name: "barkVolume", Type: types.Int},
			{Name: "owner", Type: human},
			{
				Name: "doesKnowCommand",
				Type: types.Boolean,
				Args: []*types.Argument{{Name: "dogCommand", Type: types.NewNonNull(dogCommand)}},
			},
		},
		Interfaces: []*types.Interface{pet},
	})

	cat := types.NewObject(types.ObjectConfig{
		Name: "Cat",
		Fields: []*types.FieldDefinition{
			{Name: "name", Type: types.NewNonNull(types.String)},
			{Name: "meowVolume", Type: types.Int},
		},
		Interfaces: []*types.Interface{pet},
	})

	complexInput := types.NewInputObject(types.InputObjectConfig{
		Name: "ComplexInput",
		Fields: []*types.InputField{
			{Name: "req", Type: types.NewNonNull(types.Boolean)},
			{Name: "opt", Type: types.Int},
		},
	})

	query := types.NewObject(types.ObjectConfig{
		Name: "Query",
		Fields: []*types.FieldDefinition{
			{Name: "dog", Type: dog},
			{Name: "pet", Type: pet},
			{Name: "human", Type: human},
			{Name: "f", Type: types.Boolean, Args: []*types.Argument{{Name: "x", Type: types.Int}}},
			{Name: "findDog", Type: dog, Args: []*types.Argument{{Name: "complex", Type: complexInput}}},
		},
	})

	subscription := types.NewObject(types.ObjectConfig{
		Name: "Subscription",
		Fields: []*types.FieldDefinition{
			{Name: "newMessage", Type: types.String},
			{Name: "disallowedSecondRootField", Type: types.String},
		},
	})

	s, err := types.NewSchema(types.SchemaConfig{
		Query:        query,
		Subscription: subscription,
		Types:        []types.NamedType{cat},
	})
	require.NoError(t, err)
	return s
}

func validate(t *testing.T, s *types.Schema, query string, rules []Rule) []string {
	t.Helper()
	doc, qe := parser.Parse(query)
	require.Nil(t, qe)

	var got []string
	for _, err := range Validate(s, doc, nil, rules) {
		got = append(got, fmt.Sprintf("%s: %s", err.Rule, err.Message))
	}
	sort.Strings(got)
	return got
}

func TestSpecifiedRules(t *testing.T) {
	s := petSchema(t)

	for _, tc := range []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "valid query",
			query: `query Q($cmd: DogCommand!) { dog { name doesKnowCommand(dogCommand: $cmd) ... on Pet { name } } }`,
		},
		{
			name:  "duplicate operation names",
			query: `query A { dog { name } } query A { dog { name } }`,
			want:  []string{`UniqueOperationNames: There can be only one operation named "A".`},
		},
		{
			name:  "anonymous operation alongside named",
			query: `{ dog { name } } query A { dog { name } }`,
			want:  []string{`LoneAnonymousOperation: This anonymous operation must be the only defined operation.`},
		},
		{
			name:  "subscription with two root fields",
			query: `subscription S { newMessage disallowedSecondRootField }`,
			want:  []string{`SingleFieldSubscriptions: Subscription "S" must select only one top level field.`},
		},
		{
			name:  "unknown type in fragment condition",
			query: `{ dog { ...f } } fragment f on Peet { name }`,
			want:  []string{`KnownTypeNames: Unknown type "Peet". Did you mean "Pet"?`},
		},
		{
			name:  "inline fragment on scalar",
			query: `{ dog { ... on Boolean { name } } }`,
			want:  []string{`FragmentsOnCompositeTypes: Fragment cannot condition on non composite type "Boolean".`},
		},
		{
			name:  "variable of object type",
			query: `query A($v: Dog) { dog { name } }`,
			want: []string{
				`NoUnusedVariables: Variable "$v" is never used in operation "A".`,
				`VariablesAreInputTypes: Variable "$v" cannot be non-input type "Dog".`,
			},
		},
		{
			name:  "composite field without selection",
			query: `{ dog }`,
			want:  []string{`ScalarLeafs: Field "dog" of type "Dog" must have a selection of subfields. Did you mean "dog { ... }"?`},
		},
		{
			name:  "scalar field with selection",
			query: `{ dog { name { x } } }`,
			want:  []string{`ScalarLeafs: Field "name" must not have a selection since type "String!" has no subfields.`},
		},
		{
			name:  "unknown field with suggestion",
			query: `{ dog { nicknam } }`,
			want:  []string{`FieldsOnCorrectType: Cannot query field "nicknam" on type "Dog". Did you mean "nickname"?`},
		},
		{
			name:  "field only on a possible type",
			query: `{ pet { meowVolume } }`,
			want:  []string{`FieldsOnCorrectType: Cannot query field "meowVolume" on type "Pet". Did you mean to use an inline fragment on "Cat"?`},
		},
		{
			name:  "duplicate fragment names",
			query: `{ dog { ...f } } fragment f on Dog { name } fragment f on Dog { name }`,
			want:  []string{`UniqueFragmentNames: There can be only one fragment named "f".`},
		},
		{
			name:  "unknown fragment",
			query: `{ dog { ...missing } }`,
			want:  []string{`KnownFragmentNames: Unknown fragment "missing".`},
		},
		{
			name:  "unused fragment",
			query: `{ dog { name } } fragment unused on Dog { name }`,
			want:  []string{`NoUnusedFragments: Fragment "unused" is never used.`},
		},
		{
			name:  "impossible spread",
			query: `{ pet { ... on Human { name } } }`,
			want:  []string{`PossibleFragmentSpreads: Fragment cannot be spread here as objects of type "Pet" can never be of type "Human".`},
		},
		{
			name:  "fragment cycle",
			query: `{ dog { ...f } } fragment f on Dog { ...f }`,
			want:  []string{`NoFragmentCycles: Cannot spread fragment "f" within itself.`},
		},
		{
			name:  "duplicate variable names",
			query: `query A($v: Int, $v: Int) { f(x: $v) }`,
			want:  []string{`UniqueVariableNames: There can be only one variable named "$v".`},
		},
		{
			name:  "undefined variable",
			query: `query A { f(x: $v) }`,
			want:  []string{`NoUndefinedVariables: Variable "$v" is not defined by operation "A".`},
		},
		{
			name:  "unused variable",
			query: `query A($v: Int) { f }`,
			want:  []string{`NoUnusedVariables: Variable "$v" is never used in operation "A".`},
		},
		{
			name:  "unknown directive",
			query: `{ f @unknown }`,
			want:  []string{`KnownDirectives: Unknown directive "@unknown".`},
		},
		{
			name:  "directive in wrong location",
			query: `query @include(if: true) { f }`,
			want:  []string{`KnownDirectives: Directive "@include" may not be used on QUERY.`},
		},
		{
			name:  "duplicate directive",
			query: `{ f @skip(if: true) @skip(if: false) }`,
			want:  []string{`UniqueDirectivesPerLocation: The directive "@skip" can only be used once at this location.`},
		},
		{
			name:  "unknown argument",
			query: `{ f(y: 1) }`,
			want:  []string{`KnownArgumentNames: Unknown argument "y" on field "Query.f". Did you mean "x"?`},
		},
		{
			name:  "duplicate argument",
			query: `{ f(x: 1, x: 2) }`,
			want:  []string{`UniqueArgumentNames: There can be only one argument named "x".`},
		},
		{
			name:  "bad scalar literal",
			query: `{ f(x: "no") }`,
			want:  []string{`ValuesOfCorrectType: Int cannot represent non-integer value: "no"`},
		},
		{
			name:  "misspelled enum value",
			query: `{ dog { doesKnowCommand(dogCommand: HEL) } }`,
			want:  []string{`ValuesOfCorrectType: Value "HEL" does not exist in "DogCommand" enum. Did you mean the enum value "HEEL"?`},
		},
		{
			name:  "null literal at non-null argument",
			query: `{ dog { doesKnowCommand(dogCommand: null) } }`,
			want:  []string{`ValuesOfCorrectType: Expected value of type "DogCommand!", found null.`},
		},
		{
			name:  "missing required argument",
			query: `{ dog { doesKnowCommand } }`,
			want:  []string{`ProvidedRequiredArguments: Field "doesKnowCommand" argument "dogCommand" of type "DogCommand!" is required, but it was not provided.`},
		},
		{
			name:  "missing required input field",
			query: `{ findDog(complex: {opt: 1}) { name } }`,
			want:  []string{`ValuesOfCorrectType: Field "ComplexInput.req" of required type "Boolean!" was not provided.`},
		},
		{
			name:  "variable in wrong position",
			query: `query A($v: String) { f(x: $v) }`,
			want:  []string{`VariablesInAllowedPosition: Variable "$v" of type "String" used in position expecting type "Int".`},
		},
		{
			name:  "conflicting field aliases",
			query: `{ dog { name: nickname name } }`,
			want:  []string{`OverlappingFieldsCanBeMerged: Fields "name" conflict because "nickname" and "name" are different fields. Use different aliases on the fields to fetch both if this was intentional.`},
		},
		{
			name:  "duplicate input field",
			query: `{ findDog(complex: {req: true, req: false}) { name } }`,
			want:  []string{`UniqueInputFieldNames: There can be only one input field named "req".`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, validate(t, s, tc.query, nil))
		})
	}
}

func TestEmptyRuleSetValidatesNothing(t *testing.T) {
	s := petSchema(t)
	require.Empty(t, validate(t, s, `{ nonsense }`, []Rule{}))
}

func TestQueryComplexity(t *testing.T) {
	s := petSchema(t)

	_, err := NewQueryComplexity(-2)
	require.EqualError(t, err, "argument must be greater or equal to 0.")

	rule, err := NewQueryComplexity(2)
	require.NoError(t, err)

	require.Empty(t, validate(t, s, `{ dog { name } }`, []Rule{rule}))
	require.Equal(t,
		[]string{"QueryComplexity: Max query complexity should be 2 but got 3."},
		validate(t, s, `{ dog { name nickname } }`, []Rule{rule}))

	disabled, err := NewQueryComplexity(Disabled)
	require.NoError(t, err)
	require.Empty(t, validate(t, s, `{ dog { name nickname barkVolume } }`, []Rule{disabled}))
}

func TestQueryComplexityCustomCost(t *testing.T) {
	costly := types.NewObject(types.ObjectConfig{
		Name: "Query",
		Fields: []*types.FieldDefinition{
			{
				Name: "search",
				Type: types.NewList(types.String),
				Args: []*types.Argument{{Name: "limit", Type: types.Int}},
				Complexity: func(childComplexity int, args map[string]interface{}) int {
					limit, _ := args["limit"].(int32)
					return int(limit) * (1 + childComplexity)
				},
			},
		},
	})
	s, err := types.NewSchema(types.SchemaConfig{Query: costly})
	require.NoError(t, err)

	rule, err := NewQueryComplexity(5)
	require.NoError(t, err)

	require.Empty(t, validate(t, s, `{ search(limit: 5) }`, []Rule{rule}))
	require.Equal(t,
		[]string{"QueryComplexity: Max query complexity should be 5 but got 10."},
		validate(t, s, `{ search(limit: 10) }`, []Rule{rule}))
}

func TestQueryComplexitySkipDirective(t *testing.T) {
	s := petSchema(t)

	rule, err := NewQueryComplexity(0)
	require.NoError(t, err)

	doc, qe := parser.Parse(`query Q($skip: Boolean!) { dog @skip(if: $skip) { name } }`)
	require.Nil(t, qe)

	errs := Validate(s, doc, map[string]interface{}{"skip": true}, []Rule{rule})
	require.Empty(t, errs)

	errs = Validate(s, doc, map[string]interface{}{"skip": false}, []Rule{rule})
	require.Len(t, errs, 1)
	require.Equal(t, "Max query complexity should be 0 but got 2.", errs[0].Message)
}

func TestQueryDepth(t *testing.T) {
	s := petSchema(t)

	_, err := NewQueryDepth(-2)
	require.EqualError(t, err, "argument must be greater or equal to 0.")

	rule, err := NewQueryDepth(2)
	require.NoError(t, err)

	require.Empty(t, validate(t, s, `{ dog { name } }`, []Rule{rule}))
	require.Equal(t,
		[]string{"QueryDepth: Max query depth should be 2 but got 3."},
		validate(t, s, `{ dog { owner { name } } }`, []Rule{rule}))

	// introspection fields do not count toward depth
	require.Empty(t, validate(t, s, `{ __schema { queryType { name } } }`, []Rule{rule}))
}

func TestQueryDepthThroughFragments(t *testing.T) {
	s := petSchema(t)

	rule, err := NewQueryDepth(1)
	require.NoError(t, err)

	got := validate(t, s, `{ dog { ...names } } fragment names on Dog { name }`, []Rule{rule})
	require.Equal(t, []string{"QueryDepth: Max query depth should be 1 but got 2."}, got)
}
