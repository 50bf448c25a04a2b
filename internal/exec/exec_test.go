package exec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScyllaDigital/graphql-go/types"
)

func TestOrderedMapMarshalsInInsertionOrder(t *testing.T) {
	m := NewOrderedMap(3)
	m.Set("zebra", 1)
	m.Set("apple", nil)
	m.Set("mango", "x")

	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"zebra":1,"apple":null,"mango":"x"}`, string(out))

	// overwriting keeps the original position
	m.Set("zebra", 2)
	out, err = json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"zebra":2,"apple":null,"mango":"x"}`, string(out))

	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	v, ok := m.Get("apple")
	require.True(t, ok)
	require.Nil(t, v)
	_, ok = m.Get("missing")
	require.False(t, ok)
}

func TestOrderedMapEmpty(t *testing.T) {
	out, err := json.Marshal(NewOrderedMap(0))
	require.NoError(t, err)
	require.Equal(t, `{}`, string(out))
}

type testShip struct {
	Name   string
	hidden string
}

func (s testShip) Crew() int { return 4 }

func (s testShip) Fuel() (float64, error) { return 0.5, nil }

func resolve(t *testing.T, source interface{}, field string) (interface{}, error) {
	t.Helper()
	return DefaultFieldResolver(types.ResolveParams{
		Source: source,
		Info:   &types.ResolveInfo{FieldName: field},
	})
}

func TestDefaultFieldResolverMap(t *testing.T) {
	src := map[string]interface{}{"name": "Falcon"}

	v, err := resolve(t, src, "name")
	require.NoError(t, err)
	require.Equal(t, "Falcon", v)

	v, err = resolve(t, src, "missing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDefaultFieldResolverStruct(t *testing.T) {
	ship := testShip{Name: "Falcon", hidden: "nope"}

	v, err := resolve(t, ship, "name")
	require.NoError(t, err)
	require.Equal(t, "Falcon", v)

	// unexported fields are invisible
	v, err = resolve(t, ship, "hidden")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDefaultFieldResolverMethod(t *testing.T) {
	ship := testShip{}

	v, err := resolve(t, ship, "crew")
	require.NoError(t, err)
	require.Equal(t, 4, v)

	v, err = resolve(t, ship, "fuel")
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
}

func TestDefaultFieldResolverFuncValue(t *testing.T) {
	src := map[string]interface{}{
		"lazy": func() string { return "later" },
	}

	v, err := resolve(t, src, "lazy")
	require.NoError(t, err)
	require.Equal(t, "later", v)
}

func TestDefaultFieldResolverNilSource(t *testing.T) {
	v, err := resolve(t, nil, "anything")
	require.NoError(t, err)
	require.Nil(t, v)
}
