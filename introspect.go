package graphql

import (
	"encoding/json"

	"github.com/ScyllaDigital/graphql-go/introspection"
	"github.com/ScyllaDigital/graphql-go/types"
)

// Introspect runs the canonical introspection query against a schema and
// returns the result in the JSON format consumed by tools like Relay.
func Introspect(s *types.Schema) ([]byte, error) {
	result := Do(Params{Schema: s, Source: introspection.Query})
	if len(result.Errors) > 0 {
		return nil, result.Errors[0]
	}
	return json.MarshalIndent(result.Data, "", "\t")
}
