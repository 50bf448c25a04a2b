package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	cause := io.EOF

	t.Run("wrap error", func(t *testing.T) {
		err := Errorf("boom: %v", cause)
		require.True(t, errors.Is(err, cause))
		require.True(t, err.ClientSafe)
	})

	t.Run("handles nil", func(t *testing.T) {
		var err *QueryError
		require.False(t, errors.Is(err, cause))
	})

	t.Run("handle no arguments", func(t *testing.T) {
		err := Errorf("boom")
		require.False(t, errors.Is(err, cause))
	})

	t.Run("handle non-error arguments", func(t *testing.T) {
		err := Errorf("boom: %v", "shaka")
		require.False(t, errors.Is(err, cause))
	})
}

func TestInternalErrorf(t *testing.T) {
	qe := InternalErrorf("db down")
	require.False(t, qe.ClientSafe)
	require.Equal(t, "db down", qe.Message)
}

func TestErrorString(t *testing.T) {
	qe := Errorf("oops")
	qe.Locations = []Location{{Line: 2, Column: 5}}
	require.Equal(t, "graphql: oops (line 2, column 5)", qe.Error())

	var nilErr *QueryError
	require.Equal(t, "<nil>", nilErr.Error())
}

func TestSanitize(t *testing.T) {
	safe := Errorf("client safe")
	internal := InternalErrorf("stack trace here")
	internal.Path = []interface{}{"a", 0}

	out := Sanitize([]*QueryError{safe, internal})
	require.Equal(t, "client safe", out[0].Message)
	require.Equal(t, SanitizedMessage, out[1].Message)
	// paths survive sanitization and the original is untouched
	require.Equal(t, []interface{}{"a", 0}, out[1].Path)
	require.Equal(t, "stack trace here", internal.Message)
}

func TestAsQueryError(t *testing.T) {
	require.Nil(t, AsQueryError(nil))

	qe := Errorf("already one")
	require.Same(t, qe, AsQueryError(qe))

	plain := fmt.Errorf("resolver said no")
	converted := AsQueryError(plain)
	require.Equal(t, "resolver said no", converted.Message)
	require.True(t, converted.ClientSafe)
	require.Same(t, plain, converted.ResolverError)
}

func TestLocationBefore(t *testing.T) {
	require.True(t, Location{Line: 1, Column: 9}.Before(Location{Line: 2, Column: 1}))
	require.True(t, Location{Line: 2, Column: 1}.Before(Location{Line: 2, Column: 2}))
	require.False(t, Location{Line: 2, Column: 2}.Before(Location{Line: 2, Column: 2}))
}
