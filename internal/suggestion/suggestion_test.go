package suggestion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	colors := []string{"RED", "GREEN", "BLUE"}

	// "RED" is two edits away but the input only affords one.
	require.Equal(t, []string{"GREEN"}, List("GREN", colors))
	require.Equal(t, []string{"GREEN"}, List("green", colors))
	require.Empty(t, List("MAGENTA", colors))

	// Single-letter inputs still get a suggestion.
	require.Equal(t, []string{"x"}, List("y", []string{"x"}))

	// Closest first, ties in option order.
	require.Equal(t, []string{"string", "strike"}, List("strig", []string{"strike", "string"}))
	require.Equal(t, []string{"ac", "aa"}, List("ab", []string{"ac", "aa", "zz"}))
}

func TestQuotedOrList(t *testing.T) {
	require.Equal(t, "", QuotedOrList(nil))
	require.Equal(t, `"a"`, QuotedOrList([]string{"a"}))
	require.Equal(t, `"a" or "b"`, QuotedOrList([]string{"a", "b"}))
	require.Equal(t, `"a", "b", or "c"`, QuotedOrList([]string{"a", "b", "c"}))
	require.Equal(t, `"a", "b", "c", "d", or "e"`, QuotedOrList([]string{"a", "b", "c", "d", "e", "f"}))
}

func TestDidYouMean(t *testing.T) {
	require.Equal(t, "", DidYouMean(nil))
	require.Equal(t, ` Did you mean "Pet"?`, DidYouMean([]string{"Pet"}))
}
