// Package suggestion ranks "did you mean" candidates for error messages.
package suggestion

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// List returns the options within editing distance of input, closest first.
// Ties keep the original option order. The threshold scales with the input
// only, so short misspellings do not pull in unrelated short options.
func List(input string, options []string) []string {
	type scored struct {
		option   string
		distance int
	}
	threshold := len(input) * 2 / 5
	if threshold < 1 {
		threshold = 1
	}
	var matches []scored
	for _, opt := range options {
		d := levenshtein.ComputeDistance(strings.ToLower(input), strings.ToLower(opt))
		if d <= threshold {
			matches = append(matches, scored{opt, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].distance < matches[j].distance })
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.option
	}
	return out
}

// QuotedOrList renders up to five items as `"a", "b", or "c"`.
func QuotedOrList(items []string) string {
	const limit = 5
	if len(items) > limit {
		items = items[:limit]
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// DidYouMean formats suggestions as a message suffix, including its leading
// space. It returns "" when there is nothing to suggest.
func DidYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " Did you mean " + QuotedOrList(suggestions) + "?"
}
