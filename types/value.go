package types

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ScyllaDigital/graphql-go/ast"
)

// FormatDefaultValue renders a default value the way it would be written in
// SDL. The value is either an ast.Value literal, which prints itself, or an
// already-coerced Go value rendered according to the input type. The second
// result is false when the value cannot be represented.
func FormatDefaultValue(value interface{}, t Input) (string, bool) {
	if lit, ok := value.(ast.Value); ok {
		return lit.String(), true
	}
	return formatGoValue(value, t)
}

func formatGoValue(value interface{}, t Input) (string, bool) {
	if value == nil {
		return "null", true
	}

	switch t := t.(type) {
	case *NonNull:
		return formatGoValue(value, t.OfType.(Input))
	case *List:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return formatGoValue(value, t.OfType.(Input))
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, ok := formatGoValue(rv.Index(i).Interface(), t.OfType.(Input))
			if !ok {
				return "", false
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", true
	case *Enum:
		if s, ok := value.(string); ok {
			if _, defined := t.Value(s); defined {
				return s, true
			}
		}
		if name, err := t.Serialize(value); err == nil {
			return name, true
		}
		return "", false
	case *InputObject:
		m, ok := value.(map[string]interface{})
		if !ok {
			return "", false
		}
		var parts []string
		for _, f := range t.Fields() {
			fv, present := m[f.Name]
			if !present {
				continue
			}
			s, ok := formatGoValue(fv, f.Type)
			if !ok {
				return "", false
			}
			parts = append(parts, f.Name+": "+s)
		}
		return "{" + strings.Join(parts, ", ") + "}", true
	}

	switch v := value.(type) {
	case string:
		return strconv.Quote(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case float32:
		return formatFloat(float64(v)), true
	case float64:
		return formatFloat(v), true
	case map[string]interface{}:
		// Untyped map against a custom scalar; render with sorted keys so the
		// output is deterministic.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			s, ok := formatGoValue(v[k], t)
			if !ok {
				return "", false
			}
			parts[i] = k + ": " + s
		}
		return "{" + strings.Join(parts, ", ") + "}", true
	}
	return "", false
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
