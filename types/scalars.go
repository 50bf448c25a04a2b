package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ScyllaDigital/graphql-go/ast"
)

// Int is the built-in 32-bit signed integer scalar.
var Int = NewScalar(ScalarConfig{
	Name:        "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values. Int can represent values between -(2^31) and 2^31 - 1.",
	Serialize:   coerceInt,
	ParseValue:  coerceInt,
	ParseLiteral: func(lit interface{}) (interface{}, error) {
		v, ok := lit.(*ast.IntValue)
		if !ok {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %s", printLiteral(lit))
		}
		i, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil || i < math.MinInt32 || i > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", v.Value)
		}
		return int32(i), nil
	},
})

// Float is the built-in double-precision float scalar.
var Float = NewScalar(ScalarConfig{
	Name:        "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional values as specified by IEEE 754.",
	Serialize:   coerceFloat,
	ParseValue:  coerceFloat,
	ParseLiteral: func(lit interface{}) (interface{}, error) {
		switch v := lit.(type) {
		case *ast.IntValue:
			return strconv.ParseFloat(v.Value, 64)
		case *ast.FloatValue:
			return strconv.ParseFloat(v.Value, 64)
		}
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", printLiteral(lit))
	},
})

// String is the built-in UTF-8 string scalar.
var String = NewScalar(ScalarConfig{
	Name:        "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	Serialize:   serializeString,
	ParseValue: func(value interface{}) (interface{}, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("String cannot represent a non string value: %v", value)
		}
		return s, nil
	},
	ParseLiteral: func(lit interface{}) (interface{}, error) {
		v, ok := lit.(*ast.StringValue)
		if !ok {
			return nil, fmt.Errorf("String cannot represent a non string value: %s", printLiteral(lit))
		}
		return v.Value, nil
	},
})

// Boolean is the built-in boolean scalar.
var Boolean = NewScalar(ScalarConfig{
	Name:        "Boolean",
	Description: "The `Boolean` scalar type represents `true` or `false`.",
	Serialize:   coerceBool,
	ParseValue:  coerceBool,
	ParseLiteral: func(lit interface{}) (interface{}, error) {
		v, ok := lit.(*ast.BooleanValue)
		if !ok {
			return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", printLiteral(lit))
		}
		return v.Value, nil
	},
})

// ID is the built-in identifier scalar. It serializes to a string but accepts
// both string and integer input.
var ID = NewScalar(ScalarConfig{
	Name:        "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as key for a cache. The ID type appears in a JSON response as a String; however, it is not intended to be human-readable. When expected as an input type, any string (such as `\"4\"`) or integer (such as `4`) input value will be accepted as an ID.",
	Serialize:   coerceID,
	ParseValue:  coerceID,
	ParseLiteral: func(lit interface{}) (interface{}, error) {
		switch v := lit.(type) {
		case *ast.StringValue:
			return v.Value, nil
		case *ast.IntValue:
			return v.Value, nil
		}
		return nil, fmt.Errorf("ID cannot represent a non-string and non-integer value: %s", printLiteral(lit))
	},
})

func coerceInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return int32(1), nil
		}
		return int32(0), nil
	case int:
		return intInRange(int64(v))
	case int8:
		return int32(v), nil
	case int16:
		return int32(v), nil
	case int32:
		return v, nil
	case int64:
		return intInRange(v)
	case uint:
		return intInRange(int64(v))
	case uint8:
		return int32(v), nil
	case uint16:
		return int32(v), nil
	case uint32:
		return intInRange(int64(v))
	case uint64:
		if v > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", v)
		}
		return int32(v), nil
	case float32:
		return floatAsInt(float64(v))
	case float64:
		return floatAsInt(v)
	}
	return nil, fmt.Errorf("Int cannot represent non-integer value: %v", value)
}

func intInRange(v int64) (interface{}, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", v)
	}
	return int32(v), nil
}

func floatAsInt(v float64) (interface{}, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %v", v)
	}
	return intInRange(int64(v))
}

func coerceFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %v", v)
		}
		return v, nil
	}
	return nil, fmt.Errorf("Float cannot represent non numeric value: %v", value)
}

func serializeString(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, errors.Errorf("String cannot represent value: %v", value)
}

func coerceBool(value interface{}) (interface{}, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %v", value)
}

func coerceID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, errors.Errorf("ID cannot represent value: %v", value)
}

func printLiteral(lit interface{}) string {
	if v, ok := lit.(ast.Value); ok {
		return v.String()
	}
	return fmt.Sprintf("%v", lit)
}
