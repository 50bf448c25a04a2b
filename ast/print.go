package ast

import (
	"strconv"
	"strings"
)

func (v *Variable) String() string { return "$" + v.Name.Name }

func (v *IntValue) String() string   { return v.Value }
func (v *FloatValue) String() string { return v.Value }

func (v *StringValue) String() string {
	if v.Block {
		return `"""` + v.Value + `"""`
	}
	return strconv.Quote(v.Value)
}

func (v *BooleanValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

func (v *NullValue) String() string { return "null" }
func (v *EnumValue) String() string { return v.Value }

func (v *ListValue) String() string {
	parts := make([]string, len(v.Values))
	for i, item := range v.Values {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *ObjectValue) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
