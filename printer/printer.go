// Package printer exports a schema as SDL text.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ScyllaDigital/graphql-go/types"
)

// PrintSchema renders a schema deterministically: custom directives first,
// then types in name order. Fields, arguments and enum values keep their
// declaration order. Built-in scalars, specified directives and introspection
// types are omitted.
func PrintSchema(s *types.Schema) string {
	var blocks []string
	if block := schemaBlock(s); block != "" {
		blocks = append(blocks, block)
	}
	blocks = append(blocks, directiveBlocks(s)...)
	for _, name := range s.TypeNames() {
		if builtinType(name) {
			continue
		}
		blocks = append(blocks, typeBlock(s.GetType(name)))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// schemaBlock is only rendered when a root type deviates from its
// conventional name.
func schemaBlock(s *types.Schema) string {
	conventional := s.QueryType().TypeName() == "Query" &&
		(s.MutationType() == nil || s.MutationType().TypeName() == "Mutation") &&
		(s.SubscriptionType() == nil || s.SubscriptionType().TypeName() == "Subscription")
	if conventional {
		return ""
	}
	var b strings.Builder
	b.WriteString("schema {\n")
	fmt.Fprintf(&b, "  query: %s\n", s.QueryType().TypeName())
	if s.MutationType() != nil {
		fmt.Fprintf(&b, "  mutation: %s\n", s.MutationType().TypeName())
	}
	if s.SubscriptionType() != nil {
		fmt.Fprintf(&b, "  subscription: %s\n", s.SubscriptionType().TypeName())
	}
	b.WriteString("}")
	return b.String()
}

func directiveBlocks(s *types.Schema) []string {
	custom := lo.Filter(s.Directives(), func(d *types.Directive, _ int) bool {
		switch d.Name {
		case "skip", "include", "deprecated":
			return false
		}
		return true
	})
	sort.Slice(custom, func(i, j int) bool { return custom[i].Name < custom[j].Name })
	return lo.Map(custom, func(d *types.Directive, _ int) string {
		var b strings.Builder
		writeDescription(&b, d.Description, "")
		fmt.Fprintf(&b, "directive @%s%s", d.Name, argumentList(d.Args))
		if d.Repeatable {
			b.WriteString(" repeatable")
		}
		b.WriteString(" on " + strings.Join(d.Locations, " | "))
		return b.String()
	})
}

func typeBlock(t types.NamedType) string {
	var b strings.Builder
	switch t := t.(type) {
	case *types.Scalar:
		writeDescription(&b, t.Description(), "")
		b.WriteString("scalar " + t.TypeName())
	case *types.Enum:
		writeDescription(&b, t.Description(), "")
		b.WriteString("enum " + t.TypeName() + " {\n")
		for _, v := range t.Values() {
			writeDescription(&b, v.Description, "  ")
			b.WriteString("  " + v.Name + deprecated(v.DeprecationReason) + "\n")
		}
		b.WriteString("}")
	case *types.Object:
		writeDescription(&b, t.Description(), "")
		b.WriteString("type " + t.TypeName() + implementsClause(t.Interfaces()) + " {\n")
		writeFields(&b, t.Fields())
		b.WriteString("}")
	case *types.Interface:
		writeDescription(&b, t.Description(), "")
		b.WriteString("interface " + t.TypeName() + implementsClause(t.Interfaces()) + " {\n")
		writeFields(&b, t.Fields())
		b.WriteString("}")
	case *types.Union:
		writeDescription(&b, t.Description(), "")
		members := lo.Map(t.Types(), func(o *types.Object, _ int) string { return o.TypeName() })
		b.WriteString("union " + t.TypeName() + " = " + strings.Join(members, " | "))
	case *types.InputObject:
		writeDescription(&b, t.Description(), "")
		b.WriteString("input " + t.TypeName() + " {\n")
		for _, f := range t.Fields() {
			writeDescription(&b, f.Description, "  ")
			fmt.Fprintf(&b, "  %s: %s%s\n", f.Name, f.Type.String(), defaultClause(f.DefaultValue, f.HasDefault, f.Type))
		}
		b.WriteString("}")
	}
	return b.String()
}

func writeFields(b *strings.Builder, fields []*types.FieldDefinition) {
	for _, f := range fields {
		writeDescription(b, f.Description, "  ")
		fmt.Fprintf(b, "  %s%s: %s%s\n", f.Name, argumentList(f.Args), f.Type.String(), deprecated(f.DeprecationReason))
	}
}

func argumentList(args []*types.Argument) string {
	if len(args) == 0 {
		return ""
	}
	rendered := lo.Map(args, func(a *types.Argument, _ int) string {
		return a.Name + ": " + a.Type.String() + defaultClause(a.DefaultValue, a.HasDefault, a.Type)
	})
	return "(" + strings.Join(rendered, ", ") + ")"
}

func defaultClause(value interface{}, has bool, t types.Input) string {
	if !has {
		return ""
	}
	rendered, ok := types.FormatDefaultValue(value, t)
	if !ok {
		return ""
	}
	return " = " + rendered
}

func implementsClause(interfaces []*types.Interface) string {
	if len(interfaces) == 0 {
		return ""
	}
	names := lo.Map(interfaces, func(i *types.Interface, _ int) string { return i.TypeName() })
	return " implements " + strings.Join(names, " & ")
}

func deprecated(reason string) string {
	if reason == "" {
		return ""
	}
	if reason == "No longer supported" {
		return " @deprecated"
	}
	return fmt.Sprintf(" @deprecated(reason: %q)", reason)
}

func builtinType(name string) bool {
	if strings.HasPrefix(name, "__") {
		return true
	}
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

func writeDescription(b *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	b.WriteString(indent + `"""` + desc + `"""` + "\n")
}
