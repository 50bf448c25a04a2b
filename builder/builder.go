// Package builder constructs a runtime schema from SDL text.
package builder

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	gqlparser "github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/ScyllaDigital/graphql-go/types"
)

// Config supplies the runtime behavior the SDL cannot express.
type Config struct {
	// Resolvers maps type name to field name to resolver. Fields without an
	// entry use the request's default resolver.
	Resolvers map[string]map[string]types.FieldResolveFn
	// Scalars provides coercion for custom scalars, keyed by name. A custom
	// scalar without an entry passes values through unchanged.
	Scalars map[string]*types.Scalar
	// TypeResolvers maps interface and union names to runtime type
	// resolvers.
	TypeResolvers map[string]types.ResolveTypeFn
}

// BuildSchema parses SDL and builds a validated schema from it.
func BuildSchema(sdl string, cfg Config) (*types.Schema, error) {
	parsed, err := gqlparser.LoadSchema(&gqlast.Source{Name: "schema", Input: sdl})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse schema")
	}

	b := &schemaBuilder{parsed: parsed, cfg: cfg, named: make(map[string]types.NamedType)}
	for name, def := range parsed.Types {
		if isBuiltin(name) {
			continue
		}
		b.named[name] = b.shell(def)
	}

	sc := types.SchemaConfig{Directives: b.directives()}
	if parsed.Query != nil {
		sc.Query, _ = b.lookup(parsed.Query.Name).(*types.Object)
	}
	if parsed.Mutation != nil {
		sc.Mutation, _ = b.lookup(parsed.Mutation.Name).(*types.Object)
	}
	if parsed.Subscription != nil {
		sc.Subscription, _ = b.lookup(parsed.Subscription.Name).(*types.Object)
	}
	for _, t := range b.named {
		sc.Types = append(sc.Types, t)
	}

	s, err := types.NewSchema(sc)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build schema")
	}
	return s, nil
}

// MustBuildSchema is BuildSchema, panicking on error.
func MustBuildSchema(sdl string, cfg Config) *types.Schema {
	s, err := BuildSchema(sdl, cfg)
	if err != nil {
		panic(err)
	}
	return s
}

type schemaBuilder struct {
	parsed *gqlast.Schema
	cfg    Config
	named  map[string]types.NamedType
}

// shell creates the named type for a definition. Field and member
// construction is deferred so definitions may reference each other in any
// order.
func (b *schemaBuilder) shell(def *gqlast.Definition) types.NamedType {
	switch def.Kind {
	case gqlast.Scalar:
		if s, ok := b.cfg.Scalars[def.Name]; ok {
			return s
		}
		return types.NewScalar(types.ScalarConfig{Name: def.Name, Description: def.Description})
	case gqlast.Enum:
		values := make([]*types.EnumValueDefinition, len(def.EnumValues))
		for i, v := range def.EnumValues {
			values[i] = &types.EnumValueDefinition{
				Name:              v.Name,
				Description:       v.Description,
				DeprecationReason: deprecationReason(v.Directives),
			}
		}
		return types.NewEnum(types.EnumConfig{Name: def.Name, Description: def.Description, Values: values})
	case gqlast.Object:
		return types.NewObject(types.ObjectConfig{
			Name:         def.Name,
			Description:  def.Description,
			FieldsFn:     func() []*types.FieldDefinition { return b.fields(def) },
			InterfacesFn: func() []*types.Interface { return b.interfaces(def) },
		})
	case gqlast.Interface:
		return types.NewInterface(types.InterfaceConfig{
			Name:        def.Name,
			Description: def.Description,
			FieldsFn:    func() []*types.FieldDefinition { return b.fields(def) },
			ResolveType: b.cfg.TypeResolvers[def.Name],
		})
	case gqlast.Union:
		return types.NewUnion(types.UnionConfig{
			Name:        def.Name,
			Description: def.Description,
			TypesFn:     func() []*types.Object { return b.members(def) },
			ResolveType: b.cfg.TypeResolvers[def.Name],
		})
	case gqlast.InputObject:
		return types.NewInputObject(types.InputObjectConfig{
			Name:        def.Name,
			Description: def.Description,
			FieldsFn:    func() []*types.InputField { return b.inputFields(def) },
		})
	}
	panic("graphql: unexpected definition kind " + string(def.Kind))
}

func (b *schemaBuilder) fields(def *gqlast.Definition) []*types.FieldDefinition {
	var out []*types.FieldDefinition
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		fd := &types.FieldDefinition{
			Name:              f.Name,
			Type:              b.typeRef(f.Type).(types.Output),
			Args:              b.arguments(f.Arguments),
			Description:       f.Description,
			DeprecationReason: deprecationReason(f.Directives),
		}
		if resolvers, ok := b.cfg.Resolvers[def.Name]; ok {
			fd.Resolve = resolvers[f.Name]
		}
		out = append(out, fd)
	}
	return out
}

func (b *schemaBuilder) inputFields(def *gqlast.Definition) []*types.InputField {
	var out []*types.InputField
	for _, f := range def.Fields {
		field := &types.InputField{
			Name:        f.Name,
			Type:        b.typeRef(f.Type).(types.Input),
			Description: f.Description,
		}
		if f.DefaultValue != nil {
			v, err := f.DefaultValue.Value(nil)
			if err == nil {
				field.DefaultValue = v
				field.HasDefault = true
			}
		}
		out = append(out, field)
	}
	return out
}

func (b *schemaBuilder) arguments(args gqlast.ArgumentDefinitionList) []*types.Argument {
	var out []*types.Argument
	for _, a := range args {
		arg := &types.Argument{
			Name:        a.Name,
			Type:        b.typeRef(a.Type).(types.Input),
			Description: a.Description,
		}
		if a.DefaultValue != nil {
			v, err := a.DefaultValue.Value(nil)
			if err == nil {
				arg.DefaultValue = v
				arg.HasDefault = true
			}
		}
		out = append(out, arg)
	}
	return out
}

func (b *schemaBuilder) interfaces(def *gqlast.Definition) []*types.Interface {
	var out []*types.Interface
	for _, name := range def.Interfaces {
		if iface, ok := b.lookup(name).(*types.Interface); ok {
			out = append(out, iface)
		}
	}
	return out
}

func (b *schemaBuilder) members(def *gqlast.Definition) []*types.Object {
	var out []*types.Object
	for _, name := range def.Types {
		if obj, ok := b.lookup(name).(*types.Object); ok {
			out = append(out, obj)
		}
	}
	return out
}

func (b *schemaBuilder) typeRef(t *gqlast.Type) types.Type {
	var base types.Type
	if t.NamedType != "" {
		base = b.lookup(t.NamedType)
	} else {
		base = types.NewList(b.typeRef(t.Elem))
	}
	if t.NonNull {
		return types.NewNonNull(base)
	}
	return base
}

func (b *schemaBuilder) lookup(name string) types.NamedType {
	switch name {
	case "Int":
		return types.Int
	case "Float":
		return types.Float
	case "String":
		return types.String
	case "Boolean":
		return types.Boolean
	case "ID":
		return types.ID
	}
	return b.named[name]
}

func (b *schemaBuilder) directives() []*types.Directive {
	out := append([]*types.Directive(nil), types.SpecifiedDirectives...)
	for name, def := range b.parsed.Directives {
		switch name {
		case "skip", "include", "deprecated", "specifiedBy":
			continue
		}
		locations := make([]string, len(def.Locations))
		for i, loc := range def.Locations {
			locations[i] = string(loc)
		}
		out = append(out, &types.Directive{
			Name:        def.Name,
			Description: def.Description,
			Locations:   locations,
			Args:        b.arguments(def.Arguments),
			Repeatable:  def.IsRepeatable,
		})
	}
	return out
}

func isBuiltin(name string) bool {
	if strings.HasPrefix(name, "__") {
		return true
	}
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

func deprecationReason(directives gqlast.DirectiveList) string {
	d := directives.ForName("deprecated")
	if d == nil {
		return ""
	}
	if reason := d.Arguments.ForName("reason"); reason != nil {
		return reason.Value.Raw
	}
	return "No longer supported"
}
