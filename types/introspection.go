package types

// The introspection meta-types live here rather than in a separate package so
// the schema can reference them without an import cycle. They are wired in
// init because __Type refers to itself.

var (
	SchemaMetaType            *Object
	TypeMetaType              *Object
	FieldMetaType             *Object
	InputValueMetaType        *Object
	EnumValueMetaType         *Object
	DirectiveMetaType         *Object
	TypeKindMetaType          *Enum
	DirectiveLocationMetaType *Enum

	// SchemaMetaFieldDef, TypeMetaFieldDef and TypeNameMetaFieldDef back the
	// implicit __schema, __type and __typename fields. They do not appear in
	// any type's field list; the executor injects them.
	SchemaMetaFieldDef   *FieldDefinition
	TypeMetaFieldDef     *FieldDefinition
	TypeNameMetaFieldDef *FieldDefinition

	introspectionTypes []NamedType
	introspectionNames map[string]bool
)

func isIntrospectionType(t NamedType) bool {
	return introspectionNames[t.TypeName()]
}

func init() {
	TypeKindMetaType = NewEnum(EnumConfig{
		Name:        "__TypeKind",
		Description: "An enum describing what kind of type a given `__Type` is.",
		Values: []*EnumValueDefinition{
			{Name: "SCALAR", Description: "Indicates this type is a scalar."},
			{Name: "OBJECT", Description: "Indicates this type is an object. `fields` and `interfaces` are valid fields."},
			{Name: "INTERFACE", Description: "Indicates this type is an interface. `fields`, `interfaces`, and `possibleTypes` are valid fields."},
			{Name: "UNION", Description: "Indicates this type is a union. `possibleTypes` is a valid field."},
			{Name: "ENUM", Description: "Indicates this type is an enum. `enumValues` is a valid field."},
			{Name: "INPUT_OBJECT", Description: "Indicates this type is an input object. `inputFields` is a valid field."},
			{Name: "LIST", Description: "Indicates this type is a list. `ofType` is a valid field."},
			{Name: "NON_NULL", Description: "Indicates this type is a non-null. `ofType` is a valid field."},
		},
	})

	DirectiveLocationMetaType = NewEnum(EnumConfig{
		Name:        "__DirectiveLocation",
		Description: "A Directive can be adjacent to many parts of the GraphQL language, a __DirectiveLocation describes one such possible adjacencies.",
		Values: []*EnumValueDefinition{
			{Name: DirectiveLocationQuery},
			{Name: DirectiveLocationMutation},
			{Name: DirectiveLocationSubscription},
			{Name: DirectiveLocationField},
			{Name: DirectiveLocationFragmentDefinition},
			{Name: DirectiveLocationFragmentSpread},
			{Name: DirectiveLocationInlineFragment},
			{Name: DirectiveLocationVariableDefinition},
			{Name: DirectiveLocationSchema},
			{Name: DirectiveLocationScalar},
			{Name: DirectiveLocationObject},
			{Name: DirectiveLocationFieldDefinition},
			{Name: DirectiveLocationArgumentDefinition},
			{Name: DirectiveLocationInterface},
			{Name: DirectiveLocationUnion},
			{Name: DirectiveLocationEnum},
			{Name: DirectiveLocationEnumValue},
			{Name: DirectiveLocationInputObject},
			{Name: DirectiveLocationInputFieldDefinition},
		},
	})

	EnumValueMetaType = NewObject(ObjectConfig{
		Name:        "__EnumValue",
		Description: "One possible value for a given Enum. Enum values are unique values, not a placeholder for a string or numeric value. However an Enum value is returned in a JSON response as a string.",
		Fields: []*FieldDefinition{
			{Name: "name", Type: NewNonNull(String), Resolve: func(p ResolveParams) (interface{}, error) {
				return p.Source.(*EnumValueDefinition).Name, nil
			}},
			{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
				return nonEmpty(p.Source.(*EnumValueDefinition).Description), nil
			}},
			{Name: "isDeprecated", Type: NewNonNull(Boolean), Resolve: func(p ResolveParams) (interface{}, error) {
				return p.Source.(*EnumValueDefinition).DeprecationReason != "", nil
			}},
			{Name: "deprecationReason", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
				return nonEmpty(p.Source.(*EnumValueDefinition).DeprecationReason), nil
			}},
		},
	})

	InputValueMetaType = NewObject(ObjectConfig{
		Name:        "__InputValue",
		Description: "Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value.",
		FieldsFn: func() []*FieldDefinition {
			return []*FieldDefinition{
				{Name: "name", Type: NewNonNull(String), Resolve: func(p ResolveParams) (interface{}, error) {
					name, _, _, _ := inputValueParts(p.Source)
					return name, nil
				}},
				{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					_, desc, _, _ := inputValueParts(p.Source)
					return nonEmpty(desc), nil
				}},
				{Name: "type", Type: NewNonNull(TypeMetaType), Resolve: func(p ResolveParams) (interface{}, error) {
					_, _, t, _ := inputValueParts(p.Source)
					return t, nil
				}},
				{Name: "defaultValue", Type: String, Description: "A GraphQL-formatted string representing the default value for this input value.", Resolve: func(p ResolveParams) (interface{}, error) {
					_, _, t, def := inputValueParts(p.Source)
					if def == nil {
						return nil, nil
					}
					if s, ok := FormatDefaultValue(def.value, t); ok {
						return s, nil
					}
					return nil, nil
				}},
			}
		},
	})

	FieldMetaType = NewObject(ObjectConfig{
		Name:        "__Field",
		Description: "Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type.",
		FieldsFn: func() []*FieldDefinition {
			return []*FieldDefinition{
				{Name: "name", Type: NewNonNull(String), Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*FieldDefinition).Name, nil
				}},
				{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					return nonEmpty(p.Source.(*FieldDefinition).Description), nil
				}},
				{Name: "args", Type: NewNonNull(NewList(NewNonNull(InputValueMetaType))), Resolve: func(p ResolveParams) (interface{}, error) {
					args := p.Source.(*FieldDefinition).Args
					out := make([]interface{}, len(args))
					for i, arg := range args {
						out[i] = arg
					}
					return out, nil
				}},
				{Name: "type", Type: NewNonNull(TypeMetaType), Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*FieldDefinition).Type, nil
				}},
				{Name: "isDeprecated", Type: NewNonNull(Boolean), Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*FieldDefinition).DeprecationReason != "", nil
				}},
				{Name: "deprecationReason", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					return nonEmpty(p.Source.(*FieldDefinition).DeprecationReason), nil
				}},
			}
		},
	})

	TypeMetaType = NewObject(ObjectConfig{
		Name:        "__Type",
		Description: "The fundamental unit of any GraphQL Schema is the type. There are many kinds of types in GraphQL as represented by the `__TypeKind` enum.\n\nDepending on the kind of a type, certain fields describe information about that type. Scalar types provide no information beyond a name and description, while Enum types provide their values. Object and Interface types provide the fields they describe. Abstract types, Union and Interface, provide the Object types possible at runtime. List and NonNull types compose other types.",
		FieldsFn: func() []*FieldDefinition {
			return []*FieldDefinition{
				{Name: "kind", Type: NewNonNull(TypeKindMetaType), Resolve: resolveTypeKind},
				{Name: "name", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					if named, ok := p.Source.(NamedType); ok {
						return named.TypeName(), nil
					}
					return nil, nil
				}},
				{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					if named, ok := p.Source.(NamedType); ok {
						return nonEmpty(named.Description()), nil
					}
					return nil, nil
				}},
				{Name: "fields", Type: NewList(NewNonNull(FieldMetaType)), Args: includeDeprecatedArgs(), Resolve: resolveTypeFields},
				{Name: "interfaces", Type: NewList(NewNonNull(TypeMetaType)), Resolve: resolveTypeInterfaces},
				{Name: "possibleTypes", Type: NewList(NewNonNull(TypeMetaType)), Resolve: resolvePossibleTypes},
				{Name: "enumValues", Type: NewList(NewNonNull(EnumValueMetaType)), Args: includeDeprecatedArgs(), Resolve: resolveEnumValues},
				{Name: "inputFields", Type: NewList(NewNonNull(InputValueMetaType)), Resolve: resolveInputFields},
				{Name: "ofType", Type: TypeMetaType, Resolve: func(p ResolveParams) (interface{}, error) {
					switch t := p.Source.(type) {
					case *List:
						return t.OfType, nil
					case *NonNull:
						return t.OfType, nil
					}
					return nil, nil
				}},
			}
		},
	})

	DirectiveMetaType = NewObject(ObjectConfig{
		Name:        "__Directive",
		Description: "A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document.\n\nIn some cases, you need to provide options to alter GraphQL's execution behavior in ways field arguments will not suffice, such as conditionally including or skipping a field. Directives provide this by describing additional information to the executor.",
		FieldsFn: func() []*FieldDefinition {
			return []*FieldDefinition{
				{Name: "name", Type: NewNonNull(String), Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*Directive).Name, nil
				}},
				{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					return nonEmpty(p.Source.(*Directive).Description), nil
				}},
				{Name: "locations", Type: NewNonNull(NewList(NewNonNull(DirectiveLocationMetaType))), Resolve: func(p ResolveParams) (interface{}, error) {
					locs := p.Source.(*Directive).Locations
					out := make([]interface{}, len(locs))
					for i, loc := range locs {
						out[i] = loc
					}
					return out, nil
				}},
				{Name: "args", Type: NewNonNull(NewList(NewNonNull(InputValueMetaType))), Resolve: func(p ResolveParams) (interface{}, error) {
					args := p.Source.(*Directive).Args
					out := make([]interface{}, len(args))
					for i, arg := range args {
						out[i] = arg
					}
					return out, nil
				}},
				{Name: "isRepeatable", Type: NewNonNull(Boolean), Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*Directive).Repeatable, nil
				}},
			}
		},
	})

	SchemaMetaType = NewObject(ObjectConfig{
		Name:        "__Schema",
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all available types and directives on the server, as well as the entry points for query, mutation, and subscription operations.",
		FieldsFn: func() []*FieldDefinition {
			return []*FieldDefinition{
				{Name: "description", Type: String, Resolve: func(p ResolveParams) (interface{}, error) {
					return nil, nil
				}},
				{Name: "types", Type: NewNonNull(NewList(NewNonNull(TypeMetaType))), Description: "A list of all types supported by this server.", Resolve: func(p ResolveParams) (interface{}, error) {
					s := p.Source.(*Schema)
					names := s.TypeNames()
					out := make([]interface{}, len(names))
					for i, name := range names {
						out[i] = s.TypeMap()[name]
					}
					return out, nil
				}},
				{Name: "queryType", Type: NewNonNull(TypeMetaType), Description: "The type that query operations will be rooted at.", Resolve: func(p ResolveParams) (interface{}, error) {
					return p.Source.(*Schema).QueryType(), nil
				}},
				{Name: "mutationType", Type: TypeMetaType, Description: "If this server supports mutation, the type that mutation operations will be rooted at.", Resolve: func(p ResolveParams) (interface{}, error) {
					if t := p.Source.(*Schema).MutationType(); t != nil {
						return t, nil
					}
					return nil, nil
				}},
				{Name: "subscriptionType", Type: TypeMetaType, Description: "If this server supports subscription, the type that subscription operations will be rooted at.", Resolve: func(p ResolveParams) (interface{}, error) {
					if t := p.Source.(*Schema).SubscriptionType(); t != nil {
						return t, nil
					}
					return nil, nil
				}},
				{Name: "directives", Type: NewNonNull(NewList(NewNonNull(DirectiveMetaType))), Description: "A list of all directives supported by this server.", Resolve: func(p ResolveParams) (interface{}, error) {
					dirs := p.Source.(*Schema).Directives()
					out := make([]interface{}, len(dirs))
					for i, d := range dirs {
						out[i] = d
					}
					return out, nil
				}},
			}
		},
	})

	SchemaMetaFieldDef = &FieldDefinition{
		Name:        "__schema",
		Type:        NewNonNull(SchemaMetaType),
		Description: "Access the current type schema of this server.",
		Resolve: func(p ResolveParams) (interface{}, error) {
			return p.Info.Schema, nil
		},
	}
	TypeMetaFieldDef = &FieldDefinition{
		Name:        "__type",
		Type:        TypeMetaType,
		Description: "Request the type information of a single type.",
		Args: []*Argument{
			{Name: "name", Type: NewNonNull(String)},
		},
		Resolve: func(p ResolveParams) (interface{}, error) {
			name, _ := p.Args["name"].(string)
			if t := p.Info.Schema.GetType(name); t != nil {
				return t, nil
			}
			return nil, nil
		},
	}
	TypeNameMetaFieldDef = &FieldDefinition{
		Name:        "__typename",
		Type:        NewNonNull(String),
		Description: "The name of the current Object type at runtime.",
		Resolve: func(p ResolveParams) (interface{}, error) {
			return p.Info.ParentType.TypeName(), nil
		},
	}

	introspectionTypes = []NamedType{
		SchemaMetaType,
		TypeMetaType,
		FieldMetaType,
		InputValueMetaType,
		EnumValueMetaType,
		DirectiveMetaType,
		TypeKindMetaType,
		DirectiveLocationMetaType,
	}
	introspectionNames = make(map[string]bool, len(introspectionTypes))
	for _, t := range introspectionTypes {
		introspectionNames[t.TypeName()] = true
	}
}

func includeDeprecatedArgs() []*Argument {
	return []*Argument{
		{Name: "includeDeprecated", Type: Boolean, DefaultValue: false, HasDefault: true},
	}
}

func resolveTypeKind(p ResolveParams) (interface{}, error) {
	switch p.Source.(type) {
	case *Scalar:
		return "SCALAR", nil
	case *Object:
		return "OBJECT", nil
	case *Interface:
		return "INTERFACE", nil
	case *Union:
		return "UNION", nil
	case *Enum:
		return "ENUM", nil
	case *InputObject:
		return "INPUT_OBJECT", nil
	case *List:
		return "LIST", nil
	case *NonNull:
		return "NON_NULL", nil
	}
	return nil, nil
}

func resolveTypeFields(p ResolveParams) (interface{}, error) {
	includeDeprecated, _ := p.Args["includeDeprecated"].(bool)
	var fields []*FieldDefinition
	switch t := p.Source.(type) {
	case *Object:
		fields = t.Fields()
	case *Interface:
		fields = t.Fields()
	default:
		return nil, nil
	}
	out := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		if !includeDeprecated && f.DeprecationReason != "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func resolveTypeInterfaces(p ResolveParams) (interface{}, error) {
	var ifaces []*Interface
	switch t := p.Source.(type) {
	case *Object:
		ifaces = t.Interfaces()
	case *Interface:
		ifaces = t.Interfaces()
	default:
		return nil, nil
	}
	out := make([]interface{}, len(ifaces))
	for i, iface := range ifaces {
		out[i] = iface
	}
	return out, nil
}

func resolvePossibleTypes(p ResolveParams) (interface{}, error) {
	ab, ok := p.Source.(Abstract)
	if !ok {
		return nil, nil
	}
	possible := p.Info.Schema.PossibleTypes(ab)
	out := make([]interface{}, len(possible))
	for i, t := range possible {
		out[i] = t
	}
	return out, nil
}

func resolveEnumValues(p ResolveParams) (interface{}, error) {
	t, ok := p.Source.(*Enum)
	if !ok {
		return nil, nil
	}
	includeDeprecated, _ := p.Args["includeDeprecated"].(bool)
	out := make([]interface{}, 0, len(t.Values()))
	for _, v := range t.Values() {
		if !includeDeprecated && v.DeprecationReason != "" {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func resolveInputFields(p ResolveParams) (interface{}, error) {
	t, ok := p.Source.(*InputObject)
	if !ok {
		return nil, nil
	}
	out := make([]interface{}, len(t.Fields()))
	for i, f := range t.Fields() {
		out[i] = f
	}
	return out, nil
}

// inputValueParts views an __InputValue source, which is either a field or
// directive argument or an input object field.
func inputValueParts(source interface{}) (name, description string, t Input, def *defaultValue) {
	switch v := source.(type) {
	case *Argument:
		if v.HasDefault {
			def = &defaultValue{value: v.DefaultValue}
		}
		return v.Name, v.Description, v.Type, def
	case *InputField:
		if v.HasDefault {
			def = &defaultValue{value: v.DefaultValue}
		}
		return v.Name, v.Description, v.Type, def
	}
	return "", "", nil, nil
}

type defaultValue struct {
	value interface{}
}

func nonEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
