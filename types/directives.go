package types

// Directive locations from the closed set defined by the language.
const (
	DirectiveLocationQuery              = "QUERY"
	DirectiveLocationMutation           = "MUTATION"
	DirectiveLocationSubscription       = "SUBSCRIPTION"
	DirectiveLocationField              = "FIELD"
	DirectiveLocationFragmentDefinition = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     = "INLINE_FRAGMENT"
	DirectiveLocationVariableDefinition = "VARIABLE_DEFINITION"

	DirectiveLocationSchema               = "SCHEMA"
	DirectiveLocationScalar               = "SCALAR"
	DirectiveLocationObject               = "OBJECT"
	DirectiveLocationFieldDefinition      = "FIELD_DEFINITION"
	DirectiveLocationArgumentDefinition   = "ARGUMENT_DEFINITION"
	DirectiveLocationInterface            = "INTERFACE"
	DirectiveLocationUnion                = "UNION"
	DirectiveLocationEnum                 = "ENUM"
	DirectiveLocationEnumValue            = "ENUM_VALUE"
	DirectiveLocationInputObject          = "INPUT_OBJECT"
	DirectiveLocationInputFieldDefinition = "INPUT_FIELD_DEFINITION"
)

// Directive declares a directive: where it may appear and which arguments it
// takes.
type Directive struct {
	Name        string
	Description string
	Locations   []string
	Args        []*Argument
	Repeatable  bool
}

func (d *Directive) Argument(name string) (*Argument, bool) {
	for _, arg := range d.Args {
		if arg.Name == name {
			return arg, true
		}
	}
	return nil, false
}

// SkipDirective is the built-in @skip.
var SkipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Locations: []string{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []*Argument{
		{Name: "if", Type: NewNonNull(Boolean), Description: "Skipped when true."},
	},
}

// IncludeDirective is the built-in @include.
var IncludeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Locations: []string{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []*Argument{
		{Name: "if", Type: NewNonNull(Boolean), Description: "Included when true."},
	},
}

// DeprecatedDirective is the built-in @deprecated.
var DeprecatedDirective = &Directive{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Locations: []string{
		DirectiveLocationFieldDefinition,
		DirectiveLocationEnumValue,
	},
	Args: []*Argument{
		{
			Name:         "reason",
			Type:         String,
			DefaultValue: "No longer supported",
			HasDefault:   true,
			Description:  "Explains why this element was deprecated, usually also including a suggestion for how to access supported similar data. Formatted in [Markdown](https://commonmark.org/).",
		},
	},
}

// SpecifiedDirectives are attached to every schema unless overridden.
var SpecifiedDirectives = []*Directive{SkipDirective, IncludeDirective, DeprecatedDirective}
