package types

import (
	"fmt"
	"strings"
)

// validate checks the schema invariants: a query root exists, names are legal
// and unique, member types fit their positions, implementations are
// covariant, enums and input objects are well formed and non-null never wraps
// non-null. With a type loader only the reachable part can be checked.
func (s *Schema) validate() error {
	v := &schemaValidator{schema: s}

	if s.query == nil {
		v.reportf("Query root type must be provided.")
	}

	s.resolveTypes()
	for _, name := range s.conflicts {
		v.reportf("Schema must contain uniquely named types but contains multiple types named %q.", name)
	}

	for _, name := range s.typeNames {
		v.validateType(s.typeMap[name])
	}
	v.validateDirectives()

	if len(v.problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid schema:\n\t%s", strings.Join(v.problems, "\n\t"))
}

type schemaValidator struct {
	schema   *Schema
	problems []string
}

func (v *schemaValidator) reportf(format string, a ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, a...))
}

func (v *schemaValidator) validateType(t NamedType) {
	if !isIntrospectionType(t) && strings.HasPrefix(t.TypeName(), "__") {
		v.reportf("Name %q must not begin with \"__\", which is reserved by GraphQL introspection.", t.TypeName())
	}

	switch t := t.(type) {
	case *Object:
		v.validateFields(t.TypeName(), t.Fields())
		for _, iface := range t.Interfaces() {
			v.validateImplements(t.TypeName(), t, iface)
		}
	case *Interface:
		v.validateFields(t.TypeName(), t.Fields())
		for _, parent := range t.Interfaces() {
			if parent == t {
				v.reportf("Type %s cannot implement itself.", t.TypeName())
				continue
			}
			v.validateImplements(t.TypeName(), t, parent)
		}
	case *Union:
		if len(t.Types()) == 0 {
			v.reportf("Union type %s must define one or more member types.", t.TypeName())
		}
		seen := make(map[*Object]bool)
		for _, member := range t.Types() {
			if seen[member] {
				v.reportf("Union type %s can only include type %s once.", t.TypeName(), member.TypeName())
			}
			seen[member] = true
		}
	case *Enum:
		if len(t.Values()) == 0 {
			v.reportf("Enum type %s must define one or more values.", t.TypeName())
		}
		seen := make(map[string]bool)
		for _, val := range t.Values() {
			if seen[val.Name] {
				v.reportf("Enum type %s can include value %s only once.", t.TypeName(), val.Name)
			}
			seen[val.Name] = true
			switch val.Name {
			case "true", "false", "null":
				v.reportf("Enum type %s cannot include value: %s.", t.TypeName(), val.Name)
			}
		}
	case *InputObject:
		if len(t.Fields()) == 0 {
			v.reportf("Input Object type %s must define one or more fields.", t.TypeName())
		}
		seen := make(map[string]bool)
		for _, f := range t.Fields() {
			if seen[f.Name] {
				v.reportf("Input Object type %s can include field %s only once.", t.TypeName(), f.Name)
			}
			seen[f.Name] = true
			if f.Type == nil || !IsInputType(f.Type) {
				v.reportf("The type of %s.%s must be Input Type but got: %v.", t.TypeName(), f.Name, f.Type)
			}
			v.validateWrapping(fmt.Sprintf("%s.%s", t.TypeName(), f.Name), f.Type)
		}
		v.validateInputCycles(t)
	}
}

type fieldLister interface {
	Fields() []*FieldDefinition
	Field(name string) (*FieldDefinition, bool)
}

func (v *schemaValidator) validateFields(typeName string, fields []*FieldDefinition) {
	if len(fields) == 0 {
		v.reportf("Type %s must define one or more fields.", typeName)
		return
	}
	seen := make(map[string]bool)
	for _, f := range fields {
		if seen[f.Name] {
			v.reportf("Type %s can include field %s only once.", typeName, f.Name)
		}
		seen[f.Name] = true
		if strings.HasPrefix(f.Name, "__") {
			v.reportf("Name %q must not begin with \"__\", which is reserved by GraphQL introspection.", f.Name)
		}
		if f.Type == nil || !IsOutputType(f.Type) {
			v.reportf("The type of %s.%s must be Output Type but got: %v.", typeName, f.Name, f.Type)
		}
		v.validateWrapping(fmt.Sprintf("%s.%s", typeName, f.Name), f.Type)

		seenArgs := make(map[string]bool)
		for _, arg := range f.Args {
			if seenArgs[arg.Name] {
				v.reportf("Field %s.%s can include argument %s only once.", typeName, f.Name, arg.Name)
			}
			seenArgs[arg.Name] = true
			if arg.Type == nil || !IsInputType(arg.Type) {
				v.reportf("The type of %s.%s(%s:) must be Input Type but got: %v.", typeName, f.Name, arg.Name, arg.Type)
			}
			v.validateWrapping(fmt.Sprintf("%s.%s(%s:)", typeName, f.Name, arg.Name), arg.Type)
		}
	}
}

// validateImplements checks field covariance and argument compatibility of an
// implementation against its interface.
func (v *schemaValidator) validateImplements(implName string, impl fieldLister, iface *Interface) {
	for _, ifaceField := range iface.Fields() {
		implField, ok := impl.Field(ifaceField.Name)
		if !ok {
			v.reportf("Interface field %s.%s expected but %s does not provide it.", iface.TypeName(), ifaceField.Name, implName)
			continue
		}
		if !IsSubType(v.schema, ifaceField.Type, implField.Type) {
			v.reportf("Interface field %s.%s expects type %s but %s.%s is type %s, which is not a valid subtype.",
				iface.TypeName(), ifaceField.Name, ifaceField.Type, implName, ifaceField.Name, implField.Type)
		}
		for _, ifaceArg := range ifaceField.Args {
			implArg, ok := implField.Argument(ifaceArg.Name)
			if !ok {
				v.reportf("Interface field argument %s.%s(%s:) expected but %s.%s does not provide it.",
					iface.TypeName(), ifaceField.Name, ifaceArg.Name, implName, ifaceField.Name)
				continue
			}
			if implArg.Type.String() != ifaceArg.Type.String() {
				v.reportf("Interface field argument %s.%s(%s:) expects type %s but %s.%s(%s:) is type %s.",
					iface.TypeName(), ifaceField.Name, ifaceArg.Name, ifaceArg.Type,
					implName, ifaceField.Name, ifaceArg.Name, implArg.Type)
			}
		}
		for _, implArg := range implField.Args {
			if _, ok := ifaceField.Argument(implArg.Name); ok {
				continue
			}
			if _, nonNull := implArg.Type.(*NonNull); nonNull && !implArg.HasDefault {
				v.reportf("Argument %s.%s(%s:) must not be required type %s if not provided by the Interface field %s.%s.",
					implName, ifaceField.Name, implArg.Name, implArg.Type, iface.TypeName(), ifaceField.Name)
			}
		}
	}
}

// validateWrapping rejects non-null wrapping non-null anywhere in a type
// reference.
func (v *schemaValidator) validateWrapping(pos string, t Type) {
	for t != nil {
		switch w := t.(type) {
		case *NonNull:
			if inner, ok := w.OfType.(*NonNull); ok {
				v.reportf("Expected %s at %s to be a nullable type.", inner, pos)
			}
			t = w.OfType
		case *List:
			t = w.OfType
		default:
			return
		}
	}
}

// validateInputCycles rejects input objects that reference themselves through
// an unbroken chain of non-null fields.
func (v *schemaValidator) validateInputCycles(root *InputObject) {
	var chain []string
	onPath := make(map[*InputObject]bool)

	var visit func(t *InputObject) bool
	visit = func(t *InputObject) bool {
		if onPath[t] {
			if t == root {
				v.reportf("Cannot reference Input Object %q within itself through a series of non-null fields: %q.",
					root.TypeName(), strings.Join(chain, "."))
				return true
			}
			return false
		}
		onPath[t] = true
		defer func() { onPath[t] = false }()
		for _, f := range t.Fields() {
			nn, ok := f.Type.(*NonNull)
			if !ok {
				continue
			}
			next, ok := nn.OfType.(*InputObject)
			if !ok {
				continue
			}
			chain = append(chain, f.Name)
			if visit(next) {
				return true
			}
			chain = chain[:len(chain)-1]
		}
		return false
	}
	visit(root)
}

func (v *schemaValidator) validateDirectives() {
	seen := make(map[string]bool)
	for _, d := range v.schema.directives {
		if d.Name == "" {
			v.reportf("Directive must be named.")
			continue
		}
		if seen[d.Name] {
			v.reportf("Schema must contain uniquely named directives but contains multiple directives named @%s.", d.Name)
		}
		seen[d.Name] = true
		if len(d.Locations) == 0 {
			v.reportf("Directive @%s must include one or more locations.", d.Name)
		}
		seenArgs := make(map[string]bool)
		for _, arg := range d.Args {
			if seenArgs[arg.Name] {
				v.reportf("Directive @%s can include argument %s only once.", d.Name, arg.Name)
			}
			seenArgs[arg.Name] = true
			if arg.Type == nil || !IsInputType(arg.Type) {
				v.reportf("The type of @%s(%s:) must be Input Type but got: %v.", d.Name, arg.Name, arg.Type)
			}
		}
	}
}
