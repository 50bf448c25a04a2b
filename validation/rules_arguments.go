package validation

import (
	"fmt"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/suggestion"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleKnownArgumentNames struct{}

func (ruleKnownArgumentNames) Name() string { return "KnownArgumentNames" }

func (r ruleKnownArgumentNames) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			arg, ok := node.(*ast.Argument)
			if !ok {
				return ast.Continue()
			}
			if c.Argument() != nil {
				return ast.Continue()
			}
			if d := c.Directive(); d != nil {
				names := make([]string, len(d.Args))
				for i, a := range d.Args {
					names[i] = a.Name
				}
				msg := fmt.Sprintf("Unknown argument %q on directive \"@%s\".", arg.Name.Name, d.Name)
				msg += suggestion.DidYouMean(suggestion.List(arg.Name.Name, names))
				c.Report(r.Name(), []errors.Location{arg.Loc}, "%s", msg)
				return ast.Continue()
			}
			fd := c.FieldDef()
			parent := c.ParentType()
			if fd == nil || parent == nil {
				return ast.Continue()
			}
			names := make([]string, len(fd.Args))
			for i, a := range fd.Args {
				names[i] = a.Name
			}
			msg := fmt.Sprintf("Unknown argument %q on field \"%s.%s\".", arg.Name.Name, parent.TypeName(), fd.Name)
			msg += suggestion.DidYouMean(suggestion.List(arg.Name.Name, names))
			c.Report(r.Name(), []errors.Location{arg.Loc}, "%s", msg)
			return ast.Continue()
		},
	}
}

type ruleUniqueArgumentNames struct{}

func (ruleUniqueArgumentNames) Name() string { return "UniqueArgumentNames" }

func (r ruleUniqueArgumentNames) Visitor(c *Context) ast.Visitor {
	check := func(args ast.ArgumentList) {
		seen := make(map[string]bool, len(args))
		for _, arg := range args {
			if seen[arg.Name.Name] {
				c.Report(r.Name(), []errors.Location{arg.Name.Loc}, "There can be only one argument named %q.", arg.Name.Name)
			}
			seen[arg.Name.Name] = true
		}
	}
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.Field:
				check(n.Arguments)
			case *ast.Directive:
				check(n.Arguments)
			}
			return ast.Continue()
		},
	}
}

type ruleProvidedRequiredArguments struct{}

func (ruleProvidedRequiredArguments) Name() string { return "ProvidedRequiredArguments" }

func (r ruleProvidedRequiredArguments) Visitor(c *Context) ast.Visitor {
	missing := func(argDefs []*types.Argument, written ast.ArgumentList) []*types.Argument {
		var out []*types.Argument
		for _, def := range argDefs {
			if _, nonNull := def.Type.(*types.NonNull); !nonNull || def.HasDefault {
				continue
			}
			if _, ok := written.Get(def.Name); !ok {
				out = append(out, def)
			}
		}
		return out
	}
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.Field:
				fd := c.FieldDef()
				parent := c.ParentType()
				if fd == nil || parent == nil {
					break
				}
				for _, def := range missing(fd.Args, n.Arguments) {
					c.Report(r.Name(), []errors.Location{n.Loc},
						"Field %q argument %q of type %q is required, but it was not provided.", fd.Name, def.Name, def.Type.String())
				}
			case *ast.Directive:
				d := c.Directive()
				if d == nil {
					break
				}
				for _, def := range missing(d.Args, n.Arguments) {
					c.Report(r.Name(), []errors.Location{n.Loc},
						"Directive \"@%s\" argument %q of type %q is required, but it was not provided.", d.Name, def.Name, def.Type.String())
				}
			}
			return ast.Continue()
		},
	}
}

type ruleValuesOfCorrectType struct{}

func (ruleValuesOfCorrectType) Name() string { return "ValuesOfCorrectType" }

func (r ruleValuesOfCorrectType) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			value, ok := node.(ast.Value)
			if !ok {
				return ast.Continue()
			}
			if _, isVar := value.(*ast.Variable); isVar {
				return ast.Skip()
			}
			t := c.InputType()
			if t == nil {
				return ast.Continue()
			}
			if nn, isNonNull := t.(*types.NonNull); isNonNull {
				if _, isNull := value.(*ast.NullValue); isNull {
					c.Report(r.Name(), []errors.Location{value.Location()},
						"Expected value of type %q, found %s.", nn.String(), value.String())
					return ast.Skip()
				}
				inner, isInput := nn.OfType.(types.Input)
				if !isInput {
					return ast.Continue()
				}
				t = inner
			}

			switch t := t.(type) {
			case *types.List:
				return ast.Continue()
			case *types.InputObject:
				obj, isObj := value.(*ast.ObjectValue)
				if !isObj {
					if _, isNull := value.(*ast.NullValue); !isNull {
						c.Report(r.Name(), []errors.Location{value.Location()},
							"Expected value of type %q, found %s.", t.String(), value.String())
						return ast.Skip()
					}
					return ast.Continue()
				}
				r.checkObject(c, t, obj)
				return ast.Continue()
			}

			// Leaf position: nulls pass, everything else must coerce.
			if _, isNull := value.(*ast.NullValue); isNull {
				return ast.Continue()
			}
			r.checkLeaf(c, t, value)
			return ast.Skip()
		},
	}
}

func (r ruleValuesOfCorrectType) checkObject(c *Context, t *types.InputObject, obj *ast.ObjectValue) {
	written := make(map[string]bool, len(obj.Fields))
	for _, f := range obj.Fields {
		written[f.Name.Name] = true
		if _, defined := t.Field(f.Name.Name); defined {
			continue
		}
		names := make([]string, 0, len(t.Fields()))
		for _, def := range t.Fields() {
			names = append(names, def.Name)
		}
		msg := fmt.Sprintf("Field %q is not defined by type %q.", f.Name.Name, t.String())
		msg += suggestion.DidYouMean(suggestion.List(f.Name.Name, names))
		c.Report(r.Name(), []errors.Location{f.Loc}, "%s", msg)
	}
	for _, def := range t.Fields() {
		if written[def.Name] {
			continue
		}
		if _, nonNull := def.Type.(*types.NonNull); nonNull && !def.HasDefault {
			c.Report(r.Name(), []errors.Location{obj.Loc},
				"Field \"%s.%s\" of required type %q was not provided.", t.String(), def.Name, def.Type.String())
		}
	}
}

func (r ruleValuesOfCorrectType) checkLeaf(c *Context, t types.Input, value ast.Value) {
	switch t := types.Named(t).(type) {
	case *types.Enum:
		ev, isEnum := value.(*ast.EnumValue)
		if !isEnum {
			names := r.enumNames(t)
			msg := fmt.Sprintf("Enum %q cannot represent non-enum value: %s.", t.String(), value.String())
			if s, isStr := value.(*ast.StringValue); isStr {
				if sugg := suggestion.List(s.Value, names); len(sugg) > 0 {
					msg += " Did you mean the enum value " + suggestion.QuotedOrList(sugg) + "?"
				}
			}
			c.Report(r.Name(), []errors.Location{value.Location()}, "%s", msg)
			return
		}
		if _, defined := t.Value(ev.Value); !defined {
			msg := fmt.Sprintf("Value %q does not exist in %q enum.", ev.Value, t.String())
			if sugg := suggestion.List(ev.Value, r.enumNames(t)); len(sugg) > 0 {
				msg += " Did you mean the enum value " + suggestion.QuotedOrList(sugg) + "?"
			}
			c.Report(r.Name(), []errors.Location{value.Location()}, "%s", msg)
		}
	case *types.Scalar:
		if !t.HasLiteralParser() {
			return
		}
		if _, err := t.ParseLiteral(value); err != nil {
			c.Report(r.Name(), []errors.Location{value.Location()}, "%s", err.Error())
		}
	}
}

func (ruleValuesOfCorrectType) enumNames(t *types.Enum) []string {
	names := make([]string, len(t.Values()))
	for i, v := range t.Values() {
		names[i] = v.Name
	}
	return names
}

type ruleUniqueInputFieldNames struct{}

func (ruleUniqueInputFieldNames) Name() string { return "UniqueInputFieldNames" }

func (r ruleUniqueInputFieldNames) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			obj, ok := node.(*ast.ObjectValue)
			if !ok {
				return ast.Continue()
			}
			seen := make(map[string]bool, len(obj.Fields))
			for _, f := range obj.Fields {
				if seen[f.Name.Name] {
					c.Report(r.Name(), []errors.Location{f.Name.Loc}, "There can be only one input field named %q.", f.Name.Name)
				}
				seen[f.Name.Name] = true
			}
			return ast.Continue()
		},
	}
}
