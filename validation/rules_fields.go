package validation

import (
	"fmt"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/suggestion"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleKnownTypeNames struct{}

func (ruleKnownTypeNames) Name() string { return "KnownTypeNames" }

func (r ruleKnownTypeNames) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			named, ok := node.(*ast.Named)
			if !ok {
				return ast.Continue()
			}
			if c.Schema.GetType(named.Name.Name) != nil {
				return ast.Continue()
			}
			msg := fmt.Sprintf("Unknown type %q.", named.Name.Name)
			msg += suggestion.DidYouMean(suggestion.List(named.Name.Name, c.Schema.TypeNames()))
			c.Report(r.Name(), []errors.Location{named.Loc}, "%s", msg)
			return ast.Continue()
		},
	}
}

type ruleFieldsOnCorrectType struct{}

func (ruleFieldsOnCorrectType) Name() string { return "FieldsOnCorrectType" }

func (r ruleFieldsOnCorrectType) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			field, ok := node.(*ast.Field)
			if !ok {
				return ast.Continue()
			}
			parent := c.ParentType()
			if parent == nil || c.FieldDef() != nil {
				return ast.Continue()
			}
			msg := fmt.Sprintf("Cannot query field %q on type %q.", field.Name.Name, parent.TypeName())
			if sugg := r.suggestions(c, parent, field.Name.Name); sugg != "" {
				msg += sugg
			}
			c.Report(r.Name(), []errors.Location{field.Loc}, "%s", msg)
			return ast.Continue()
		},
	}
}

func (ruleFieldsOnCorrectType) suggestions(c *Context, parent types.Composite, name string) string {
	var fieldNames []string
	switch parent := parent.(type) {
	case *types.Object:
		for _, f := range parent.Fields() {
			fieldNames = append(fieldNames, f.Name)
		}
	case *types.Interface:
		for _, f := range parent.Fields() {
			fieldNames = append(fieldNames, f.Name)
		}
	}
	if sugg := suggestion.List(name, fieldNames); len(sugg) > 0 {
		return suggestion.DidYouMean(sugg)
	}

	// No close field; maybe the field exists on a possible type and an
	// inline fragment is missing.
	if ab, ok := parent.(types.Abstract); ok {
		var typeNames []string
		for _, obj := range c.Schema.PossibleTypes(ab) {
			if _, found := obj.Field(name); found {
				typeNames = append(typeNames, obj.TypeName())
			}
		}
		if len(typeNames) > 0 {
			return " Did you mean to use an inline fragment on " + suggestion.QuotedOrList(typeNames) + "?"
		}
	}
	return ""
}

type ruleScalarLeafs struct{}

func (ruleScalarLeafs) Name() string { return "ScalarLeafs" }

func (r ruleScalarLeafs) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			field, ok := node.(*ast.Field)
			if !ok {
				return ast.Continue()
			}
			t := c.Type()
			if t == nil {
				return ast.Continue()
			}
			named := types.Named(t)
			if types.IsLeafType(named) {
				if field.SelectionSet != nil {
					c.Report(r.Name(), []errors.Location{field.SelectionSet.Loc},
						"Field %q must not have a selection since type %q has no subfields.", field.Name.Name, t.String())
				}
				return ast.Continue()
			}
			if field.SelectionSet == nil {
				c.Report(r.Name(), []errors.Location{field.Loc},
					"Field %q of type %q must have a selection of subfields. Did you mean \"%s { ... }\"?", field.Name.Name, t.String(), field.Name.Name)
			}
			return ast.Continue()
		},
	}
}
