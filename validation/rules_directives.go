package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleKnownDirectives struct{}

func (ruleKnownDirectives) Name() string { return "KnownDirectives" }

func (r ruleKnownDirectives) Visitor(c *Context) ast.Visitor {
	// locations mirrors the walk: the innermost ancestor determines where a
	// directive sits.
	var locations []string
	push := func(loc string) { locations = append(locations, loc) }

	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.OperationDefinition:
				switch n.Operation {
				case ast.Query:
					push(types.DirectiveLocationQuery)
				case ast.Mutation:
					push(types.DirectiveLocationMutation)
				case ast.Subscription:
					push(types.DirectiveLocationSubscription)
				}
			case *ast.Field:
				push(types.DirectiveLocationField)
			case *ast.FragmentDefinition:
				push(types.DirectiveLocationFragmentDefinition)
			case *ast.FragmentSpread:
				push(types.DirectiveLocationFragmentSpread)
			case *ast.InlineFragment:
				push(types.DirectiveLocationInlineFragment)
			case *ast.VariableDefinition:
				push(types.DirectiveLocationVariableDefinition)
			case *ast.Directive:
				d, known := c.Schema.Directive(n.Name.Name)
				if !known {
					c.Report(r.Name(), []errors.Location{n.Loc}, "Unknown directive \"@%s\".", n.Name.Name)
					break
				}
				if len(locations) == 0 {
					break
				}
				here := locations[len(locations)-1]
				allowed := false
				for _, loc := range d.Locations {
					if loc == here {
						allowed = true
						break
					}
				}
				if !allowed {
					c.Report(r.Name(), []errors.Location{n.Loc}, "Directive \"@%s\" may not be used on %s.", d.Name, here)
				}
			}
			return ast.Continue()
		},
		LeaveFn: func(node ast.Node) ast.Result {
			switch node.(type) {
			case *ast.OperationDefinition, *ast.Field, *ast.FragmentDefinition,
				*ast.FragmentSpread, *ast.InlineFragment, *ast.VariableDefinition:
				if len(locations) > 0 {
					locations = locations[:len(locations)-1]
				}
			}
			return ast.Continue()
		},
	}
}

type ruleUniqueDirectivesPerLocation struct{}

func (ruleUniqueDirectivesPerLocation) Name() string { return "UniqueDirectivesPerLocation" }

func (r ruleUniqueDirectivesPerLocation) Visitor(c *Context) ast.Visitor {
	check := func(dirs ast.DirectiveList) {
		seen := make(map[string]bool, len(dirs))
		for _, d := range dirs {
			if def, known := c.Schema.Directive(d.Name.Name); known && def.Repeatable {
				continue
			}
			if seen[d.Name.Name] {
				c.Report(r.Name(), []errors.Location{d.Loc}, "The directive \"@%s\" can only be used once at this location.", d.Name.Name)
			}
			seen[d.Name.Name] = true
		}
	}
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.OperationDefinition:
				check(n.Directives)
			case *ast.Field:
				check(n.Directives)
			case *ast.FragmentDefinition:
				check(n.Directives)
			case *ast.FragmentSpread:
				check(n.Directives)
			case *ast.InlineFragment:
				check(n.Directives)
			case *ast.VariableDefinition:
				check(n.Directives)
			}
			return ast.Continue()
		},
	}
}
