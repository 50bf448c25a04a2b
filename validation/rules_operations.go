package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
)

type ruleExecutableDefinitions struct{}

func (ruleExecutableDefinitions) Name() string { return "ExecutableDefinitions" }

func (r ruleExecutableDefinitions) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			doc, ok := node.(*ast.Document)
			if !ok {
				return ast.Skip()
			}
			for _, def := range doc.Definitions {
				switch def := def.(type) {
				case *ast.SchemaDefinition:
					c.Report(r.Name(), []errors.Location{def.Loc}, "The schema definition is not executable.")
				case *ast.TypeDefinition:
					c.Report(r.Name(), []errors.Location{def.Loc}, "The %q definition is not executable.", def.Name.Name)
				}
			}
			return ast.Continue()
		},
	}
}

type ruleUniqueOperationNames struct{}

func (ruleUniqueOperationNames) Name() string { return "UniqueOperationNames" }

func (r ruleUniqueOperationNames) Visitor(c *Context) ast.Visitor {
	seen := make(map[string]bool)
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				if _, isDoc := node.(*ast.Document); isDoc {
					return ast.Continue()
				}
				return ast.Skip()
			}
			if op.Name.Name == "" {
				return ast.Skip()
			}
			if seen[op.Name.Name] {
				c.Report(r.Name(), []errors.Location{op.Name.Loc}, "There can be only one operation named %q.", op.Name.Name)
			}
			seen[op.Name.Name] = true
			return ast.Skip()
		},
	}
}

type ruleLoneAnonymousOperation struct{}

func (ruleLoneAnonymousOperation) Name() string { return "LoneAnonymousOperation" }

func (r ruleLoneAnonymousOperation) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			doc, ok := node.(*ast.Document)
			if !ok {
				return ast.Skip()
			}
			opCount := 0
			for _, def := range doc.Definitions {
				if _, isOp := def.(*ast.OperationDefinition); isOp {
					opCount++
				}
			}
			if opCount <= 1 {
				return ast.Skip()
			}
			for _, def := range doc.Definitions {
				if op, isOp := def.(*ast.OperationDefinition); isOp && op.Name.Name == "" {
					c.Report(r.Name(), []errors.Location{op.Loc}, "This anonymous operation must be the only defined operation.")
				}
			}
			return ast.Skip()
		},
	}
}

type ruleSingleFieldSubscriptions struct{}

func (ruleSingleFieldSubscriptions) Name() string { return "SingleFieldSubscriptions" }

func (r ruleSingleFieldSubscriptions) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				if _, isDoc := node.(*ast.Document); isDoc {
					return ast.Continue()
				}
				return ast.Skip()
			}
			if op.Operation != ast.Subscription || op.SelectionSet == nil {
				return ast.Skip()
			}
			fields := r.rootFields(c, op.SelectionSet, make(map[string]bool))
			if len(fields) > 1 {
				locs := make([]errors.Location, len(fields[1:]))
				for i, f := range fields[1:] {
					locs[i] = f.Loc
				}
				if op.Name.Name == "" {
					c.Report(r.Name(), locs, "Anonymous Subscription must select only one top level field.")
				} else {
					c.Report(r.Name(), locs, "Subscription %q must select only one top level field.", op.Name.Name)
				}
			}
			return ast.Skip()
		},
	}
}

// rootFields flattens the top level of a subscription through fragments.
func (r ruleSingleFieldSubscriptions) rootFields(c *Context, set *ast.SelectionSet, visited map[string]bool) []*ast.Field {
	var out []*ast.Field
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			out = append(out, sel)
		case *ast.InlineFragment:
			if sel.SelectionSet != nil {
				out = append(out, r.rootFields(c, sel.SelectionSet, visited)...)
			}
		case *ast.FragmentSpread:
			if visited[sel.Name.Name] {
				continue
			}
			visited[sel.Name.Name] = true
			if frag := c.Fragment(sel.Name.Name); frag != nil {
				out = append(out, r.rootFields(c, frag.SelectionSet, visited)...)
			}
		}
	}
	return out
}
