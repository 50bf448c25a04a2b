package validation

import (
	"strings"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleKnownFragmentNames struct{}

func (ruleKnownFragmentNames) Name() string { return "KnownFragmentNames" }

func (r ruleKnownFragmentNames) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			spread, ok := node.(*ast.FragmentSpread)
			if !ok {
				return ast.Continue()
			}
			if c.Fragment(spread.Name.Name) == nil {
				c.Report(r.Name(), []errors.Location{spread.Name.Loc}, "Unknown fragment %q.", spread.Name.Name)
			}
			return ast.Continue()
		},
	}
}

type ruleUniqueFragmentNames struct{}

func (ruleUniqueFragmentNames) Name() string { return "UniqueFragmentNames" }

func (r ruleUniqueFragmentNames) Visitor(c *Context) ast.Visitor {
	seen := make(map[string]bool)
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			frag, ok := node.(*ast.FragmentDefinition)
			if !ok {
				return ast.Continue()
			}
			if seen[frag.Name.Name] {
				c.Report(r.Name(), []errors.Location{frag.Name.Loc}, "There can be only one fragment named %q.", frag.Name.Name)
			}
			seen[frag.Name.Name] = true
			return ast.Continue()
		},
	}
}

type ruleFragmentsOnCompositeTypes struct{}

func (ruleFragmentsOnCompositeTypes) Name() string { return "FragmentsOnCompositeTypes" }

func (r ruleFragmentsOnCompositeTypes) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.FragmentDefinition:
				t := c.Schema.GetType(n.TypeCondition.Name.Name)
				if t != nil && !types.IsCompositeType(t) {
					c.Report(r.Name(), []errors.Location{n.TypeCondition.Loc},
						"Fragment %q cannot condition on non composite type %q.", n.Name.Name, n.TypeCondition.Name.Name)
				}
			case *ast.InlineFragment:
				if n.TypeCondition == nil {
					break
				}
				t := c.Schema.GetType(n.TypeCondition.Name.Name)
				if t != nil && !types.IsCompositeType(t) {
					c.Report(r.Name(), []errors.Location{n.TypeCondition.Loc},
						"Fragment cannot condition on non composite type %q.", n.TypeCondition.Name.Name)
				}
			}
			return ast.Continue()
		},
	}
}

type ruleNoUnusedFragments struct{}

func (ruleNoUnusedFragments) Name() string { return "NoUnusedFragments" }

func (r ruleNoUnusedFragments) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			if _, ok := node.(*ast.Document); !ok {
				return ast.Continue()
			}
			used := make(map[string]bool)
			for _, def := range c.Document.Definitions {
				if op, isOp := def.(*ast.OperationDefinition); isOp {
					for _, spread := range c.RecursiveSpreads(op) {
						used[spread.Name.Name] = true
					}
				}
			}
			for _, def := range c.Document.Definitions {
				if frag, isFrag := def.(*ast.FragmentDefinition); isFrag && !used[frag.Name.Name] {
					c.Report(r.Name(), []errors.Location{frag.Loc}, "Fragment %q is never used.", frag.Name.Name)
				}
			}
			return ast.Continue()
		},
	}
}

type rulePossibleFragmentSpreads struct{}

func (rulePossibleFragmentSpreads) Name() string { return "PossibleFragmentSpreads" }

func (r rulePossibleFragmentSpreads) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			switch n := node.(type) {
			case *ast.InlineFragment:
				if n.TypeCondition == nil {
					break
				}
				parent := c.ParentType()
				frag, _ := c.Schema.GetType(n.TypeCondition.Name.Name).(types.Composite)
				if parent == nil || frag == nil {
					break
				}
				if !types.Overlap(c.Schema, parent, frag) {
					c.Report(r.Name(), []errors.Location{n.Loc},
						"Fragment cannot be spread here as objects of type %q can never be of type %q.", parent.TypeName(), frag.TypeName())
				}
			case *ast.FragmentSpread:
				fragDef := c.Fragment(n.Name.Name)
				if fragDef == nil {
					break
				}
				parent := c.ParentType()
				frag, _ := c.Schema.GetType(fragDef.TypeCondition.Name.Name).(types.Composite)
				if parent == nil || frag == nil {
					break
				}
				if !types.Overlap(c.Schema, parent, frag) {
					c.Report(r.Name(), []errors.Location{n.Loc},
						"Fragment %q cannot be spread here as objects of type %q can never be of type %q.", n.Name.Name, parent.TypeName(), frag.TypeName())
				}
			}
			return ast.Continue()
		},
	}
}

type ruleNoFragmentCycles struct{}

func (ruleNoFragmentCycles) Name() string { return "NoFragmentCycles" }

func (r ruleNoFragmentCycles) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			if _, ok := node.(*ast.Document); !ok {
				return ast.Continue()
			}
			state := &cycleState{
				c:         c,
				visited:   make(map[string]bool),
				pathIndex: make(map[string]int),
			}
			for _, def := range c.Document.Definitions {
				if frag, isFrag := def.(*ast.FragmentDefinition); isFrag && !state.visited[frag.Name.Name] {
					state.detect(r.Name(), frag)
				}
			}
			return ast.Continue()
		},
	}
}

type cycleState struct {
	c         *Context
	visited   map[string]bool
	path      []*ast.FragmentSpread
	pathIndex map[string]int
}

// detect walks the spread graph depth first. A spread whose target is
// already on the path closes a cycle; the segment of the path from that
// target onward is the "via" chain.
func (s *cycleState) detect(rule string, frag *ast.FragmentDefinition) {
	s.visited[frag.Name.Name] = true
	s.pathIndex[frag.Name.Name] = len(s.path)

	for _, spread := range s.c.spreads[frag] {
		name := spread.Name.Name
		cycleIndex, cycling := s.pathIndex[name]
		if !cycling {
			s.path = append(s.path, spread)
			if !s.visited[name] {
				if target := s.c.Fragment(name); target != nil {
					s.detect(rule, target)
				}
			}
			s.path = s.path[:len(s.path)-1]
			continue
		}

		cyclePath := s.path[cycleIndex:]
		locs := make([]errors.Location, 0, len(cyclePath)+1)
		via := make([]string, 0, len(cyclePath))
		for _, sp := range cyclePath {
			locs = append(locs, sp.Loc)
			via = append(via, `"`+sp.Name.Name+`"`)
		}
		locs = append(locs, spread.Loc)
		if len(via) == 0 {
			s.c.ReportOnce(rule, locs, "Cannot spread fragment %q within itself.", name)
		} else {
			s.c.ReportOnce(rule, locs, "Cannot spread fragment %q within itself via %s.", name, strings.Join(via, ", "))
		}
	}

	delete(s.pathIndex, frag.Name.Name)
}
