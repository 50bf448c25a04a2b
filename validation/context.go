package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

// Context is shared by all rules during one validation run. It exposes the
// schema, the document, the position tracker and the collected errors.
type Context struct {
	Schema   *types.Schema
	Document *ast.Document
	// Variables are the request's variable values; only the complexity rules
	// look at them.
	Variables map[string]interface{}

	typeInfo  *TypeInfo
	fragments map[string]*ast.FragmentDefinition
	errs      []*errors.QueryError

	// usages and spreads are recorded per executable definition while
	// walking; the variable rules consume them at document leave.
	usages  map[ast.Definition][]*VariableUsage
	spreads map[ast.Definition][]*ast.FragmentSpread
	current ast.Definition

	reported map[string]bool
}

// VariableUsage is one occurrence of $name inside a definition.
type VariableUsage struct {
	Name string
	Loc  errors.Location
	// Type is the input type expected at the position of use; nil when the
	// position itself did not validate.
	Type types.Input
	// HasLocationDefault is true when the argument or input field at the
	// position of use declares a default value.
	HasLocationDefault bool
}

func newContext(s *types.Schema, doc *ast.Document, variables map[string]interface{}) *Context {
	c := &Context{
		Schema:    s,
		Document:  doc,
		Variables: variables,
		typeInfo:  newTypeInfo(s),
		fragments: make(map[string]*ast.FragmentDefinition),
		usages:    make(map[ast.Definition][]*VariableUsage),
		spreads:   make(map[ast.Definition][]*ast.FragmentSpread),
		reported:  make(map[string]bool),
	}
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok {
			if _, exists := c.fragments[frag.Name.Name]; !exists {
				c.fragments[frag.Name.Name] = frag
			}
		}
	}
	return c
}

// Fragment returns the named fragment definition, or nil.
func (c *Context) Fragment(name string) *ast.FragmentDefinition {
	return c.fragments[name]
}

// Report records a validation error.
func (c *Context) Report(rule string, locs []errors.Location, format string, a ...interface{}) {
	qe := errors.Errorf(format, a...)
	qe.Rule = rule
	qe.Locations = locs
	c.errs = append(c.errs, qe)
}

// ReportOnce is Report with duplicate suppression; some rules reach the same
// conflict through more than one path.
func (c *Context) ReportOnce(rule string, locs []errors.Location, format string, a ...interface{}) {
	qe := errors.Errorf(format, a...)
	qe.Rule = rule
	qe.Locations = locs
	key := qe.Error()
	if c.reported[key] {
		return
	}
	c.reported[key] = true
	c.errs = append(c.errs, qe)
}

// Type is the output type at the current position.
func (c *Context) Type() types.Output { return c.typeInfo.Type() }

// ParentType is the composite type whose selection set is being walked.
func (c *Context) ParentType() types.Composite { return c.typeInfo.ParentType() }

// InputType is the input type at the current position.
func (c *Context) InputType() types.Input { return c.typeInfo.InputType() }

// FieldDef is the definition of the field being walked, nil for unknown
// fields.
func (c *Context) FieldDef() *types.FieldDefinition { return c.typeInfo.FieldDef() }

// Directive is the definition of the directive being walked.
func (c *Context) Directive() *types.Directive { return c.typeInfo.CurrentDirective() }

// Argument is the definition of the argument being walked.
func (c *Context) Argument() *types.Argument { return c.typeInfo.CurrentArgument() }

// Usages lists the variable usages directly inside def.
func (c *Context) Usages(def ast.Definition) []*VariableUsage {
	return c.usages[def]
}

// RecursiveUsages lists variable usages inside def and every fragment
// transitively spread from it.
func (c *Context) RecursiveUsages(def ast.Definition) []*VariableUsage {
	var out []*VariableUsage
	seen := make(map[ast.Definition]bool)
	var visit func(d ast.Definition)
	visit = func(d ast.Definition) {
		if seen[d] {
			return
		}
		seen[d] = true
		out = append(out, c.usages[d]...)
		for _, spread := range c.spreads[d] {
			if frag := c.Fragment(spread.Name.Name); frag != nil {
				visit(frag)
			}
		}
	}
	visit(def)
	return out
}

// RecursiveSpreads lists the fragment spreads inside def and every fragment
// transitively spread from it.
func (c *Context) RecursiveSpreads(def ast.Definition) []*ast.FragmentSpread {
	var out []*ast.FragmentSpread
	seen := make(map[ast.Definition]bool)
	var visit func(d ast.Definition)
	visit = func(d ast.Definition) {
		if seen[d] {
			return
		}
		seen[d] = true
		for _, spread := range c.spreads[d] {
			out = append(out, spread)
			if frag := c.Fragment(spread.Name.Name); frag != nil {
				visit(frag)
			}
		}
	}
	visit(def)
	return out
}

// record is driven by the shared walker, independent of any rule.
func (c *Context) record(node ast.Node) {
	switch n := node.(type) {
	case *ast.OperationDefinition:
		c.current = n
	case *ast.FragmentDefinition:
		c.current = n
	case *ast.FragmentSpread:
		if c.current != nil {
			c.spreads[c.current] = append(c.spreads[c.current], n)
		}
	case *ast.Variable:
		if c.current != nil {
			c.usages[c.current] = append(c.usages[c.current], &VariableUsage{
				Name:               n.Name.Name,
				Loc:                n.Loc,
				Type:               c.typeInfo.InputType(),
				HasLocationDefault: c.typeInfo.HasLocationDefault(),
			})
		}
	}
}
