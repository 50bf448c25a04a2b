// Package validation checks query documents against a schema before they
// execute. All rules run over a single traversal of the document, sharing one
// position tracker.
package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

// Rule is one validation rule. Visitor is called once per validation run; the
// returned visitor observes the shared traversal.
type Rule interface {
	Name() string
	Visitor(c *Context) ast.Visitor
}

// Specified returns the default rule set, covering the validation section of
// the GraphQL specification. The slice is fresh on every call; callers may
// append to it.
func Specified() []Rule {
	return []Rule{
		ruleExecutableDefinitions{},
		ruleUniqueOperationNames{},
		ruleLoneAnonymousOperation{},
		ruleSingleFieldSubscriptions{},
		ruleKnownTypeNames{},
		ruleFragmentsOnCompositeTypes{},
		ruleVariablesAreInputTypes{},
		ruleScalarLeafs{},
		ruleFieldsOnCorrectType{},
		ruleUniqueFragmentNames{},
		ruleKnownFragmentNames{},
		ruleNoUnusedFragments{},
		rulePossibleFragmentSpreads{},
		ruleNoFragmentCycles{},
		ruleUniqueVariableNames{},
		ruleNoUndefinedVariables{},
		ruleNoUnusedVariables{},
		ruleKnownDirectives{},
		ruleUniqueDirectivesPerLocation{},
		ruleKnownArgumentNames{},
		ruleUniqueArgumentNames{},
		ruleValuesOfCorrectType{},
		ruleProvidedRequiredArguments{},
		ruleVariablesInAllowedPosition{},
		ruleOverlappingFieldsCanBeMerged{},
		ruleUniqueInputFieldNames{},
	}
}

// Validate runs the rules against the document and returns every violation
// found. A nil rule slice means the specified rules; an empty one validates
// nothing. Variable values feed the complexity rules only.
func Validate(s *types.Schema, doc *ast.Document, variables map[string]interface{}, rules []Rule) []*errors.QueryError {
	if rules == nil {
		rules = Specified()
	}
	c := newContext(s, doc, variables)

	visitors := make([]ast.Visitor, len(rules))
	for i, rule := range rules {
		visitors[i] = rule.Visitor(c)
	}

	ast.Walk(doc, &parallelVisitor{c: c, visitors: visitors, skipping: make([]ast.Node, len(visitors))})
	return c.errs
}

// brokenSentinel marks a visitor that returned Break; it stays inactive for
// the rest of the walk.
var brokenSentinel = &ast.Document{}

// parallelVisitor drives every rule's visitor over one walk, honoring
// per-rule skip and break without affecting the others.
type parallelVisitor struct {
	c        *Context
	visitors []ast.Visitor
	skipping []ast.Node
}

func (p *parallelVisitor) Enter(node ast.Node) ast.Result {
	p.c.typeInfo.enter(node)
	p.c.record(node)
	for i, v := range p.visitors {
		if p.skipping[i] != nil {
			continue
		}
		switch r := v.Enter(node); r.Action {
		case ast.ActionSkip:
			p.skipping[i] = node
		case ast.ActionBreak:
			p.skipping[i] = brokenSentinel
		}
	}
	return ast.Continue()
}

func (p *parallelVisitor) Leave(node ast.Node) ast.Result {
	for i, v := range p.visitors {
		if p.skipping[i] == node {
			p.skipping[i] = nil
			continue
		}
		if p.skipping[i] != nil {
			continue
		}
		if r := v.Leave(node); r.Action == ast.ActionBreak {
			p.skipping[i] = brokenSentinel
		}
	}
	p.c.typeInfo.leave(node)
	return ast.Continue()
}
