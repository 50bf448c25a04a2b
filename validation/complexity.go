package validation

import (
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/internal/coerce"
	"github.com/ScyllaDigital/graphql-go/types"
)

// Disabled turns off a limit rule when passed to NewQueryComplexity or
// NewQueryDepth.
const Disabled = -1

// NewQueryComplexity returns a rule that rejects operations whose additive
// complexity score exceeds max. A field scores 1 plus the sum of its
// children unless its definition carries a Complexity func, which then
// receives the child score and the coerced argument values.
func NewQueryComplexity(max int) (Rule, error) {
	if max < Disabled {
		return nil, pkgerrors.New("argument must be greater or equal to 0.")
	}
	return ruleQueryComplexity{max: max}, nil
}

// NewQueryDepth returns a rule that rejects operations nested deeper than
// max levels of fields. Introspection subtrees are not counted.
func NewQueryDepth(max int) (Rule, error) {
	if max < Disabled {
		return nil, pkgerrors.New("argument must be greater or equal to 0.")
	}
	return ruleQueryDepth{max: max}, nil
}

type ruleQueryComplexity struct {
	max int
}

func (ruleQueryComplexity) Name() string { return "QueryComplexity" }

func (r ruleQueryComplexity) Visitor(c *Context) ast.Visitor {
	if r.max == Disabled {
		return ast.FuncVisitor{}
	}
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				return ast.Continue()
			}
			w := limitWalker{c: c, onPath: make(map[string]bool)}
			got := w.complexity(operationRoot(c, op), op.SelectionSet)
			if got > r.max {
				c.Report(r.Name(), []errors.Location{op.Loc},
					"Max query complexity should be %d but got %d.", r.max, got)
			}
			return ast.Skip()
		},
	}
}

type ruleQueryDepth struct {
	max int
}

func (ruleQueryDepth) Name() string { return "QueryDepth" }

func (r ruleQueryDepth) Visitor(c *Context) ast.Visitor {
	if r.max == Disabled {
		return ast.FuncVisitor{}
	}
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				return ast.Continue()
			}
			w := limitWalker{c: c, onPath: make(map[string]bool)}
			got := w.depth(op.SelectionSet)
			if got > r.max {
				c.Report(r.Name(), []errors.Location{op.Loc},
					"Max query depth should be %d but got %d.", r.max, got)
			}
			return ast.Skip()
		},
	}
}

// limitWalker expands fragments while scoring; onPath guards against spread
// cycles, which are reported by their own rule.
type limitWalker struct {
	c      *Context
	onPath map[string]bool
}

func (w limitWalker) complexity(parent types.Composite, set *ast.SelectionSet) int {
	if set == nil {
		return 0
	}
	total := 0
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			if w.skipped(sel.Directives) {
				continue
			}
			var def *types.FieldDefinition
			if parent != nil {
				def = FieldDef(w.c.Schema, parent, sel.Name.Name)
			}
			var next types.Composite
			if def != nil {
				next, _ = types.Named(def.Type).(types.Composite)
			}
			child := w.complexity(next, sel.SelectionSet)
			if def != nil && def.Complexity != nil {
				args, _ := coerce.ArgumentValues(def.Args, sel.Arguments, w.c.Variables)
				total += def.Complexity(child, args)
			} else {
				total += 1 + child
			}
		case *ast.InlineFragment:
			if w.skipped(sel.Directives) {
				continue
			}
			next := parent
			if sel.TypeCondition != nil {
				next, _ = w.c.Schema.GetType(sel.TypeCondition.Name.Name).(types.Composite)
			}
			total += w.complexity(next, sel.SelectionSet)
		case *ast.FragmentSpread:
			if w.skipped(sel.Directives) || w.onPath[sel.Name.Name] {
				continue
			}
			frag := w.c.Fragment(sel.Name.Name)
			if frag == nil {
				continue
			}
			w.onPath[sel.Name.Name] = true
			next, _ := w.c.Schema.GetType(frag.TypeCondition.Name.Name).(types.Composite)
			total += w.complexity(next, frag.SelectionSet)
			delete(w.onPath, sel.Name.Name)
		}
	}
	return total
}

func (w limitWalker) depth(set *ast.SelectionSet) int {
	if set == nil {
		return 0
	}
	deepest := 0
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			if w.skipped(sel.Directives) || strings.HasPrefix(sel.Name.Name, "__") {
				continue
			}
			if d := 1 + w.depth(sel.SelectionSet); d > deepest {
				deepest = d
			}
		case *ast.InlineFragment:
			if w.skipped(sel.Directives) {
				continue
			}
			if d := w.depth(sel.SelectionSet); d > deepest {
				deepest = d
			}
		case *ast.FragmentSpread:
			if w.skipped(sel.Directives) || w.onPath[sel.Name.Name] {
				continue
			}
			frag := w.c.Fragment(sel.Name.Name)
			if frag == nil {
				continue
			}
			w.onPath[sel.Name.Name] = true
			if d := w.depth(frag.SelectionSet); d > deepest {
				deepest = d
			}
			delete(w.onPath, sel.Name.Name)
		}
	}
	return deepest
}

// skipped evaluates @skip and @include against the request variables.
func (w limitWalker) skipped(directives ast.DirectiveList) bool {
	if d, ok := directives.Get("skip"); ok && w.ifArg(d) {
		return true
	}
	if d, ok := directives.Get("include"); ok && !w.ifArg(d) {
		return true
	}
	return false
}

func (w limitWalker) ifArg(d *ast.Directive) bool {
	arg, ok := d.Arguments.Get("if")
	if !ok {
		return false
	}
	v, ok := coerce.Literal(arg.Value, types.NewNonNull(types.Boolean), w.c.Variables)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func operationRoot(c *Context, op *ast.OperationDefinition) types.Composite {
	var root types.Composite
	switch op.Operation {
	case ast.Query:
		root = c.Schema.QueryType()
	case ast.Mutation:
		root = c.Schema.MutationType()
	case ast.Subscription:
		root = c.Schema.SubscriptionType()
	}
	if obj, ok := root.(*types.Object); ok && obj == nil {
		return nil
	}
	return root
}
