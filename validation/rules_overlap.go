package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleOverlappingFieldsCanBeMerged struct{}

func (ruleOverlappingFieldsCanBeMerged) Name() string { return "OverlappingFieldsCanBeMerged" }

func (r ruleOverlappingFieldsCanBeMerged) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				if _, isDoc := node.(*ast.Document); isDoc {
					return ast.Continue()
				}
				return ast.Skip()
			}
			r.checkSet(c, operationRoot(c, op), op.SelectionSet)
			return ast.Skip()
		},
	}
}

// fieldEntry is one occurrence of a response key, remembering the type
// condition it was collected under.
type fieldEntry struct {
	parent types.Composite
	field  *ast.Field
	def    *types.FieldDefinition
	side   int
}

func (r ruleOverlappingFieldsCanBeMerged) checkSet(c *Context, parent types.Composite, set *ast.SelectionSet) {
	r.checkSetOnce(c, parent, set, make(map[*ast.SelectionSet]bool))
}

func (r ruleOverlappingFieldsCanBeMerged) checkSetOnce(c *Context, parent types.Composite, set *ast.SelectionSet, seen map[*ast.SelectionSet]bool) {
	if set == nil || seen[set] {
		return
	}
	seen[set] = true
	m := make(map[string][]fieldEntry)
	var order []string
	r.collect(c, parent, set, 0, m, &order, make(map[string]bool))
	r.findConflicts(c, m, order, false)
	// A field's own sub-selections can conflict without any sibling sharing
	// its response key, so each collected selection set is checked on its own.
	for _, key := range order {
		for _, e := range m[key] {
			r.checkSetOnce(c, r.returnParent(e), e.field.SelectionSet, seen)
		}
	}
}

func (r ruleOverlappingFieldsCanBeMerged) collect(c *Context, parent types.Composite, set *ast.SelectionSet, side int, m map[string][]fieldEntry, order *[]string, visited map[string]bool) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			var def *types.FieldDefinition
			if parent != nil {
				def = FieldDef(c.Schema, parent, sel.Name.Name)
			}
			key := sel.ResponseKey()
			if _, seen := m[key]; !seen {
				*order = append(*order, key)
			}
			m[key] = append(m[key], fieldEntry{parent: parent, field: sel, def: def, side: side})
		case *ast.InlineFragment:
			next := parent
			if sel.TypeCondition != nil {
				next, _ = c.Schema.GetType(sel.TypeCondition.Name.Name).(types.Composite)
			}
			r.collect(c, next, sel.SelectionSet, side, m, order, visited)
		case *ast.FragmentSpread:
			if visited[sel.Name.Name] {
				continue
			}
			visited[sel.Name.Name] = true
			frag := c.Fragment(sel.Name.Name)
			if frag == nil {
				continue
			}
			next, _ := c.Schema.GetType(frag.TypeCondition.Name.Name).(types.Composite)
			r.collect(c, next, frag.SelectionSet, side, m, order, visited)
		}
	}
}

func (r ruleOverlappingFieldsCanBeMerged) findConflicts(c *Context, m map[string][]fieldEntry, order []string, parentsExclusive bool) {
	for _, key := range order {
		entries := m[key]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				inherited := parentsExclusive && entries[i].side != entries[j].side
				r.findConflict(c, key, entries[i], entries[j], inherited)
			}
		}
	}
}

func (r ruleOverlappingFieldsCanBeMerged) findConflict(c *Context, key string, a, b fieldEntry, inheritedExclusive bool) {
	exclusive := inheritedExclusive || r.mutuallyExclusive(a.parent, b.parent)
	locs := []errors.Location{a.field.Loc, b.field.Loc}

	if !exclusive {
		if a.field.Name.Name != b.field.Name.Name {
			c.ReportOnce(r.Name(), locs,
				"Fields %q conflict because %q and %q are different fields. Use different aliases on the fields to fetch both if this was intentional.",
				key, a.field.Name.Name, b.field.Name.Name)
			return
		}
		if !argumentsEqual(a.field.Arguments, b.field.Arguments) {
			c.ReportOnce(r.Name(), locs,
				"Fields %q conflict because they have differing arguments. Use different aliases on the fields to fetch both if this was intentional.", key)
			return
		}
	}

	if a.def != nil && b.def != nil && typesConflict(a.def.Type, b.def.Type) {
		c.ReportOnce(r.Name(), locs,
			"Fields %q conflict because they return conflicting types %q and %q. Use different aliases on the fields to fetch both if this was intentional.",
			key, a.def.Type.String(), b.def.Type.String())
		return
	}

	if a.field.SelectionSet == nil && b.field.SelectionSet == nil {
		return
	}
	sub := make(map[string][]fieldEntry)
	var order []string
	r.collect(c, r.returnParent(a), a.field.SelectionSet, 0, sub, &order, make(map[string]bool))
	r.collect(c, r.returnParent(b), b.field.SelectionSet, 1, sub, &order, make(map[string]bool))
	r.findConflicts(c, sub, order, exclusive)
}

// mutuallyExclusive: two different object type conditions can never both
// apply, so their fields never actually merge.
func (ruleOverlappingFieldsCanBeMerged) mutuallyExclusive(a, b types.Composite) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	_, aObj := a.(*types.Object)
	_, bObj := b.(*types.Object)
	return aObj && bObj
}

func (ruleOverlappingFieldsCanBeMerged) returnParent(e fieldEntry) types.Composite {
	if e.def == nil {
		return nil
	}
	parent, _ := types.Named(e.def.Type).(types.Composite)
	return parent
}

// typesConflict reports whether two return types can never produce values of
// the same response shape.
func typesConflict(a, b types.Output) bool {
	if aList, ok := a.(*types.List); ok {
		bList, ok := b.(*types.List)
		if !ok {
			return true
		}
		return typesConflict(aList.OfType.(types.Output), bList.OfType.(types.Output))
	}
	if _, ok := b.(*types.List); ok {
		return true
	}
	if aNN, ok := a.(*types.NonNull); ok {
		bNN, ok := b.(*types.NonNull)
		if !ok {
			return true
		}
		return typesConflict(aNN.OfType.(types.Output), bNN.OfType.(types.Output))
	}
	if _, ok := b.(*types.NonNull); ok {
		return true
	}
	if types.IsLeafType(a) || types.IsLeafType(b) {
		return a != b
	}
	return false
}

func argumentsEqual(a, b ast.ArgumentList) bool {
	if len(a) != len(b) {
		return false
	}
	for _, argA := range a {
		argB, ok := b.Get(argA.Name.Name)
		if !ok {
			return false
		}
		if argA.Value.String() != argB.Value.String() {
			return false
		}
	}
	return true
}
