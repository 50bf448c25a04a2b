package exec

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/internal/coerce"
	"github.com/ScyllaDigital/graphql-go/types"
)

// fieldGroup is every selection of one response key on an object, merged
// across fragments.
type fieldGroup struct {
	key    string
	fields []*ast.Field
}

// collectFields flattens the selection sets that apply to onType into ordered
// response-key groups, evaluating @skip and @include against the request
// variables.
func (e *Execution) collectFields(onType *types.Object, sets ...*ast.SelectionSet) []*fieldGroup {
	var groups []*fieldGroup
	index := make(map[string]int)
	visited := make(map[string]bool)
	for _, set := range sets {
		groups = e.collectInto(onType, set, visited, groups, index)
	}
	return groups
}

func (e *Execution) collectInto(onType *types.Object, set *ast.SelectionSet, visited map[string]bool, groups []*fieldGroup, index map[string]int) []*fieldGroup {
	if set == nil {
		return groups
	}
	for _, sel := range set.Selections {
		switch sel := sel.(type) {
		case *ast.Field:
			if e.skipped(sel.Directives) {
				continue
			}
			key := sel.ResponseKey()
			if i, ok := index[key]; ok {
				groups[i].fields = append(groups[i].fields, sel)
				continue
			}
			index[key] = len(groups)
			groups = append(groups, &fieldGroup{key: key, fields: []*ast.Field{sel}})
		case *ast.InlineFragment:
			if e.skipped(sel.Directives) {
				continue
			}
			if sel.TypeCondition != nil && !e.typeApplies(sel.TypeCondition.Name.Name, onType) {
				continue
			}
			groups = e.collectInto(onType, sel.SelectionSet, visited, groups, index)
		case *ast.FragmentSpread:
			if e.skipped(sel.Directives) || visited[sel.Name.Name] {
				continue
			}
			visited[sel.Name.Name] = true
			frag, ok := e.Fragments[sel.Name.Name]
			if !ok || !e.typeApplies(frag.TypeCondition.Name.Name, onType) {
				continue
			}
			groups = e.collectInto(onType, frag.SelectionSet, visited, groups, index)
		}
	}
	return groups
}

func (e *Execution) typeApplies(condition string, onType *types.Object) bool {
	switch t := e.Schema.GetType(condition).(type) {
	case *types.Object:
		return t == onType
	case types.Abstract:
		return e.Schema.IsPossibleType(t, onType)
	}
	return false
}

// skipped evaluates @skip and @include. Malformed or dangling arguments leave
// the field included; validation reports those separately.
func (e *Execution) skipped(directives ast.DirectiveList) bool {
	if d, ok := directives.Get("skip"); ok && e.ifArg(d) {
		return true
	}
	if d, ok := directives.Get("include"); ok && !e.ifArg(d) {
		return true
	}
	return false
}

func (e *Execution) ifArg(d *ast.Directive) bool {
	arg, ok := d.Arguments.Get("if")
	if !ok {
		return false
	}
	v, ok := coerce.Literal(arg.Value, types.NewNonNull(types.Boolean), e.Variables)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// fieldDefinition resolves a field name on an object, including the meta
// fields: __typename anywhere, __schema and __type on the query root only.
func (e *Execution) fieldDefinition(obj *types.Object, name string) (*types.FieldDefinition, bool) {
	switch name {
	case "__schema":
		if obj == e.Schema.QueryType() {
			return types.SchemaMetaFieldDef, true
		}
	case "__type":
		if obj == e.Schema.QueryType() {
			return types.TypeMetaFieldDef, true
		}
	case "__typename":
		return types.TypeNameMetaFieldDef, true
	}
	return obj.Field(name)
}
