package types

import (
	"context"

	"github.com/ScyllaDigital/graphql-go/ast"
)

// ResolveParams is handed to every field resolver.
type ResolveParams struct {
	Context context.Context
	// Source is the value the parent field resolved to.
	Source interface{}
	// Args holds the field's coerced argument values.
	Args map[string]interface{}
	Info *ResolveInfo
}

// FieldResolveFn produces a field's value. It may return a deferred value
// recognized by the execution's promise adapter.
type FieldResolveFn func(p ResolveParams) (interface{}, error)

type ResolveTypeParams struct {
	Context context.Context
	// Value is the runtime value whose concrete type is being determined.
	Value interface{}
	Info  *ResolveInfo
}

// ResolveTypeFn maps a runtime value of an abstract type to its object type.
// Returning nil falls back to scanning possible types' IsTypeOf functions.
type ResolveTypeFn func(p ResolveTypeParams) *Object

type IsTypeOfParams struct {
	Context context.Context
	Value   interface{}
	Info    *ResolveInfo
}

type IsTypeOfFn func(p IsTypeOfParams) bool

// ComplexityFn computes the cost of a field given the cost of its selection
// set and its coerced arguments.
type ComplexityFn func(childComplexity int, args map[string]interface{}) int

// Path addresses a response position. It is built backwards so sibling fields
// can share their ancestry.
type Path struct {
	Prev *Path
	// Key is a response key (string) or a list index (int).
	Key interface{}
}

func (p *Path) Append(key interface{}) *Path {
	return &Path{Prev: p, Key: key}
}

// Slice returns the path from the root, in order.
func (p *Path) Slice() []interface{} {
	if p == nil {
		return nil
	}
	n := 0
	for cur := p; cur != nil; cur = cur.Prev {
		n++
	}
	out := make([]interface{}, n)
	for cur := p; cur != nil; cur = cur.Prev {
		n--
		out[n] = cur.Key
	}
	return out
}

// ResolveInfo describes the position a resolver runs at.
type ResolveInfo struct {
	FieldName       string
	FieldASTs       []*ast.Field
	FieldDefinition *FieldDefinition
	ReturnType      Output
	ParentType      Composite
	Path            *Path
	Schema          *Schema
	Fragments       map[string]*ast.FragmentDefinition
	RootValue       interface{}
	Operation       *ast.OperationDefinition
	VariableValues  map[string]interface{}
}

// GetFieldSelection reports which subfields the query selects under this
// field, down to the given depth. At the deepest level a field maps to true;
// above it, to the nested selection map. Fragments are flattened without
// regard to type conditions.
func (info *ResolveInfo) GetFieldSelection(depth int) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range info.FieldASTs {
		info.collectSelection(f.SelectionSet, depth, out)
	}
	return out
}

func (info *ResolveInfo) collectSelection(set *ast.SelectionSet, depth int, out map[string]interface{}) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if depth > 0 && s.SelectionSet != nil {
				sub, ok := out[s.Name.Name].(map[string]interface{})
				if !ok {
					sub = make(map[string]interface{})
					out[s.Name.Name] = sub
				}
				info.collectSelection(s.SelectionSet, depth-1, sub)
				continue
			}
			out[s.Name.Name] = true
		case *ast.FragmentSpread:
			if frag, ok := info.Fragments[s.Name.Name]; ok {
				info.collectSelection(frag.SelectionSet, depth, out)
			}
		case *ast.InlineFragment:
			info.collectSelection(s.SelectionSet, depth, out)
		}
	}
}

// SelectedField is a node of the lookahead tree.
type SelectedField struct {
	Name   string
	Alias  string
	Fields []*SelectedField
}

// LookAhead returns the full selection tree under this field without
// resolving it. Fragments are flattened without regard to type conditions.
func (info *ResolveInfo) LookAhead() []*SelectedField {
	var out []*SelectedField
	for _, f := range info.FieldASTs {
		out = append(out, info.lookAhead(f.SelectionSet)...)
	}
	return out
}

func (info *ResolveInfo) lookAhead(set *ast.SelectionSet) []*SelectedField {
	if set == nil {
		return nil
	}
	var out []*SelectedField
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			out = append(out, &SelectedField{
				Name:   s.Name.Name,
				Alias:  s.ResponseKey(),
				Fields: info.lookAhead(s.SelectionSet),
			})
		case *ast.FragmentSpread:
			if frag, ok := info.Fragments[s.Name.Name]; ok {
				out = append(out, info.lookAhead(frag.SelectionSet)...)
			}
		case *ast.InlineFragment:
			out = append(out, info.lookAhead(s.SelectionSet)...)
		}
	}
	return out
}
