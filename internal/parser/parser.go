// Package parser turns GraphQL query source into the engine's AST. Lexing and
// parsing proper are delegated to vektah/gqlparser; this package only converts
// its document into ast nodes.
package parser

import (
	stderrors "errors"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
)

// Parse parses a query document.
func Parse(source string) (*ast.Document, *errors.QueryError) {
	doc, err := parser.ParseQuery(&gqlast.Source{Name: "GraphQL request", Input: source})
	if err != nil {
		return nil, syntaxError(err)
	}
	return convertDocument(doc), nil
}

func syntaxError(err error) *errors.QueryError {
	var gqlErr *gqlerror.Error
	if stderrors.As(err, &gqlErr) {
		qe := errors.Errorf("%s", gqlErr.Message)
		for _, loc := range gqlErr.Locations {
			qe.Locations = append(qe.Locations, errors.Location{Line: loc.Line, Column: loc.Column})
		}
		return qe
	}
	return errors.Errorf("%s", err)
}

func convertDocument(doc *gqlast.QueryDocument) *ast.Document {
	out := &ast.Document{Loc: position(doc.Position)}
	for _, op := range doc.Operations {
		out.Definitions = append(out.Definitions, convertOperation(op))
	}
	for _, frag := range doc.Fragments {
		out.Definitions = append(out.Definitions, convertFragment(frag))
	}
	return out
}

func convertOperation(op *gqlast.OperationDefinition) *ast.OperationDefinition {
	loc := position(op.Position)
	out := &ast.OperationDefinition{
		Operation:    ast.OperationType(op.Operation),
		Directives:   convertDirectives(op.Directives),
		SelectionSet: convertSelectionSet(op.SelectionSet, loc),
		Loc:          loc,
	}
	if op.Name != "" {
		out.Name = ast.Ident{Name: op.Name, Loc: loc}
	}
	for _, vd := range op.VariableDefinitions {
		out.VariableDefinitions = append(out.VariableDefinitions, convertVariableDefinition(vd))
	}
	return out
}

func convertVariableDefinition(vd *gqlast.VariableDefinition) *ast.VariableDefinition {
	loc := position(vd.Position)
	out := &ast.VariableDefinition{
		Variable:   ast.Ident{Name: vd.Variable, Loc: loc},
		Type:       convertType(vd.Type),
		Directives: convertDirectives(vd.Directives),
		Loc:        loc,
	}
	if vd.DefaultValue != nil {
		out.DefaultValue = convertValue(vd.DefaultValue)
	}
	return out
}

func convertFragment(frag *gqlast.FragmentDefinition) *ast.FragmentDefinition {
	loc := position(frag.Position)
	return &ast.FragmentDefinition{
		Name:          ast.Ident{Name: frag.Name, Loc: loc},
		TypeCondition: &ast.Named{Name: ast.Ident{Name: frag.TypeCondition, Loc: loc}, Loc: loc},
		Directives:    convertDirectives(frag.Directives),
		SelectionSet:  convertSelectionSet(frag.SelectionSet, loc),
		Loc:           loc,
	}
}

func convertSelectionSet(set gqlast.SelectionSet, parentLoc errors.Location) *ast.SelectionSet {
	if len(set) == 0 {
		return nil
	}
	out := &ast.SelectionSet{Loc: parentLoc}
	for _, sel := range set {
		out.Selections = append(out.Selections, convertSelection(sel))
	}
	if len(out.Selections) > 0 {
		out.Loc = out.Selections[0].Location()
	}
	return out
}

func convertSelection(sel gqlast.Selection) ast.Selection {
	switch s := sel.(type) {
	case *gqlast.Field:
		loc := position(s.Position)
		return &ast.Field{
			Alias:        ast.Ident{Name: s.Alias, Loc: loc},
			Name:         ast.Ident{Name: s.Name, Loc: loc},
			Arguments:    convertArguments(s.Arguments),
			Directives:   convertDirectives(s.Directives),
			SelectionSet: convertSelectionSet(s.SelectionSet, loc),
			Loc:          loc,
		}
	case *gqlast.FragmentSpread:
		loc := position(s.Position)
		return &ast.FragmentSpread{
			Name:       ast.Ident{Name: s.Name, Loc: loc},
			Directives: convertDirectives(s.Directives),
			Loc:        loc,
		}
	case *gqlast.InlineFragment:
		loc := position(s.Position)
		out := &ast.InlineFragment{
			Directives:   convertDirectives(s.Directives),
			SelectionSet: convertSelectionSet(s.SelectionSet, loc),
			Loc:          loc,
		}
		if s.TypeCondition != "" {
			out.TypeCondition = &ast.Named{Name: ast.Ident{Name: s.TypeCondition, Loc: loc}, Loc: loc}
		}
		return out
	}
	panic("unreachable")
}

func convertArguments(args gqlast.ArgumentList) ast.ArgumentList {
	if len(args) == 0 {
		return nil
	}
	out := make(ast.ArgumentList, len(args))
	for i, arg := range args {
		loc := position(arg.Position)
		out[i] = &ast.Argument{
			Name:  ast.Ident{Name: arg.Name, Loc: loc},
			Value: convertValue(arg.Value),
			Loc:   loc,
		}
	}
	return out
}

func convertDirectives(dirs gqlast.DirectiveList) ast.DirectiveList {
	if len(dirs) == 0 {
		return nil
	}
	out := make(ast.DirectiveList, len(dirs))
	for i, d := range dirs {
		loc := position(d.Position)
		out[i] = &ast.Directive{
			Name:      ast.Ident{Name: d.Name, Loc: loc},
			Arguments: convertArguments(d.Arguments),
			Loc:       loc,
		}
	}
	return out
}

func convertType(t *gqlast.Type) ast.Type {
	loc := position(t.Position)
	var out ast.Type
	if t.Elem != nil {
		out = &ast.ListType{OfType: convertType(t.Elem), Loc: loc}
	} else {
		out = &ast.Named{Name: ast.Ident{Name: t.NamedType, Loc: loc}, Loc: loc}
	}
	if t.NonNull {
		out = &ast.NonNullType{OfType: out, Loc: loc}
	}
	return out
}

func convertValue(v *gqlast.Value) ast.Value {
	loc := position(v.Position)
	switch v.Kind {
	case gqlast.Variable:
		return &ast.Variable{Name: ast.Ident{Name: v.Raw, Loc: loc}, Loc: loc}
	case gqlast.IntValue:
		return &ast.IntValue{Value: v.Raw, Loc: loc}
	case gqlast.FloatValue:
		return &ast.FloatValue{Value: v.Raw, Loc: loc}
	case gqlast.StringValue:
		return &ast.StringValue{Value: v.Raw, Loc: loc}
	case gqlast.BlockValue:
		return &ast.StringValue{Value: v.Raw, Block: true, Loc: loc}
	case gqlast.BooleanValue:
		return &ast.BooleanValue{Value: v.Raw == "true", Loc: loc}
	case gqlast.NullValue:
		return &ast.NullValue{Loc: loc}
	case gqlast.EnumValue:
		return &ast.EnumValue{Value: v.Raw, Loc: loc}
	case gqlast.ListValue:
		out := &ast.ListValue{Loc: loc}
		for _, child := range v.Children {
			out.Values = append(out.Values, convertValue(child.Value))
		}
		return out
	case gqlast.ObjectValue:
		out := &ast.ObjectValue{Loc: loc}
		for _, child := range v.Children {
			childLoc := position(child.Position)
			out.Fields = append(out.Fields, &ast.ObjectField{
				Name:  ast.Ident{Name: child.Name, Loc: childLoc},
				Value: convertValue(child.Value),
				Loc:   childLoc,
			})
		}
		return out
	}
	panic("unreachable")
}

func position(pos *gqlast.Position) errors.Location {
	if pos == nil {
		return errors.Location{}
	}
	return errors.Location{Line: pos.Line, Column: pos.Column}
}
