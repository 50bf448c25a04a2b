package ast

// Clone returns a deep copy of node. Locations are preserved.
func Clone(node Node) Node {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Document:
		c := *n
		c.Definitions = make([]Definition, len(n.Definitions))
		for i, def := range n.Definitions {
			c.Definitions[i] = Clone(def).(Definition)
		}
		return &c

	case *OperationDefinition:
		c := *n
		c.VariableDefinitions = make([]*VariableDefinition, len(n.VariableDefinitions))
		for i, vd := range n.VariableDefinitions {
			c.VariableDefinitions[i] = Clone(vd).(*VariableDefinition)
		}
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		return &c

	case *VariableDefinition:
		c := *n
		c.Type = Clone(n.Type).(Type)
		if n.DefaultValue != nil {
			c.DefaultValue = Clone(n.DefaultValue).(Value)
		}
		c.Directives = cloneDirectives(n.Directives)
		return &c

	case *SelectionSet:
		return cloneSelectionSet(n)

	case *Field:
		c := *n
		c.Arguments = cloneArguments(n.Arguments)
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		return &c

	case *Argument:
		c := *n
		c.Value = Clone(n.Value).(Value)
		return &c

	case *Directive:
		c := *n
		c.Arguments = cloneArguments(n.Arguments)
		return &c

	case *FragmentSpread:
		c := *n
		c.Directives = cloneDirectives(n.Directives)
		return &c

	case *InlineFragment:
		c := *n
		if n.TypeCondition != nil {
			cond := *n.TypeCondition
			c.TypeCondition = &cond
		}
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		return &c

	case *FragmentDefinition:
		c := *n
		if n.TypeCondition != nil {
			cond := *n.TypeCondition
			c.TypeCondition = &cond
		}
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		return &c

	case *SchemaDefinition:
		c := *n
		return &c

	case *TypeDefinition:
		c := *n
		return &c

	case *Named:
		c := *n
		return &c

	case *ListType:
		c := *n
		c.OfType = Clone(n.OfType).(Type)
		return &c

	case *NonNullType:
		c := *n
		c.OfType = Clone(n.OfType).(Type)
		return &c

	case *Variable:
		c := *n
		return &c

	case *IntValue:
		c := *n
		return &c

	case *FloatValue:
		c := *n
		return &c

	case *StringValue:
		c := *n
		return &c

	case *BooleanValue:
		c := *n
		return &c

	case *NullValue:
		c := *n
		return &c

	case *EnumValue:
		c := *n
		return &c

	case *ListValue:
		c := *n
		c.Values = make([]Value, len(n.Values))
		for i, item := range n.Values {
			c.Values[i] = Clone(item).(Value)
		}
		return &c

	case *ObjectValue:
		c := *n
		c.Fields = make([]*ObjectField, len(n.Fields))
		for i, f := range n.Fields {
			c.Fields[i] = Clone(f).(*ObjectField)
		}
		return &c

	case *ObjectField:
		c := *n
		c.Value = Clone(n.Value).(Value)
		return &c
	}

	return node
}

func cloneSelectionSet(s *SelectionSet) *SelectionSet {
	if s == nil {
		return nil
	}
	c := *s
	c.Selections = make([]Selection, len(s.Selections))
	for i, sel := range s.Selections {
		c.Selections[i] = Clone(sel).(Selection)
	}
	return &c
}

func cloneArguments(args ArgumentList) ArgumentList {
	if args == nil {
		return nil
	}
	c := make(ArgumentList, len(args))
	for i, arg := range args {
		c[i] = Clone(arg).(*Argument)
	}
	return c
}

func cloneDirectives(dirs DirectiveList) DirectiveList {
	if dirs == nil {
		return nil
	}
	c := make(DirectiveList, len(dirs))
	for i, d := range dirs {
		c[i] = Clone(d).(*Directive)
	}
	return c
}
