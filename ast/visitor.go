package ast

import "fmt"

// Action tells the walker what to do after a visit callback.
type Action int

const (
	// ActionContinue visits the node's children as usual.
	ActionContinue Action = iota
	// ActionSkip skips the node's children. When returned from Enter, the
	// matching Leave call is skipped as well.
	ActionSkip
	// ActionBreak aborts the whole traversal.
	ActionBreak
	// ActionReplace swaps the current node for Result.Replacement and then
	// continues. The replacement must satisfy the same node interface as the
	// node it replaces.
	ActionReplace
)

// Result is returned by visitor callbacks.
type Result struct {
	Action      Action
	Replacement Node
}

func Continue() Result      { return Result{Action: ActionContinue} }
func Skip() Result          { return Result{Action: ActionSkip} }
func Break() Result         { return Result{Action: ActionBreak} }
func Replace(n Node) Result { return Result{Action: ActionReplace, Replacement: n} }

// Visitor is called on the way into and out of every node.
type Visitor interface {
	Enter(node Node) Result
	Leave(node Node) Result
}

// FuncVisitor adapts plain functions to the Visitor interface. Nil functions
// behave as Continue.
type FuncVisitor struct {
	EnterFn func(node Node) Result
	LeaveFn func(node Node) Result
}

func (v FuncVisitor) Enter(node Node) Result {
	if v.EnterFn == nil {
		return Continue()
	}
	return v.EnterFn(node)
}

func (v FuncVisitor) Leave(node Node) Result {
	if v.LeaveFn == nil {
		return Continue()
	}
	return v.LeaveFn(node)
}

// Walk traverses the tree rooted at node in source order, calling v.Enter
// before a node's children and v.Leave after them. It returns the root, which
// differs from node only if the root itself was replaced. Replacements of
// inner nodes are applied in place; callers who need the original intact
// should Walk a Clone.
func Walk(root Node, v Visitor) Node {
	w := &walker{visitor: v}
	return w.walk(root)
}

type walker struct {
	visitor Visitor
	done    bool
}

func (w *walker) walk(node Node) Node {
	if w.done || node == nil {
		return node
	}

	switch r := w.visitor.Enter(node); r.Action {
	case ActionSkip:
		return node
	case ActionBreak:
		w.done = true
		return node
	case ActionReplace:
		node = r.Replacement
		if node == nil {
			return nil
		}
	}

	w.walkChildren(node)
	if w.done {
		return node
	}

	switch r := w.visitor.Leave(node); r.Action {
	case ActionBreak:
		w.done = true
	case ActionReplace:
		node = r.Replacement
	}
	return node
}

func (w *walker) walkChildren(node Node) {
	switch n := node.(type) {
	case *Document:
		for i, def := range n.Definitions {
			n.Definitions[i] = replaced(w.walk(def), def)
			if w.done {
				return
			}
		}

	case *OperationDefinition:
		for i, vd := range n.VariableDefinitions {
			n.VariableDefinitions[i] = replaced(w.walk(vd), vd)
			if w.done {
				return
			}
		}
		w.walkDirectives(n.Directives)
		if n.SelectionSet != nil && !w.done {
			n.SelectionSet = replaced(w.walk(n.SelectionSet), n.SelectionSet)
		}

	case *VariableDefinition:
		n.Type = replaced(w.walk(n.Type), n.Type)
		if n.DefaultValue != nil && !w.done {
			n.DefaultValue = replaced(w.walk(n.DefaultValue), n.DefaultValue)
		}
		w.walkDirectives(n.Directives)

	case *SelectionSet:
		for i, sel := range n.Selections {
			n.Selections[i] = replaced(w.walk(sel), sel)
			if w.done {
				return
			}
		}

	case *Field:
		w.walkArguments(n.Arguments)
		w.walkDirectives(n.Directives)
		if n.SelectionSet != nil && !w.done {
			n.SelectionSet = replaced(w.walk(n.SelectionSet), n.SelectionSet)
		}

	case *Argument:
		n.Value = replaced(w.walk(n.Value), n.Value)

	case *Directive:
		w.walkArguments(n.Arguments)

	case *FragmentSpread:
		w.walkDirectives(n.Directives)

	case *InlineFragment:
		if n.TypeCondition != nil {
			n.TypeCondition = replaced(w.walk(n.TypeCondition), n.TypeCondition)
		}
		w.walkDirectives(n.Directives)
		if n.SelectionSet != nil && !w.done {
			n.SelectionSet = replaced(w.walk(n.SelectionSet), n.SelectionSet)
		}

	case *FragmentDefinition:
		if n.TypeCondition != nil {
			n.TypeCondition = replaced(w.walk(n.TypeCondition), n.TypeCondition)
		}
		w.walkDirectives(n.Directives)
		if n.SelectionSet != nil && !w.done {
			n.SelectionSet = replaced(w.walk(n.SelectionSet), n.SelectionSet)
		}

	case *ListType:
		n.OfType = replaced(w.walk(n.OfType), n.OfType)

	case *NonNullType:
		n.OfType = replaced(w.walk(n.OfType), n.OfType)

	case *ListValue:
		for i, item := range n.Values {
			n.Values[i] = replaced(w.walk(item), item)
			if w.done {
				return
			}
		}

	case *ObjectValue:
		for i, f := range n.Fields {
			n.Fields[i] = replaced(w.walk(f), f)
			if w.done {
				return
			}
		}

	case *ObjectField:
		n.Value = replaced(w.walk(n.Value), n.Value)
	}
}

func (w *walker) walkArguments(args ArgumentList) {
	for i, arg := range args {
		if w.done {
			return
		}
		args[i] = replaced(w.walk(arg), arg)
	}
}

func (w *walker) walkDirectives(dirs DirectiveList) {
	for i, d := range dirs {
		if w.done {
			return
		}
		dirs[i] = replaced(w.walk(d), d)
	}
}

// replaced narrows a walked node back to the slot's static type. A
// replacement of an incompatible kind is a caller bug.
func replaced[T Node](got Node, old T) T {
	if got == Node(old) {
		return old
	}
	t, ok := got.(T)
	if !ok {
		panic(fmt.Sprintf("graphql: cannot replace %s node with %s node", old.Kind(), got.Kind()))
	}
	return t
}
