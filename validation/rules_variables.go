package validation

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

type ruleVariablesAreInputTypes struct{}

func (ruleVariablesAreInputTypes) Name() string { return "VariablesAreInputTypes" }

func (r ruleVariablesAreInputTypes) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			def, ok := node.(*ast.VariableDefinition)
			if !ok {
				return ast.Continue()
			}
			t := types.TypeFromAST(c.Schema, def.Type)
			if t == nil || types.IsInputType(t) {
				return ast.Continue()
			}
			c.Report(r.Name(), []errors.Location{def.Type.Location()},
				"Variable \"$%s\" cannot be non-input type %q.", def.Variable.Name, def.Type.String())
			return ast.Continue()
		},
	}
}

type ruleUniqueVariableNames struct{}

func (ruleUniqueVariableNames) Name() string { return "UniqueVariableNames" }

func (r ruleUniqueVariableNames) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		EnterFn: func(node ast.Node) ast.Result {
			op, ok := node.(*ast.OperationDefinition)
			if !ok {
				return ast.Continue()
			}
			seen := make(map[string]bool, len(op.VariableDefinitions))
			for _, def := range op.VariableDefinitions {
				if seen[def.Variable.Name] {
					c.Report(r.Name(), []errors.Location{def.Variable.Loc},
						"There can be only one variable named \"$%s\".", def.Variable.Name)
				}
				seen[def.Variable.Name] = true
			}
			return ast.Continue()
		},
	}
}

type ruleNoUndefinedVariables struct{}

func (ruleNoUndefinedVariables) Name() string { return "NoUndefinedVariables" }

func (r ruleNoUndefinedVariables) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			if _, ok := node.(*ast.Document); !ok {
				return ast.Continue()
			}
			for _, def := range c.Document.Definitions {
				op, isOp := def.(*ast.OperationDefinition)
				if !isOp {
					continue
				}
				defined := make(map[string]bool, len(op.VariableDefinitions))
				for _, vd := range op.VariableDefinitions {
					defined[vd.Variable.Name] = true
				}
				for _, usage := range c.RecursiveUsages(op) {
					if defined[usage.Name] {
						continue
					}
					if op.Name.Name == "" {
						c.ReportOnce(r.Name(), []errors.Location{usage.Loc, op.Loc},
							"Variable \"$%s\" is not defined.", usage.Name)
					} else {
						c.ReportOnce(r.Name(), []errors.Location{usage.Loc, op.Loc},
							"Variable \"$%s\" is not defined by operation %q.", usage.Name, op.Name.Name)
					}
				}
			}
			return ast.Continue()
		},
	}
}

type ruleNoUnusedVariables struct{}

func (ruleNoUnusedVariables) Name() string { return "NoUnusedVariables" }

func (r ruleNoUnusedVariables) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			if _, ok := node.(*ast.Document); !ok {
				return ast.Continue()
			}
			for _, def := range c.Document.Definitions {
				op, isOp := def.(*ast.OperationDefinition)
				if !isOp {
					continue
				}
				used := make(map[string]bool)
				for _, usage := range c.RecursiveUsages(op) {
					used[usage.Name] = true
				}
				for _, vd := range op.VariableDefinitions {
					if used[vd.Variable.Name] {
						continue
					}
					if op.Name.Name == "" {
						c.Report(r.Name(), []errors.Location{vd.Loc},
							"Variable \"$%s\" is never used.", vd.Variable.Name)
					} else {
						c.Report(r.Name(), []errors.Location{vd.Loc},
							"Variable \"$%s\" is never used in operation %q.", vd.Variable.Name, op.Name.Name)
					}
				}
			}
			return ast.Continue()
		},
	}
}

type ruleVariablesInAllowedPosition struct{}

func (ruleVariablesInAllowedPosition) Name() string { return "VariablesInAllowedPosition" }

func (r ruleVariablesInAllowedPosition) Visitor(c *Context) ast.Visitor {
	return ast.FuncVisitor{
		LeaveFn: func(node ast.Node) ast.Result {
			if _, ok := node.(*ast.Document); !ok {
				return ast.Continue()
			}
			for _, def := range c.Document.Definitions {
				op, isOp := def.(*ast.OperationDefinition)
				if !isOp {
					continue
				}
				varDefs := make(map[string]*ast.VariableDefinition, len(op.VariableDefinitions))
				for _, vd := range op.VariableDefinitions {
					varDefs[vd.Variable.Name] = vd
				}
				for _, usage := range c.RecursiveUsages(op) {
					vd, defined := varDefs[usage.Name]
					if !defined || usage.Type == nil {
						continue
					}
					varType := types.TypeFromAST(c.Schema, vd.Type)
					if varType == nil {
						continue
					}
					if !r.allowed(c, varType, vd, usage) {
						c.ReportOnce(r.Name(), []errors.Location{vd.Loc, usage.Loc},
							"Variable \"$%s\" of type %q used in position expecting type %q.",
							usage.Name, varType.String(), usage.Type.String())
					}
				}
			}
			return ast.Continue()
		},
	}
}

// allowed implements the position rule: a nullable variable can feed a
// non-null position when either side provides a default value.
func (ruleVariablesInAllowedPosition) allowed(c *Context, varType types.Type, vd *ast.VariableDefinition, usage *VariableUsage) bool {
	locationType := types.Type(usage.Type)
	if nn, isNonNull := locationType.(*types.NonNull); isNonNull {
		if _, varNonNull := varType.(*types.NonNull); !varNonNull {
			hasDefault := vd.DefaultValue != nil
			if _, isNullDefault := vd.DefaultValue.(*ast.NullValue); isNullDefault {
				hasDefault = false
			}
			if !hasDefault && !usage.HasLocationDefault {
				return false
			}
			locationType = nn.OfType
		}
	}
	return types.IsSubType(c.Schema, locationType, varType)
}
