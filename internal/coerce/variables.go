package coerce

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

// VariableValues coerces the operation's variable values. Every variable is
// checked even after the first failure; on any error the operation must not
// execute.
func VariableValues(s *types.Schema, op *ast.OperationDefinition, input map[string]interface{}) (map[string]interface{}, []*errors.QueryError) {
	coerced := make(map[string]interface{}, len(op.VariableDefinitions))
	var errs []*errors.QueryError

	for _, def := range op.VariableDefinitions {
		name := def.Variable.Name
		varType, ok := types.TypeFromAST(s, def.Type).(types.Input)
		if !ok || !types.IsInputType(varType) {
			errs = append(errs, varError(def, "Variable \"$%s\" expected value of type %q which cannot be used as an input type.", name, def.Type.String()))
			continue
		}

		value, provided := input[name]
		if !provided {
			if def.DefaultValue != nil {
				if v, ok := Literal(def.DefaultValue, varType, nil); ok {
					coerced[name] = v
				}
				continue
			}
			if _, nonNull := varType.(*types.NonNull); nonNull {
				errs = append(errs, varError(def, "Variable \"$%s\" of required type %q was not provided.", name, varType.String()))
			}
			continue
		}

		if value == nil {
			if _, nonNull := varType.(*types.NonNull); nonNull {
				errs = append(errs, varError(def, "Variable \"$%s\" of non-null type %q must not be null.", name, varType.String()))
				continue
			}
			coerced[name] = nil
			continue
		}

		v, coerceErrs := InputValue(value, varType, nil)
		if len(coerceErrs) > 0 {
			for _, ce := range coerceErrs {
				qe := varError(def, "Variable \"$%s\" got invalid value; %s", name, ce.Message)
				qe.Path = ce.Path
				errs = append(errs, qe)
			}
			continue
		}
		coerced[name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, nil
}

func varError(def *ast.VariableDefinition, format string, a ...interface{}) *errors.QueryError {
	qe := errors.Errorf(format, a...)
	qe.Locations = []errors.Location{def.Loc}
	qe.Nodes = []interface{}{def}
	return qe
}
