package coerce

import (
	"github.com/ScyllaDigital/graphql-go/ast"
	"github.com/ScyllaDigital/graphql-go/errors"
	"github.com/ScyllaDigital/graphql-go/types"
)

// ArgumentValues coerces the literal arguments written at a field or
// directive against its declared arguments.
func ArgumentValues(argDefs []*types.Argument, args ast.ArgumentList, variables map[string]interface{}) (map[string]interface{}, []*errors.QueryError) {
	coerced := make(map[string]interface{}, len(argDefs))
	var errs []*errors.QueryError

	for _, def := range argDefs {
		lit, written := args.Get(def.Name)
		_, nonNull := def.Type.(*types.NonNull)

		if written {
			v, ok := Literal(lit.Value, def.Type, variables)
			if ok {
				coerced[def.Name] = v
				continue
			}
			// The literal did not produce a value. A dangling variable falls
			// back to the default; anything else is a bad literal.
			if _, isVar := lit.Value.(*ast.Variable); !isVar {
				qe := errors.Errorf("Argument %q has invalid value %s.", def.Name, lit.Value.String())
				qe.Locations = []errors.Location{lit.Value.Location()}
				qe.Nodes = []interface{}{lit}
				errs = append(errs, qe)
				continue
			}
		}

		if def.HasDefault {
			coerced[def.Name] = defaultInputValue(def.DefaultValue, def.Type)
			continue
		}
		if nonNull {
			qe := errors.Errorf("Argument %q of required type %q was not provided.", def.Name, def.Type.String())
			if written {
				qe.Locations = []errors.Location{lit.Loc}
			}
			errs = append(errs, qe)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, nil
}
