package evaluator

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/value"
)

// DeriveParameters computes every variable across the whole engine from
// answers, per §4.3: modules and their variables are processed in engine
// order, each rule list sees the parameters already derived by earlier
// variables, and a final pass renders "{{ name }}" template placeholders.
// It is a pure function of (eng, answers).
func DeriveParameters(eng *engine.Engine, answers Answers) (Params, error) {
	params := make(Params)

	for _, mod := range eng.Modules {
		for _, v := range mod.Variables {
			val, err := deriveVariable(v, params, answers)
			if err != nil {
				return nil, err
			}
			params[v.Name] = val
		}
	}

	return renderTemplates(params, answers), nil
}

func deriveVariable(v engine.Variable, params Params, answers Answers) (value.Value, error) {
	seed := seedValue(v)
	env := BuildEnv(params, answers)

	switch v.Type {
	case "string_list", "list":
		return deriveListVariable(v, env, seed)
	default:
		return deriveScalarVariable(v, env, seed)
	}
}

func deriveListVariable(v engine.Variable, env expr.Env, seed value.Value) (value.Value, error) {
	var collected []value.Value
	var elseValue *value.Value

	for _, rule := range v.Rules {
		if rule.Condition.IsElse() {
			ev := rule.Value
			elseValue = &ev
			continue
		}
		ok, err := rule.Condition.Eval(env)
		if err != nil {
			return value.Null(), err
		}
		if ok {
			collected = append(collected, rule.Value)
		}
	}

	if len(collected) > 0 {
		return value.List(collected), nil
	}
	if elseValue != nil {
		if elseValue.IsList() {
			return *elseValue, nil
		}
		return value.List([]value.Value{*elseValue}), nil
	}
	return seed, nil
}

func deriveScalarVariable(v engine.Variable, env expr.Env, seed value.Value) (value.Value, error) {
	for _, rule := range v.Rules {
		ok, err := rule.Condition.Eval(env)
		if err != nil {
			return value.Null(), err
		}
		if ok {
			return rule.Value, nil
		}
	}
	return seed, nil
}

func seedValue(v engine.Variable) value.Value {
	if v.InitialValue != nil {
		return *v.InitialValue
	}
	switch v.Type {
	case "boolean":
		return value.Bool(false)
	case "string":
		return value.String("")
	case "string_list", "list":
		return value.List(nil)
	default:
		return value.Null()
	}
}
