package evaluator

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/value"
)

// NextActionType is the dispatch kind returned by NextAction.
type NextActionType string

const (
	NextModule NextActionType = "module"
	NextResult NextActionType = "result"
)

// NextAction is the (type, target, message) triple the router produces.
type NextAction struct {
	Type      NextActionType
	ModuleID  string // set when Type == NextModule
	Message   string
}

// Route evaluates mod's router rules in order, per §4.3: the environment
// is extended with Module_finished (= moduleDone) before any condition is
// checked. The first rule whose condition is empty or true dispatches;
// jump/next require a non-empty target (which is not checked against the
// engine's modules), terminate/end/finish end the session. No match means "stay on this module".
func Route(eng *engine.Engine, mod *engine.Module, answers Answers, params Params, moduleDone bool) (NextAction, error) {
	raw := make(map[string]value.Value, len(params)+len(answers)+1)
	for k, v := range params {
		raw[k] = v
	}
	for k, v := range answers {
		raw[k] = v
	}
	raw["Module_finished"] = value.Bool(moduleDone)
	env := BuildEnvFromRaw(raw)

	for _, rule := range mod.Router {
		matched := true
		if rule.ConditionRaw != "" {
			ok, err := rule.Condition.Eval(env)
			if err != nil {
				return NextAction{}, err
			}
			matched = ok
		}
		if !matched {
			continue
		}

		switch {
		case rule.Action.IsTransition():
			if rule.TargetModuleID == "" {
				return NextAction{}, &RouterTargetMissingError{ModuleID: mod.ID, Target: rule.TargetModuleID}
			}
			// A target id unresolvable against eng.ModulesByID is returned
			// as-is rather than rejected here: the dangling-target open
			// question resolves to "respond anyway, fault later" -- the
			// caller's GetModule faults when it tries to resolve it.
			return NextAction{Type: NextModule, ModuleID: rule.TargetModuleID, Message: rule.Message}, nil
		case rule.Action.IsTerminal():
			return NextAction{Type: NextResult, Message: rule.Message}, nil
		}
	}

	return NextAction{Type: NextModule, ModuleID: mod.ID}, nil
}
