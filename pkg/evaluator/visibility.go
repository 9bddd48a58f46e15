package evaluator

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/expr"
)

// VisibleQuestions returns mod's questions, in order, that are currently
// visible under env.
func VisibleQuestions(mod *engine.Module, env expr.Env) ([]*engine.Question, error) {
	var out []*engine.Question
	for _, q := range mod.Questions {
		ok, err := q.Visible(env)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// ModuleComplete reports whether every currently-visible question in mod
// has an entry in answers.
func ModuleComplete(mod *engine.Module, answers Answers, env expr.Env) (bool, error) {
	visible, err := VisibleQuestions(mod, env)
	if err != nil {
		return false, err
	}
	for _, q := range visible {
		if _, ok := answers[q.ID]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// BuildModulePayload computes the presentation view of mod per §4.3: the
// first visible-but-unanswered question; if none, the last
// answered-visible question; if none, the last visible question.
func BuildModulePayload(mod *engine.Module, answers Answers, env expr.Env) (*ModulePayload, error) {
	visible, err := VisibleQuestions(mod, env)
	if err != nil {
		return nil, err
	}

	payload := &ModulePayload{
		ModuleID:    mod.ID,
		Title:       mod.Title,
		Description: mod.Description,
	}

	for _, q := range visible {
		if _, answered := answers[q.ID]; !answered {
			payload.Questions = []*engine.Question{q}
			return payload, nil
		}
	}

	for i := len(visible) - 1; i >= 0; i-- {
		if _, answered := answers[visible[i].ID]; answered {
			payload.Questions = []*engine.Question{visible[i]}
			return payload, nil
		}
	}

	if len(visible) > 0 {
		payload.Questions = []*engine.Question{visible[len(visible)-1]}
	}
	return payload, nil
}
