package evaluator

import "github.com/aiquest/classifier/pkg/engine"

// PruneHiddenAnswers drops entries from answers whose owning question is
// no longer visible under the current environment, per §4.3's
// "answers[q] present => q visible" invariant. It returns a (possibly
// unmodified) copy and whether anything was removed.
func PruneHiddenAnswers(eng *engine.Engine, answers Answers, params Params) (Answers, bool, error) {
	env := BuildEnv(params, answers)

	pruned := make(Answers, len(answers))
	changed := false

	for qid, v := range answers {
		q, ok := eng.QuestionsByID[qid]
		if !ok {
			// An answer for a question the engine no longer defines: drop it
			// silently, same as an invisible question.
			changed = true
			continue
		}
		visible, err := q.Visible(env)
		if err != nil {
			return nil, false, err
		}
		if !visible {
			changed = true
			continue
		}
		pruned[qid] = v
	}

	return pruned, changed, nil
}

// ReconcileToFixedPoint implements the orchestrator's "recompute
// parameters, then prune" loop, iterating up to maxIterations times or
// until pruning removes nothing. It returns the final answers and params.
func ReconcileToFixedPoint(eng *engine.Engine, answers Answers, maxIterations int) (Answers, Params, error) {
	params, err := DeriveParameters(eng, answers)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < maxIterations; i++ {
		prunedAnswers, changed, err := PruneHiddenAnswers(eng, answers, params)
		if err != nil {
			return nil, nil, err
		}
		if !changed {
			break
		}
		answers = prunedAnswers
		params, err = DeriveParameters(eng, answers)
		if err != nil {
			return nil, nil, err
		}
	}

	return answers, params, nil
}
