// Package orchestrator implements the per-request protocol described in
// §4.5: it loads a session and engine, validates and applies submitted
// answers, reconciles parameters and pruning to a fixed point, decides
// the next module or terminal result, and persists the outcome.
package orchestrator

import (
	"sync"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/evaluator"
	"github.com/aiquest/classifier/pkg/session"
	"github.com/aiquest/classifier/pkg/value"
)

// maxPruneIterations bounds the recompute-parameters/prune loop per §4.5
// step 8 and §5's cancellation guarantee.
const maxPruneIterations = 5

// Services is the explicit dependency container recommended by §9's
// design notes in place of process-wide singletons: an engine loader and
// a session store, constructed once at process init and passed by
// reference into the HTTP layer.
type Services struct {
	Loader *engine.Loader
	Store  session.Store
}

// Orchestrator drives the questionnaire protocol over a Services
// container. It holds no state itself beyond a per-session-id lock
// table, so unrelated sessions never block each other (§5).
type Orchestrator struct {
	services Services
	locks    sync.Map // session id -> *sync.Mutex
}

func New(services Services) *Orchestrator {
	return &Orchestrator{services: services}
}

func (o *Orchestrator) lockSession(id string) func() {
	muAny, _ := o.locks.LoadOrStore(id, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// StartResult is the response shape for POST /start.
type StartResult struct {
	SessionID string
	Module    *evaluator.ModulePayload
}

// Start creates a session positioned at the first module of lang's
// engine and persists it.
func (o *Orchestrator) Start(rawLang string) (*StartResult, error) {
	lang := NormalizeLang(rawLang, "")

	eng, err := o.services.Loader.Get(lang)
	if err != nil {
		return nil, err
	}

	var firstID *string
	if m := eng.FirstModule(); m != nil {
		id := m.ID
		firstID = &id
	}

	sess, err := o.services.Store.Create(firstID, lang)
	if err != nil {
		return nil, err
	}

	result := &StartResult{SessionID: sess.ID}
	if firstID != nil {
		payload, err := evaluator.BuildModulePayload(eng.ModulesByID[*firstID], sess.Answers, evaluator.BuildEnv(sess.Parameters, sess.Answers))
		if err != nil {
			return nil, err
		}
		result.Module = payload
	}
	return result, nil
}

// loadSessionAndEngine fetches the session, resolves+normalizes its
// language against rawLang, persists a language change if one occurred,
// and loads the corresponding engine.
func (o *Orchestrator) loadSessionAndEngine(sessionID, rawLang string) (*session.Session, *engine.Engine, error) {
	sess, err := o.services.Store.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	lang := NormalizeLang(rawLang, sess.Lang)
	if lang != sess.Lang {
		sess.Lang = lang
		if err := o.services.Store.Save(sess); err != nil {
			return nil, nil, err
		}
	}

	eng, err := o.services.Loader.Get(lang)
	if err != nil {
		return nil, nil, err
	}
	return sess, eng, nil
}

// GetModule returns moduleID's presentation payload for sessionID.
func (o *Orchestrator) GetModule(sessionID, moduleID, rawLang string) (*evaluator.ModulePayload, error) {
	unlock := o.lockSession(sessionID)
	defer unlock()

	sess, eng, err := o.loadSessionAndEngine(sessionID, rawLang)
	if err != nil {
		return nil, err
	}

	mod, ok := eng.ModulesByID[moduleID]
	if !ok {
		return nil, ErrModuleNotFound
	}

	env := evaluator.BuildEnv(sess.Parameters, sess.Answers)
	return evaluator.BuildModulePayload(mod, sess.Answers, env)
}

// GetQuestion returns a single question definition by id.
func (o *Orchestrator) GetQuestion(sessionID, questionID, rawLang string) (*engine.Question, error) {
	unlock := o.lockSession(sessionID)
	defer unlock()

	_, eng, err := o.loadSessionAndEngine(sessionID, rawLang)
	if err != nil {
		return nil, err
	}

	q, ok := eng.QuestionsByID[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// ResultResponse is the response shape for GET /result.
type ResultResponse struct {
	Parameters evaluator.Params
	Conclusion *evaluator.Conclusion
}

// Result returns the session's current parameters and, once terminal,
// its conclusion.
func (o *Orchestrator) Result(sessionID, rawLang string) (*ResultResponse, error) {
	unlock := o.lockSession(sessionID)
	defer unlock()

	sess, _, err := o.loadSessionAndEngine(sessionID, rawLang)
	if err != nil {
		return nil, err
	}

	return &ResultResponse{Parameters: sess.Parameters, Conclusion: sess.Conclusion}, nil
}

// SubmitAnswerInput is the request shape for POST /submit-answer.
type SubmitAnswerInput struct {
	SessionID string
	ModuleID  string // "" means "use the session's current module"
	Answers   map[string]value.Value
	Replace   bool
	Lang      string
}

// SubmitAnswerResult is the response shape for POST /submit-answer.
type SubmitAnswerResult struct {
	SessionID      string
	Parameters     evaluator.Params
	Next           evaluator.NextAction
	ModuleComplete bool
	Module         *evaluator.ModulePayload
	Conclusion     *evaluator.Conclusion
}

// SubmitAnswer implements the 10-step sequence of §4.5.
func (o *Orchestrator) SubmitAnswer(in SubmitAnswerInput) (*SubmitAnswerResult, error) {
	unlock := o.lockSession(in.SessionID)
	defer unlock()

	sess, eng, err := o.loadSessionAndEngine(in.SessionID, in.Lang)
	if err != nil {
		return nil, err
	}

	activeModuleID := in.ModuleID
	if activeModuleID == "" {
		if sess.CurrentModuleID == nil {
			return nil, ErrModuleIDRequired
		}
		activeModuleID = *sess.CurrentModuleID
	}
	activeModule, ok := eng.ModulesByID[activeModuleID]
	if !ok {
		return nil, ErrModuleNotFound
	}

	if in.ModuleID != "" {
		sess.CurrentModuleID = &activeModuleID
	}

	if in.Replace {
		sess.Answers = evaluator.Answers{}
	}

	for qid, v := range in.Answers {
		q, ok := eng.QuestionsByID[qid]
		if !ok {
			return nil, &evaluator.UnknownQuestionError{QuestionID: qid}
		}
		if err := evaluator.ValidateAnswer(q, v); err != nil {
			return nil, err
		}
		sess.Answers[qid] = v
	}

	answers, params, err := evaluator.ReconcileToFixedPoint(eng, sess.Answers, maxPruneIterations)
	if err != nil {
		return nil, err
	}
	sess.Answers = answers
	sess.Parameters = params

	env := evaluator.BuildEnv(sess.Parameters, sess.Answers)
	complete, err := evaluator.ModuleComplete(activeModule, sess.Answers, env)
	if err != nil {
		return nil, err
	}

	result := &SubmitAnswerResult{
		SessionID:      sess.ID,
		Parameters:     sess.Parameters,
		ModuleComplete: complete,
	}

	if !complete {
		result.Next = evaluator.NextAction{Type: evaluator.NextModule, ModuleID: activeModule.ID}
		payload, err := evaluator.BuildModulePayload(activeModule, sess.Answers, env)
		if err != nil {
			return nil, err
		}
		result.Module = payload
	} else {
		next, err := evaluator.Route(eng, activeModule, sess.Answers, sess.Parameters, complete)
		if err != nil {
			return nil, err
		}
		result.Next = next

		switch next.Type {
		case evaluator.NextModule:
			sess.CurrentModuleID = &next.ModuleID
			if targetMod, ok := eng.ModulesByID[next.ModuleID]; ok {
				payload, err := evaluator.BuildModulePayload(targetMod, sess.Answers, env)
				if err != nil {
					return nil, err
				}
				result.Module = payload
			}
		case evaluator.NextResult:
			sess.CurrentModuleID = nil
			conclusion := evaluator.BuildConclusion(sess.Parameters)
			sess.Conclusion = &conclusion
			result.Conclusion = sess.Conclusion
		}
	}

	if err := o.services.Store.Save(sess); err != nil {
		return nil, err
	}
	return result, nil
}
