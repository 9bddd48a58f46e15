// Package session implements the questionnaire session lifecycle: an
// in-memory store with a TTL-sweeping janitor, and a Redis-backed store
// for multi-replica deployments, behind a common Store interface.
package session

import (
	"github.com/google/uuid"

	"github.com/aiquest/classifier/pkg/evaluator"
)

// Session is the per-user mutable state: answers, derived parameters, the
// current module, and (once terminal) the conclusion.
type Session struct {
	ID              string              `json:"id"`
	Answers         evaluator.Answers   `json:"answers"`
	Parameters      evaluator.Params    `json:"parameters"`
	CurrentModuleID *string             `json:"current_module_id"`
	Lang            string              `json:"lang"`
	Conclusion      *evaluator.Conclusion `json:"conclusion,omitempty"`
}

// New creates a fresh session positioned at firstModuleID (nil when the
// engine has no modules) for lang, with a freshly generated id — mirroring
// the teacher's pkg/session.New(...) use of uuid for session identity.
func New(firstModuleID *string, lang string) *Session {
	return &Session{
		ID:              uuid.NewString(),
		Answers:         evaluator.Answers{},
		Parameters:      evaluator.Params{},
		CurrentModuleID: firstModuleID,
		Lang:            lang,
	}
}

// Clone returns a deep-enough copy of s suitable for mutation without
// affecting a concurrently-read copy (answers/parameters maps are copied;
// the conclusion pointer, once set, is treated as immutable).
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:         s.ID,
		Answers:    make(evaluator.Answers, len(s.Answers)),
		Parameters: make(evaluator.Params, len(s.Parameters)),
		Lang:       s.Lang,
		Conclusion: s.Conclusion,
	}
	for k, v := range s.Answers {
		clone.Answers[k] = v
	}
	for k, v := range s.Parameters {
		clone.Parameters[k] = v
	}
	if s.CurrentModuleID != nil {
		id := *s.CurrentModuleID
		clone.CurrentModuleID = &id
	}
	return clone
}

// Persisted session layout (§6): {id, answers, parameters,
// current_module_id, lang, conclusion}. The json tags above already give
// this shape, and encoding/json's normal zero-value defaulting means a
// session written by a partial/older schema decodes without error — no
// intermediate wire struct is needed.
