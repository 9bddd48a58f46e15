package evaluator

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/value"
)

// ValidateAnswer checks a submitted answer against its question's type,
// per §4.3: boolean must be a literal bool; single_choice must equal one
// option's value; multi_choice must be a duplicate-free list whose
// elements are all known options, with an exclusive-flagged element
// forcing a length of exactly 1.
func ValidateAnswer(q *engine.Question, v value.Value) error {
	switch q.Type {
	case "boolean":
		if !v.IsBool() {
			return &ValidationError{QuestionID: q.ID, Reason: "wrong_type"}
		}
		return nil

	case "single_choice":
		for _, opt := range q.Options {
			if value.Equal(opt.Value, v) {
				return nil
			}
		}
		return &ValidationError{QuestionID: q.ID, Reason: "unknown_option"}

	case "multi_choice", "multiple_choice":
		items, ok := v.ListVal()
		if !ok {
			return &ValidationError{QuestionID: q.ID, Reason: "wrong_type"}
		}

		seen := make([]value.Value, 0, len(items))
		hasExclusive := false
		for _, item := range items {
			for _, prior := range seen {
				if value.Equal(prior, item) {
					return &ValidationError{QuestionID: q.ID, Reason: "duplicates"}
				}
			}
			seen = append(seen, item)

			matched := false
			for _, opt := range q.Options {
				if value.Equal(opt.Value, item) {
					matched = true
					if opt.Exclusive {
						hasExclusive = true
					}
					break
				}
			}
			if !matched {
				return &ValidationError{QuestionID: q.ID, Reason: "unknown_option"}
			}
		}

		if hasExclusive && len(items) != 1 {
			return &ValidationError{QuestionID: q.ID, Reason: "exclusive"}
		}
		return nil

	default:
		// Unknown question types accept any value; the type tag itself is
		// authoring content, not something the evaluator polices.
		return nil
	}
}
