package evaluator

import "fmt"

// ValidationError is a 400-class client fault: a submitted answer does
// not match its question's type/option rules.
type ValidationError struct {
	QuestionID string
	Reason     string // "wrong_type" | "unknown_option" | "duplicates" | "exclusive"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Reason)
}

// UnknownQuestionError is a 400-class client fault: an answer was
// submitted for a question id the engine has no record of.
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return "unknown question: " + e.QuestionID
}

// RouterTargetMissingError is a 500-class authoring fault: a matched
// jump/next router rule carries no target module id.
type RouterTargetMissingError struct {
	ModuleID string
	Target   string
}

func (e *RouterTargetMissingError) Error() string {
	return fmt.Sprintf("router target %q missing for module %s", e.Target, e.ModuleID)
}
