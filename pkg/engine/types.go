// Package engine builds and caches the immutable, per-language
// representation of a questionnaire from its YAML resource files.
package engine

import (
	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/value"
)

// Option is one choice of a single_choice/multi_choice question. Label,
// help text, and any other presentation fields are preserved opaquely in
// Raw so the loader never needs to know about them.
type Option struct {
	Value     value.Value
	Exclusive bool
	Raw       map[string]any
}

// Question is a single prompt within a module.
type Question struct {
	ID            string
	Type          string // "boolean" | "single_choice" | "multi_choice"
	DependencyRaw string
	Dependency    *expr.Condition // nil when DependencyRaw is empty
	Options       []Option
	Raw           map[string]any
}

// Visible reports whether q should be shown given env, per §4.3: a
// question with no dependency is always visible.
func (q *Question) Visible(env expr.Env) (bool, error) {
	if q.Dependency == nil {
		return true, nil
	}
	return q.Dependency.Eval(env)
}

// VariableRule is a single (condition, value) clause inside a Variable.
type VariableRule struct {
	ConditionRaw string
	Condition    *expr.Condition
	Value        value.Value
}

// Variable is a named, derived parameter.
type Variable struct {
	Name         string
	Type         string // "boolean" | "string" | "string_list" | "list" | ""
	InitialValue *value.Value // nil when absent from the YAML source
	Rules        []VariableRule
}

// RouterAction enumerates the case-insensitive router actions.
type RouterAction string

const (
	ActionJump      RouterAction = "jump"
	ActionNext      RouterAction = "next"
	ActionTerminate RouterAction = "terminate"
	ActionEnd       RouterAction = "end"
	ActionFinish    RouterAction = "finish"
)

// IsTerminal reports whether the action ends the session.
func (a RouterAction) IsTerminal() bool {
	return a == ActionTerminate || a == ActionEnd || a == ActionFinish
}

// IsTransition reports whether the action moves to another module.
func (a RouterAction) IsTransition() bool {
	return a == ActionJump || a == ActionNext
}

// RouterRule is one clause of a module's router: a condition paired with
// an action and (for transitions) a target module id.
type RouterRule struct {
	ConditionRaw   string
	Condition      *expr.Condition
	Action         RouterAction
	TargetModuleID string
	Message        string
}

// Module groups a set of questions, the variables they feed, and the
// router rules that decide what happens after the module is complete.
type Module struct {
	ID            string
	ModuleNum     int
	Title         string
	Description   string
	Questions     []*Question
	QuestionsByID map[string]*Question
	Variables     []Variable
	Router        []RouterRule
}

// Engine is the immutable, fully-loaded representation of one language's
// questionnaire. It is safe for unrestricted concurrent reads.
type Engine struct {
	Lang          string
	Modules       []*Module
	ModulesByID   map[string]*Module
	QuestionsByID map[string]*Question
	Constants     map[string]value.Value
}

// FirstModule returns the module with the lowest module_num, or nil when
// the engine has no modules.
func (e *Engine) FirstModule() *Module {
	if len(e.Modules) == 0 {
		return nil
	}
	return e.Modules[0]
}
