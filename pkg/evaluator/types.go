// Package evaluator implements the engine's pure, stateless evaluation
// rules: visibility, validation, parameter derivation, template
// rendering, routing, pruning, and the terminal conclusion projection.
// Every exported function is a pure function of its arguments — no
// package-level state, matching the invariant that parameters are a pure
// function of answers and the engine.
package evaluator

import (
	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/value"
)

// Answers is the question-id -> validated-answer map carried on a Session.
type Answers map[string]value.Value

// Params is the variable-name -> derived-value map carried on a Session.
type Params map[string]value.Value

// BuildEnv merges parameters and answers into the flat, normalized
// environment conditions are evaluated against. Answers shadow parameters
// of the same (normalized) name.
func BuildEnv(params Params, answers Answers) expr.Env {
	raw := make(map[string]value.Value, len(params)+len(answers))
	for k, v := range params {
		raw[k] = v
	}
	for k, v := range answers {
		raw[k] = v
	}
	return BuildEnvFromRaw(raw)
}

// BuildEnvFromRaw normalizes an already-merged name -> value map into an
// evaluation environment, exposed so callers that need to layer in extra
// bindings (e.g. routing's Module_finished) can do so before normalizing.
func BuildEnvFromRaw(raw map[string]value.Value) expr.Env {
	return expr.NormalizedEnv(raw)
}

// ModulePayload is the presentation-facing view of a module returned to
// clients: its identity plus the single question the client should show
// next (the "sliding window of one").
type ModulePayload struct {
	ModuleID    string
	Title       string
	Description string
	Questions   []*engine.Question
}
