package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/expr"
	"github.com/aiquest/classifier/pkg/value"
)

func boolQuestion(id, dependency string) *engine.Question {
	q := &engine.Question{ID: id, Type: "boolean", DependencyRaw: dependency}
	if dependency != "" {
		q.Dependency = expr.Compile(dependency)
	}
	return q
}

func buildEngine(modules ...*engine.Module) *engine.Engine {
	eng := &engine.Engine{
		ModulesByID:   make(map[string]*engine.Module),
		QuestionsByID: make(map[string]*engine.Question),
	}
	for _, m := range modules {
		m.QuestionsByID = make(map[string]*engine.Question)
		for _, q := range m.Questions {
			m.QuestionsByID[q.ID] = q
			eng.QuestionsByID[q.ID] = q
		}
		eng.Modules = append(eng.Modules, m)
		eng.ModulesByID[m.ID] = m
	}
	return eng
}

// S1 — straight path to result.
func TestScenario_StraightPathToResult(t *testing.T) {
	m1 := &engine.Module{
		ID:        "M1",
		Questions: []*engine.Question{boolQuestion("q1", "")},
		Router: []engine.RouterRule{
			{ConditionRaw: "q1 == True", Condition: expr.Compile("q1 == True"), Action: engine.ActionTerminate},
		},
	}
	eng := buildEngine(m1)

	answers := Answers{"q1": value.Bool(true)}
	answers, params, err := ReconcileToFixedPoint(eng, answers, 5)
	require.NoError(t, err)

	complete, err := ModuleComplete(m1, answers, BuildEnv(params, answers))
	require.NoError(t, err)
	assert.True(t, complete)

	next, err := Route(eng, m1, answers, params, complete)
	require.NoError(t, err)
	assert.Equal(t, NextResult, next.Type)
}

// S2 — jump on parameter.
func TestScenario_JumpOnParameter(t *testing.T) {
	roleVar := engine.Variable{
		Name: "Role",
		Type: "string",
		Rules: []engine.VariableRule{
			{ConditionRaw: "else", Condition: expr.Compile("else"), Value: value.String("provider")},
		},
	}
	m1 := &engine.Module{
		ID:        "M1",
		Questions: []*engine.Question{boolQuestion("q1", "")},
		Variables: []engine.Variable{roleVar},
		Router: []engine.RouterRule{
			{ConditionRaw: "Role == 'provider'", Condition: expr.Compile("Role == 'provider'"), Action: engine.ActionJump, TargetModuleID: "M2"},
		},
	}
	m2 := &engine.Module{ID: "M2", Questions: []*engine.Question{boolQuestion("q2", "")}}
	eng := buildEngine(m1, m2)

	answers := Answers{"q1": value.Bool(true)}
	answers, params, err := ReconcileToFixedPoint(eng, answers, 5)
	require.NoError(t, err)

	next, err := Route(eng, m1, answers, params, true)
	require.NoError(t, err)
	assert.Equal(t, NextModule, next.Type)
	assert.Equal(t, "M2", next.ModuleID)
}

// S3 — pruning cascade.
func TestScenario_PruningCascade(t *testing.T) {
	m1 := &engine.Module{
		ID: "M1",
		Questions: []*engine.Question{
			boolQuestion("q1", ""),
			boolQuestion("q2", "q1 == True"),
		},
	}
	eng := buildEngine(m1)

	answers := Answers{"q1": value.Bool(true), "q2": value.Bool(true)}
	answers, params, err := ReconcileToFixedPoint(eng, answers, 5)
	require.NoError(t, err)
	_, hasQ2 := answers["q2"]
	assert.True(t, hasQ2)

	answers["q1"] = value.Bool(false)
	answers, params, err = ReconcileToFixedPoint(eng, answers, 5)
	require.NoError(t, err)

	_, hasQ2 = answers["q2"]
	assert.False(t, hasQ2)

	complete, err := ModuleComplete(m1, answers, BuildEnv(params, answers))
	require.NoError(t, err)
	assert.True(t, complete) // only q1 is visible, and it's answered
}

// S4 — multi-choice exclusivity.
func TestScenario_MultiChoiceExclusivity(t *testing.T) {
	q := &engine.Question{
		ID:   "q",
		Type: "multi_choice",
		Options: []engine.Option{
			{Value: value.String("a")},
			{Value: value.String("b")},
			{Value: value.String("none"), Exclusive: true},
		},
	}

	err := ValidateAnswer(q, value.List([]value.Value{value.String("a"), value.String("none")}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "exclusive", verr.Reason)

	err = ValidateAnswer(q, value.List([]value.Value{value.String("none")}))
	assert.NoError(t, err)

	err = ValidateAnswer(q, value.List([]value.Value{value.String("a"), value.String("a")}))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duplicates", verr.Reason)
}

// S5 — template rendering.
func TestScenario_TemplateRendering(t *testing.T) {
	m1 := &engine.Module{
		ID: "M1",
		Variables: []engine.Variable{
			{
				Name: "Role",
				Type: "string",
				Rules: []engine.VariableRule{
					{ConditionRaw: "else", Condition: expr.Compile("else"), Value: value.String("provider")},
				},
			},
			{
				Name:         "Msg",
				Type:         "string",
				InitialValue: ptr(value.String("role is {{ Role }}")),
			},
		},
	}
	eng := buildEngine(m1)

	params, err := DeriveParameters(eng, Answers{})
	require.NoError(t, err)
	assert.Equal(t, "role is provider", mustString(t, params["Msg"]))
}

func ptr(v value.Value) *value.Value { return &v }

func mustString(t *testing.T, v value.Value) string {
	t.Helper()
	s, ok := v.StringVal()
	require.True(t, ok)
	return s
}

func TestDeriveParameters_Deterministic(t *testing.T) {
	m1 := &engine.Module{
		Variables: []engine.Variable{
			{Name: "Role", Type: "string", Rules: []engine.VariableRule{
				{Condition: expr.Compile("else"), Value: value.String("provider")},
			}},
		},
	}
	eng := buildEngine(m1)
	answers := Answers{"q1": value.Bool(true)}

	p1, err := DeriveParameters(eng, answers)
	require.NoError(t, err)
	p2, err := DeriveParameters(eng, answers)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}
