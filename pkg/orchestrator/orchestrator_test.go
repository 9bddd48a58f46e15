package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/evaluator"
	"github.com/aiquest/classifier/pkg/session"
	"github.com/aiquest/classifier/pkg/value"
)

type memSource struct {
	files map[string][]byte
}

func (m *memSource) List(dir string) ([]engine.FileStat, error) {
	var out []engine.FileStat
	now := time.Now()
	for name := range m.files {
		out = append(out, engine.FileStat{Name: name, Path: name, ModTime: now})
	}
	return out, nil
}

func (m *memSource) Read(path string) ([]byte, error) { return m.files[path], nil }

const oneModuleYAML = `
module_id: "1_intro"
title: Intro
questions:
  - id: q1
    type: boolean
router:
  - condition: "q1 == True"
    action: terminate
`

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	src := &memSource{files: map[string][]byte{"1_intro.yaml": []byte(oneModuleYAML)}}
	loader := engine.NewLoaderWithSource(src, "resources", 0)
	store := session.NewInMemoryStore(time.Hour, time.Minute, nil)
	t.Cleanup(func() { store.Close() })
	return New(Services{Loader: loader, Store: store})
}

func TestOrchestrator_StartAndSubmitAnswer_ReachesResult(t *testing.T) {
	o := newTestOrchestrator(t)

	started, err := o.Start("en")
	require.NoError(t, err)
	require.NotNil(t, started.Module)
	assert.Equal(t, "1_intro", started.Module.ModuleID)

	res, err := o.SubmitAnswer(SubmitAnswerInput{
		SessionID: started.SessionID,
		Answers:   map[string]value.Value{"q1": value.Bool(true)},
	})
	require.NoError(t, err)
	assert.True(t, res.ModuleComplete)
	assert.Equal(t, evaluator.NextResult, res.Next.Type)
	require.NotNil(t, res.Conclusion)
}

func TestOrchestrator_UnknownSessionFails(t *testing.T) {
	o := newTestOrchestrator(t)

	_, err := o.SubmitAnswer(SubmitAnswerInput{SessionID: "nope"})
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestOrchestrator_UnknownQuestionFails(t *testing.T) {
	o := newTestOrchestrator(t)

	started, err := o.Start("en")
	require.NoError(t, err)

	_, err = o.SubmitAnswer(SubmitAnswerInput{
		SessionID: started.SessionID,
		Answers:   map[string]value.Value{"does-not-exist": value.Bool(true)},
	})
	var uerr *evaluator.UnknownQuestionError
	require.ErrorAs(t, err, &uerr)
}

func TestOrchestrator_MissingModuleIDWithNoCurrent(t *testing.T) {
	o := newTestOrchestrator(t)

	started, err := o.Start("en")
	require.NoError(t, err)

	_, err = o.SubmitAnswer(SubmitAnswerInput{
		SessionID: started.SessionID,
		Answers:   map[string]value.Value{"q1": value.Bool(true)},
	})
	require.NoError(t, err)

	// The session is now terminal (current_module_id == nil); resubmitting
	// without an explicit module_id must fail per §4.5 step 3.
	_, err = o.SubmitAnswer(SubmitAnswerInput{SessionID: started.SessionID})
	assert.ErrorIs(t, err, ErrModuleIDRequired)
}
