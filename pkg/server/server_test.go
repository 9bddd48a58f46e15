package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiquest/classifier/pkg/engine"
	"github.com/aiquest/classifier/pkg/orchestrator"
	"github.com/aiquest/classifier/pkg/session"
)

type memSource struct{ files map[string][]byte }

func (m *memSource) List(dir string) ([]engine.FileStat, error) {
	var out []engine.FileStat
	now := time.Now()
	for name := range m.files {
		out = append(out, engine.FileStat{Name: name, Path: name, ModTime: now})
	}
	return out, nil
}

func (m *memSource) Read(path string) ([]byte, error) { return m.files[path], nil }

const moduleYAML = `
module_id: "1_intro"
questions:
  - id: q1
    type: boolean
router:
  - condition: "q1 == True"
    action: terminate
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	src := &memSource{files: map[string][]byte{"1.yaml": []byte(moduleYAML)}}
	loader := engine.NewLoaderWithSource(src, "resources", 0)
	store := session.NewInMemoryStore(time.Hour, time.Minute, nil)
	t.Cleanup(func() { store.Close() })
	o := orchestrator.New(orchestrator.Services{Loader: loader, Store: store})
	return New(o, nil).Handler()
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStartAndSubmitAnswer(t *testing.T) {
	h := newTestServer(t)

	startReq := httptest.NewRequest(http.MethodPost, "/start?lang=en", nil)
	startRec := httptest.NewRecorder()
	h.ServeHTTP(startRec, startReq)
	require.Equal(t, http.StatusOK, startRec.Code)

	var started struct {
		SessionID string `json:"session_id"`
		Module    struct {
			ModuleID string `json:"module_id"`
		} `json:"module"`
	}
	require.NoError(t, json.Unmarshal(startRec.Body.Bytes(), &started))
	assert.Equal(t, "1_intro", started.Module.ModuleID)

	body := `{"session_id":"` + started.SessionID + `","answers":{"q1":true}}`
	submitReq := httptest.NewRequest(http.MethodPost, "/submit-answer", strings.NewReader(body))
	submitReq.Header.Set("Content-Type", "application/json")
	submitRec := httptest.NewRecorder()
	h.ServeHTTP(submitRec, submitReq)

	require.Equal(t, http.StatusOK, submitRec.Code)
	assert.Contains(t, submitRec.Body.String(), `"type":"result"`)
}

func TestSessionNotFoundMapsTo404(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/result?session_id=missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "session_not_found")
}
