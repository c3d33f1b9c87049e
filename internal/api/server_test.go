package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/metrics"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

const lineStage = `{
	"id": "line",
	"name": "Line",
	"width": 3,
	"height": 1,
	"pipes": [[
		{"type": "start", "direction": 0, "isFixed": true},
		{"type": "straight", "direction": 90, "isFixed": false},
		{"type": "end", "direction": 0, "isFixed": true}
	]]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(store, metrics.New(nil), logging.Discard())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestStageCRUD(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/stages", lineStage)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/stages/line", rec.Header().Get("Location"))
	created := decode[stageResponse](t, rec)
	assert.Equal(t, "Line", created.Name)
	require.Len(t, created.Pipes, 1)
	assert.True(t, created.Pipes[0][0].IsFixed)

	rec = do(t, s, http.MethodPost, "/stages", lineStage)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/stages/line", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[stageResponse](t, rec)
	assert.Equal(t, 90, got.Pipes[0][1].Direction)

	renamed := strings.Replace(lineStage, `"name": "Line"`, `"name": "Renamed"`, 1)
	rec = do(t, s, http.MethodPut, "/stages/line", renamed)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Renamed", decode[stageResponse](t, rec).Name)

	rec = do(t, s, http.MethodGet, "/stages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]stageResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "line", list[0].ID)

	rec = do(t, s, http.MethodDelete, "/stages/line", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/stages/line", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodDelete, "/stages/line", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateStageAssignsID(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/stages", `{"name":"Blank","width":2,"height":1,"pipes":[[null,null]]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[stageResponse](t, rec)
	assert.Len(t, created.ID, 36, "expected a UUID, got %q", created.ID)
	assert.Equal(t, "empty", created.Pipes[0][0].Type)
}

func TestStageValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/stages", `{"name":`, http.StatusBadRequest},
		{"missing name", http.MethodPost, "/stages", `{"width":1,"height":1}`, http.StatusUnprocessableEntity},
		{"negative size", http.MethodPost, "/stages", `{"name":"x","width":-1,"height":1}`, http.StatusUnprocessableEntity},
		{"oversized", http.MethodPost, "/stages", `{"name":"x","width":101,"height":1}`, http.StatusUnprocessableEntity},
		{"overflowing size", http.MethodPost, "/stages", `{"name":"x","width":4611686018427387904,"height":4}`, http.StatusUnprocessableEntity},
		{"oversized update", http.MethodPut, "/stages/a", `{"name":"x","width":1,"height":100000}`, http.StatusUnprocessableEntity},
		{"id mismatch", http.MethodPut, "/stages/a", `{"id":"b","name":"x"}`, http.StatusUnprocessableEntity},
		{"update missing", http.MethodPut, "/stages/nope", `{"name":"x"}`, http.StatusNotFound},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestEvaluate(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/evaluate", lineStage)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[evaluateResponse](t, rec)
	assert.True(t, res.Solved)
	assert.Equal(t, [][]bool{{true, true, true}}, res.Connected)
	assert.Equal(t, 1, res.ReachedSinks)
	assert.Empty(t, res.Anomalies)

	broken := strings.Replace(lineStage, `"direction": 90`, `"direction": 0`, 1)
	res = decode[evaluateResponse](t, do(t, s, http.MethodPost, "/evaluate", broken))
	assert.False(t, res.Solved)
	assert.Equal(t, [][]bool{{true, false, false}}, res.Connected)

	res = decode[evaluateResponse](t, do(t, s, http.MethodPost, "/evaluate",
		`{"name":"odd","width":2,"height":1,"pipes":[[{"type":"start","isFixed":true},{"type":"wat"}]]}`))
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, "UNKNOWN_TYPE", res.Anomalies[0].Code)
	assert.Equal(t, 1, res.Anomalies[0].Col)
	assert.True(t, res.Solved, "no sinks means solved")

	body := do(t, s, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, body, `pipes_evaluations_total{solved="true"} 2`)
	assert.Contains(t, body, `pipes_evaluations_total{solved="false"} 1`)
	assert.Contains(t, body, `pipes_api_requests_total{code="200",method="POST",route="/evaluate"} 3`)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestEvaluateClampsOversizedStage(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/evaluate", `{"name":"huge","width":4611686018427387904,"height":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[evaluateResponse](t, rec)
	require.Len(t, res.Connected, 4)
	assert.Len(t, res.Connected[0], core.MaxStageSize)
	require.NotEmpty(t, res.Anomalies)
	assert.Equal(t, core.AnomalyOversize, res.Anomalies[0].Code)
}

// takenStore reports every create as a duplicate, as when a concurrent
// request inserted the same ID first.
type takenStore struct{ StageStore }

func (takenStore) CreateStage(context.Context, core.Stage) (core.Stage, error) {
	return core.Stage{}, storage.ErrExists
}

func TestCreateStageConflictFromStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	s := New(takenStore{store}, nil, logging.Discard())

	rec := do(t, s, http.MethodPost, "/stages", lineStage)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"error":"exists","message":"stage line"}`, rec.Body.String())
}

func TestHandlersLogWithRequestID(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	s := New(store, nil, logging.New(&buf, log.InfoLevel))

	req := httptest.NewRequest(http.MethodPost, "/stages", strings.NewReader(lineStage))
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	out := buf.String()
	assert.Contains(t, out, "stage created")
	assert.Contains(t, out, "request_id=req-42")
}
