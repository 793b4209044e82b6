package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/scorecard/internal/audit"
	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/pkg/logger"
)

type fakeRunStore struct {
	reports   map[string]*contracts.Report
	lastLimit int
}

func (f *fakeRunStore) GetRun(_ context.Context, runID string) (*contracts.Report, error) {
	if r, ok := f.reports[runID]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", audit.ErrRunNotFound, runID)
}

func (f *fakeRunStore) ListRuns(_ context.Context, limit int) ([]audit.RunSummary, error) {
	f.lastLimit = limit
	runs := make([]audit.RunSummary, 0, len(f.reports))
	for id, r := range f.reports {
		runs = append(runs, audit.RunSummary{RunID: id, PolicyID: r.PolicyID})
	}
	return runs, nil
}

func runsRouter(store RunStore) *mux.Router {
	h := NewRunsHandler(store, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/runs", h.List)
	r.HandleFunc("/runs/{run_id}", h.Get)
	return r
}

func TestRunsHandler(t *testing.T) {
	store := &fakeRunStore{reports: map[string]*contracts.Report{
		"run-1": {RunID: "run-1", PolicyID: "reference"},
	}}
	router := runsRouter(store)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"get existing", "/runs/run-1", http.StatusOK},
		{"get missing", "/runs/run-404", http.StatusNotFound},
		{"list default", "/runs", http.StatusOK},
		{"list with limit", "/runs?limit=5", http.StatusOK},
		{"list bad limit", "/runs?limit=0", http.StatusBadRequest},
		{"list non-numeric limit", "/runs?limit=all", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.Equal(t, 5, store.lastLimit)
}

func TestRunsHandler_GetBody(t *testing.T) {
	store := &fakeRunStore{reports: map[string]*contracts.Report{
		"run-1": {RunID: "run-1", PolicyID: "reference"},
	}}

	rec := httptest.NewRecorder()
	runsRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/run-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got contracts.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "reference", got.PolicyID)
}
