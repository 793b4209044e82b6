package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/scorecard/internal/audit"
	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/pkg/logger"
)

// RunStore reads archived runs
type RunStore interface {
	GetRun(ctx context.Context, runID string) (*contracts.Report, error)
	ListRuns(ctx context.Context, limit int) ([]audit.RunSummary, error)
}

// RunsHandler serves the run archive
type RunsHandler struct {
	store  RunStore
	logger *logger.Logger
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(store RunStore, log *logger.Logger) *RunsHandler {
	return &RunsHandler{store: store, logger: log}
}

// List returns recent runs
// GET /api/scorecard/runs?limit=20
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			RespondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to list runs")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// Get returns one archived report
// GET /api/scorecard/runs/{run_id}
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["run_id"]

	report, err := h.store.GetRun(r.Context(), runID)
	if errors.Is(err, audit.ErrRunNotFound) {
		RespondError(w, http.StatusNotFound, "RUN_NOT_FOUND", "Run not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("run_id", runID).Error("Failed to get run")
		RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to get run")
		return
	}

	RespondJSON(w, http.StatusOK, report)
}
