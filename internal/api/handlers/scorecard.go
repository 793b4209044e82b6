package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/scorecard/internal/analysis"
	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/internal/policy"
	"github.com/wonny/scorecard/internal/report"
	"github.com/wonny/scorecard/internal/source"
	"github.com/wonny/scorecard/pkg/logger"
)

// maxRequestBytes caps POST /api/scorecard bodies
const maxRequestBytes = 32 << 20

// ScorecardService is the report service as seen by the API
type ScorecardService interface {
	Generate(ctx context.Context, trigger string, data *contracts.Dataset, pol *policy.Config) (*contracts.Report, bool, error)
	Refresh(ctx context.Context, trigger string, src source.Source, pol *policy.Config) (*contracts.Report, error)
	Latest(ctx context.Context, policyID string) (*contracts.Report, bool, error)
}

// ScorecardHandler handles scorecard endpoints
// ⭐ SSOT: 스코어카드 API 핸들러는 이 구조체에서만
type ScorecardHandler struct {
	service ScorecardService
	source  source.Source // nil: /latest only serves cached reports
	policy  *policy.Config
	logger  *logger.Logger
}

// NewScorecardHandler creates a new scorecard handler
func NewScorecardHandler(svc ScorecardService, src source.Source, pol *policy.Config, log *logger.Logger) *ScorecardHandler {
	if pol == nil {
		pol = policy.Default()
	}
	return &ScorecardHandler{
		service: svc,
		source:  src,
		policy:  pol,
		logger:  log,
	}
}

// ScorecardRequest is the body of POST /api/scorecard
type ScorecardRequest struct {
	Dataset *contracts.Dataset `json:"dataset"`
	Policy  json.RawMessage    `json:"policy,omitempty"` // overrides the configured policy
}

// Create computes a scorecard for the posted dataset
// POST /api/scorecard
func (h *ScorecardHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req ScorecardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	pol := h.policy
	if len(req.Policy) > 0 && string(req.Policy) != "null" {
		override, err := policy.DecodeJSON(req.Policy)
		if err != nil {
			RespondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid policy",
				Code:    "INVALID_POLICY",
				Details: err.Error(),
			})
			return
		}
		pol = override
	}

	result, cached, err := h.service.Generate(r.Context(), report.TriggerAPI, req.Dataset, pol)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(cached))
	RespondJSON(w, http.StatusOK, result)
}

// Latest returns the latest scorecard of the configured source,
// recomputing it when nothing is cached
// GET /api/scorecard/latest
func (h *ScorecardHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cachedReport, found, err := h.service.Latest(ctx, h.policy.Meta.PolicyID)
	if err != nil {
		h.logger.WithError(err).Warn("Latest report lookup failed")
	}
	if found {
		w.Header().Set("X-Cache", cacheHeader(true))
		RespondJSON(w, http.StatusOK, cachedReport)
		return
	}

	if h.source == nil {
		RespondError(w, http.StatusNotFound, "NO_REPORT", "No scorecard has been computed yet")
		return
	}

	fresh, err := h.service.Refresh(ctx, report.TriggerAPI, h.source, h.policy)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(false))
	RespondJSON(w, http.StatusOK, fresh)
}

// respondPipelineError maps fatal pipeline errors to 422 and the rest to 500
func (h *ScorecardHandler) respondPipelineError(w http.ResponseWriter, err error) {
	var policyErr policy.ValidationError

	switch {
	case errors.Is(err, analysis.ErrInvalidInput),
		errors.Is(err, analysis.ErrEmptyInput),
		errors.Is(err, analysis.ErrInvalidSeller):
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Dataset rejected",
			Code:    "INVALID_DATASET",
			Details: err.Error(),
		})
	case errors.As(err, &policyErr),
		errors.Is(err, analysis.ErrInvalidOptions),
		errors.Is(err, analysis.ErrMissingStrategy):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid policy",
			Code:    "INVALID_POLICY",
			Details: err.Error(),
		})
	default:
		h.logger.WithError(err).Error("Scorecard generation failed")
		RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to generate scorecard")
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
