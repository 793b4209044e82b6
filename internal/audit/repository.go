package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/scorecard/internal/contracts"
)

// ErrRunNotFound is returned when no archived run has the requested id
var ErrRunNotFound = errors.New("scorecard run not found")

// RunSummary is one row of the run archive without the full report
type RunSummary struct {
	RunID       string    `json:"run_id"`
	PolicyID    string    `json:"policy_id"`
	Trigger     string    `json:"trigger"`
	GeneratedAt time.Time `json:"generated_at"`
	Sellers     int       `json:"sellers"`
	TotalBonus  float64   `json:"total_bonus"`
	Skipped     int       `json:"skipped"`
}

// Repository archives scorecard runs
// ⭐ SSOT: 스코어카드 실행 이력 저장/조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveRun stores a report; saving the same run twice overwrites it
func (r *Repository) SaveRun(ctx context.Context, trigger string, report *contracts.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO audit.scorecard_runs (
			run_id, policy_id, trigger, generated_at, sellers, total_bonus, skipped, report
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id) DO UPDATE SET
			policy_id = EXCLUDED.policy_id,
			trigger = EXCLUDED.trigger,
			generated_at = EXCLUDED.generated_at,
			sellers = EXCLUDED.sellers,
			total_bonus = EXCLUDED.total_bonus,
			skipped = EXCLUDED.skipped,
			report = EXCLUDED.report
	`

	_, err = r.pool.Exec(ctx, query,
		report.RunID, report.PolicyID, trigger, report.GeneratedAt,
		len(report.Sellers), report.TotalBonus().Float(), report.Skipped.Total(), reportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun loads an archived report by run id
func (r *Repository) GetRun(ctx context.Context, runID string) (*contracts.Report, error) {
	query := `SELECT report FROM audit.scorecard_runs WHERE run_id = $1`

	var reportJSON []byte
	err := r.pool.QueryRow(ctx, query, runID).Scan(&reportJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var report contracts.Report
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// ListRuns returns the most recent runs, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, policy_id, trigger, generated_at, sellers, total_bonus, skipped
		FROM audit.scorecard_runs
		ORDER BY generated_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunSummary, 0, limit)
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.PolicyID, &s.Trigger, &s.GeneratedAt, &s.Sellers, &s.TotalBonus, &s.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}
