package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/wonny/scorecard/internal/contracts"
)

// Analyzer runs the S0 → S3 pipeline over one in-memory dataset.
// An Analyzer holds no per-run state and may be shared; each Run owns its accumulator.
type Analyzer struct {
	diag      Diagnostics
	validator *Validator
	now       func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithDiagnostics sets the sink for warnings and malformed-seller errors
func WithDiagnostics(diag Diagnostics) Option {
	return func(a *Analyzer) {
		if diag != nil {
			a.diag = diag
		}
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		diag: nopSink{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.validator = NewValidator(a.diag)
	return a
}

// Analyze returns the ranked scorecard, profit descending
func (a *Analyzer) Analyze(data *contracts.Dataset, opts *contracts.Options) ([]contracts.SellerResult, error) {
	report, err := a.Run(data, opts)
	if err != nil {
		return nil, err
	}
	return report.Sellers, nil
}

// Run executes every stage and returns the scorecard with per-stage results.
// Validation failures abort before any accumulation.
func (a *Analyzer) Run(data *contracts.Dataset, opts *contracts.Options) (*contracts.Report, error) {
	stages := make([]contracts.PipelineResult, 0, len(contracts.AllStages()))

	// S0
	start := time.Now()
	if err := a.validator.Validate(data, opts); err != nil {
		return nil, err
	}
	stages = append(stages, stageResult(contracts.StageValidate, start, len(data.Sellers), len(data.Sellers), nil))

	// S1
	start = time.Now()
	idx := BuildIndex(data)
	stages = append(stages, stageResult(contracts.StageIndex, start,
		len(data.Sellers)+len(data.Products), len(idx.Sellers)+len(idx.Products),
		map[string]interface{}{
			"sellers":  len(idx.Sellers),
			"products": len(idx.Products),
		}))

	// S2
	start = time.Now()
	acc := NewAccumulator(data.Sellers, idx, opts.Revenue, a.diag)
	acc.AddRecords(data.PurchaseRecords)
	skipped := acc.Skipped()
	stages = append(stages, stageResult(contracts.StageAccumulate, start,
		len(data.PurchaseRecords), len(data.PurchaseRecords)-skipped.UnknownSellers,
		map[string]interface{}{
			"unknown_sellers":  skipped.UnknownSellers,
			"malformed_items":  skipped.MalformedItems,
			"unknown_products": skipped.UnknownProducts,
		}))

	// S3
	start = time.Now()
	accounts := acc.accountsInSellerOrder()
	results := NewRanker(opts.Bonus, a.diag).Rank(accounts)
	stages = append(stages, stageResult(contracts.StageRank, start, len(accounts), len(results), nil))

	return &contracts.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: a.now().UTC(),
		Sellers:     results,
		Stages:      stages,
		Skipped:     skipped,
	}, nil
}

func stageResult(stage contracts.Stage, start time.Time, in, out int, meta map[string]interface{}) contracts.PipelineResult {
	return contracts.PipelineResult{
		Stage:       stage,
		Success:     true,
		InputCount:  in,
		OutputCount: out,
		Duration:    time.Since(start).Microseconds(),
		Metadata:    meta,
	}
}
