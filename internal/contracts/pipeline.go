package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 리포트에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3
//   Validate  Index  Accumulate  Rank

// Stage represents a pipeline stage
type Stage string

const (
	// StageValidate S0: 입력 데이터셋/옵션 검증
	// 위치: internal/analysis/validator.go
	StageValidate Stage = "S0_VALIDATE"

	// StageIndex S1: seller-id, sku 인덱스 생성
	// 위치: internal/analysis/indexer.go
	StageIndex Stage = "S1_INDEX"

	// StageAccumulate S2: 거래별 매출/원가 누적
	// 위치: internal/analysis/accumulator.go
	StageAccumulate Stage = "S2_ACCUMULATE"

	// StageRank S3: 이익 순 정렬, 보너스, Top 상품
	// 위치: internal/analysis/ranker.go
	StageRank Stage = "S3_RANK"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageValidate:
		return "S0"
	case StageIndex:
		return "S1"
	case StageAccumulate:
		return "S2"
	case StageRank:
		return "S3"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageValidate,
		StageIndex,
		StageAccumulate,
		StageRank,
	}
}

// PipelineResult represents the result of a pipeline stage execution
type PipelineResult struct {
	Stage       Stage                  `json:"stage"`
	Success     bool                   `json:"success"`
	InputCount  int                    `json:"input_count"`
	OutputCount int                    `json:"output_count"`
	Duration    int64                  `json:"duration_us"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
