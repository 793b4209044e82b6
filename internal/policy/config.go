package policy

// Revenue methods
const (
	MethodSimple  = "SIMPLE"  // sale_price × quantity × (1 − discount/100)
	MethodCatalog = "CATALOG" // catalog price × quantity
)

// Config는 스코어카드 산정 정책의 전체 설정
type Config struct {
	Meta    Meta    `yaml:"meta" json:"meta"`
	Revenue Revenue `yaml:"revenue" json:"revenue"`
	Bonus   Bonus   `yaml:"bonus" json:"bonus"`
}

// Meta 메타 정보
type Meta struct {
	PolicyID    string `yaml:"policy_id" json:"policy_id" validate:"required"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Revenue selects how line-item revenue is computed
type Revenue struct {
	Method string `yaml:"method" json:"method" validate:"required,oneof=SIMPLE CATALOG"`
}

// Bonus is a rank-tiered percentage of profit.
// Tier precedence: leader (rank 0), podium (ranks below podium_size), last, default.
type Bonus struct {
	LeaderPct  float64 `yaml:"leader_pct" json:"leader_pct" validate:"gte=0,lte=100"`
	PodiumPct  float64 `yaml:"podium_pct" json:"podium_pct" validate:"gte=0,lte=100"`
	PodiumSize int     `yaml:"podium_size" json:"podium_size" validate:"gte=1"` // includes the leader
	LastPct    float64 `yaml:"last_pct" json:"last_pct" validate:"gte=0,lte=100"`
	DefaultPct float64 `yaml:"default_pct" json:"default_pct" validate:"gte=0,lte=100"`
}

// Default returns the reference policy: 15% / 10% for ranks 1-2 / 0% last / 5% otherwise
func Default() *Config {
	return &Config{
		Meta: Meta{
			PolicyID: "reference",
			Version:  "1",
		},
		Revenue: Revenue{Method: MethodCatalog},
		Bonus: Bonus{
			LeaderPct:  15,
			PodiumPct:  10,
			PodiumSize: 3,
			LastPct:    0,
			DefaultPct: 5,
		},
	}
}
