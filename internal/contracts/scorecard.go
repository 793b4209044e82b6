package contracts

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// TopProductsLimit caps SellerResult.TopProducts
const TopProductsLimit = 10

// SellerStat is a read-only snapshot of one seller's accumulated totals.
// Revenue and Profit are unrounded.
type SellerStat struct {
	SellerID     string             `json:"seller_id"`
	Name         string             `json:"name"`
	Revenue      float64            `json:"revenue"`
	Profit       float64            `json:"profit"`
	SalesCount   int                `json:"sales_count"`
	ProductsSold map[string]float64 `json:"products_sold"`
}

// TopProduct is one entry of a seller's best sellers
type TopProduct struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
}

// Money is a value rounded to cents, always serialized with two decimals
type Money float64

// Round2 rounds half away from zero to two decimals; negative zero becomes zero.
// Values too large to scale are returned unchanged.
func Round2(v float64) float64 {
	scaled := v * 100
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return v
	}
	r := math.Round(scaled) / 100
	if r == 0 {
		return 0
	}
	return r
}

// NewMoney rounds v to cents
func NewMoney(v float64) Money {
	return Money(Round2(v))
}

// Float returns the plain float value
func (m Money) Float() float64 {
	return float64(m)
}

// String formats with exactly two decimals
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// MarshalJSON writes the value as a number with exactly two decimals
func (m Money) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("money: non-finite value %v", f)
	}
	return []byte(m.String()), nil
}

// SellerResult is one row of the ranked scorecard
// ⭐ SSOT: 파이프라인 최종 출력
type SellerResult struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     Money        `json:"revenue"`
	Profit      Money        `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       Money        `json:"bonus"`
}

// SkipCounters tallies recoverable data-quality gaps seen during accumulation
type SkipCounters struct {
	UnknownSellers  int `json:"unknown_sellers"`  // records whose seller_id is not in the seller list
	MalformedItems  int `json:"malformed_items"`  // items without sku or quantity
	UnknownProducts int `json:"unknown_products"` // items whose sku is not in the catalog
}

// Total returns the sum of all counters
func (c SkipCounters) Total() int {
	return c.UnknownSellers + c.MalformedItems + c.UnknownProducts
}

// Report wraps the scorecard with run metadata
type Report struct {
	RunID       string           `json:"run_id"`
	PolicyID    string           `json:"policy_id,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Sellers     []SellerResult   `json:"sellers"`
	Stages      []PipelineResult `json:"stages"`
	Skipped     SkipCounters     `json:"skipped"`
}

// TotalBonus sums the bonus column
func (r *Report) TotalBonus() Money {
	var sum float64
	for _, s := range r.Sellers {
		sum += s.Bonus.Float()
	}
	return NewMoney(sum)
}

// RevenueFunc computes the revenue of a single line item
type RevenueFunc func(item LineItem) float64

// BonusFunc computes the bonus for the seller at zero-based rank out of total sellers
type BonusFunc func(rank, total int, seller SellerStat) float64

// Options carries the pluggable strategies of one pipeline run
type Options struct {
	Revenue RevenueFunc
	Bonus   BonusFunc
}
