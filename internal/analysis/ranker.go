package analysis

import (
	"math"
	"sort"

	"github.com/wonny/scorecard/internal/contracts"
)

// Ranker implements S3: profit ranking, bonus and top products
// ⭐ SSOT: 순위/보너스 로직은 여기서만
type Ranker struct {
	bonus contracts.BonusFunc
	diag  Diagnostics
}

// NewRanker creates a ranker applying bonus per rank
func NewRanker(bonus contracts.BonusFunc, diag Diagnostics) *Ranker {
	if diag == nil {
		diag = nopSink{}
	}
	return &Ranker{
		bonus: bonus,
		diag:  diag,
	}
}

// Rank sorts accounts by profit (descending, stable) and finalizes each one
// into an output row. accounts is reordered in place.
func (r *Ranker) Rank(accounts []*sellerAccount) []contracts.SellerResult {
	for _, account := range accounts {
		account.revenue = r.finite(account, "revenue", account.revenue)
		account.profit = r.finite(account, "profit", account.profit)
		for sku, qty := range account.sold {
			account.sold[sku] = r.finite(account, "quantity:"+sku, qty)
		}
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].profit > accounts[j].profit
	})

	total := len(accounts)
	results := make([]contracts.SellerResult, 0, total)

	for rank, account := range accounts {
		bonus := r.bonus(rank, total, account.snapshot())
		if math.IsNaN(bonus) || math.IsInf(bonus, 0) {
			r.diag.Warn("Bonus strategy returned a non-finite value, using 0", map[string]interface{}{
				"seller_id": account.sellerID,
				"rank":      rank,
			})
			bonus = 0
		}

		results = append(results, contracts.SellerResult{
			SellerID:    account.sellerID,
			Name:        account.name,
			Revenue:     contracts.NewMoney(account.revenue),
			Profit:      contracts.NewMoney(account.profit),
			SalesCount:  account.salesCount,
			TopProducts: topProducts(account, contracts.TopProductsLimit),
			Bonus:       contracts.NewMoney(bonus),
		})
	}

	return results
}

// finite replaces a total that overflowed to ±Inf (or became NaN) with 0
func (r *Ranker) finite(account *sellerAccount, field string, v float64) float64 {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	r.diag.Warn("Accumulated total is not finite, using 0", map[string]interface{}{
		"seller_id": account.sellerID,
		"field":     field,
	})
	return 0
}

// topProducts returns up to limit SKUs by quantity sold, descending.
// Ties keep first-appearance order. Never returns nil.
func topProducts(account *sellerAccount, limit int) []contracts.TopProduct {
	products := make([]contracts.TopProduct, 0, len(account.skuOrder))
	for _, sku := range account.skuOrder {
		products = append(products, contracts.TopProduct{
			SKU:      sku,
			Quantity: account.sold[sku],
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}
