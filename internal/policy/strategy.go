package policy

import (
	"fmt"

	"github.com/wonny/scorecard/internal/contracts"
)

// SimpleRevenue prices an item at its own sale price less the percentage discount.
// Missing sale price or discount count as 0; quantity is coerced like everywhere else.
func SimpleRevenue(item contracts.LineItem) float64 {
	price, _ := item.SalePrice.Float()
	discount, _ := item.Discount.Float()
	return price * item.Quantity.FloatOr(1) * (1 - discount/100)
}

// CatalogRevenue prices items at the catalog price of their SKU (last entry wins)
func CatalogRevenue(products []contracts.Product) contracts.RevenueFunc {
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.SKU] = p.Price.FloatOr(0)
	}

	return func(item contracts.LineItem) float64 {
		return prices[item.SKU] * item.Quantity.FloatOr(1)
	}
}

// TieredBonus returns a bonus strategy paying a percentage of profit by rank
func TieredBonus(b Bonus) contracts.BonusFunc {
	return func(rank, total int, seller contracts.SellerStat) float64 {
		return seller.Profit * b.pctFor(rank, total) / 100
	}
}

// pctFor: leader → podium → last → default
func (b Bonus) pctFor(rank, total int) float64 {
	switch {
	case rank == 0:
		return b.LeaderPct
	case rank < b.PodiumSize:
		return b.PodiumPct
	case rank == total-1:
		return b.LastPct
	default:
		return b.DefaultPct
	}
}

// Options builds the pipeline strategies for one dataset
func Options(cfg *Config, data *contracts.Dataset) (*contracts.Options, error) {
	if cfg == nil {
		return nil, ValidationError{"policy", "required"}
	}

	opts := &contracts.Options{Bonus: TieredBonus(cfg.Bonus)}

	switch cfg.Revenue.Method {
	case MethodSimple:
		opts.Revenue = SimpleRevenue
	case MethodCatalog:
		var products []contracts.Product
		if data != nil {
			products = data.Products
		}
		opts.Revenue = CatalogRevenue(products)
	default:
		return nil, ValidationError{"revenue.method", fmt.Sprintf("unknown method %q", cfg.Revenue.Method)}
	}

	return opts, nil
}
