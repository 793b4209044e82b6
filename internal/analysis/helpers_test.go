package analysis

import (
	"github.com/wonny/scorecard/internal/contracts"
)

type diagEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// recordingSink keeps every diagnostic for assertions
type recordingSink struct {
	entries []diagEntry
}

func (r *recordingSink) Warn(msg string, fields map[string]interface{}) {
	r.entries = append(r.entries, diagEntry{level: "warn", msg: msg, fields: fields})
}

func (r *recordingSink) Error(msg string, fields map[string]interface{}) {
	r.entries = append(r.entries, diagEntry{level: "error", msg: msg, fields: fields})
}

func (r *recordingSink) count(level string) int {
	n := 0
	for _, e := range r.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func seller(id, first, last string) contracts.Seller {
	return contracts.Seller{ID: contracts.ID(id), FirstName: first, LastName: last}
}

func product(sku string, price, purchase float64) contracts.Product {
	return contracts.Product{SKU: sku, Price: contracts.Num(price), PurchasePrice: contracts.Num(purchase)}
}

func item(sku string, qty float64) contracts.LineItem {
	return contracts.LineItem{SKU: sku, Quantity: contracts.Num(qty)}
}

func record(sellerID string, total float64, items ...contracts.LineItem) contracts.PurchaseRecord {
	if items == nil {
		items = []contracts.LineItem{}
	}
	return contracts.PurchaseRecord{SellerID: contracts.ID(sellerID), TotalAmount: contracts.Num(total), Items: items}
}

// catalogRevenue prices items at catalog price × coerced quantity
func catalogRevenue(products []contracts.Product) contracts.RevenueFunc {
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.SKU] = p.Price.FloatOr(0)
	}
	return func(it contracts.LineItem) float64 {
		return it.Quantity.FloatOr(1) * prices[it.SKU]
	}
}

// referenceBonus: rank 0 → 15%, ranks 1-2 → 10%, last → 0, others → 5%
func referenceBonus(rank, total int, s contracts.SellerStat) float64 {
	switch {
	case rank == 0:
		return s.Profit * 0.15
	case rank == 1 || rank == 2:
		return s.Profit * 0.10
	case rank == total-1:
		return 0
	default:
		return s.Profit * 0.05
	}
}

func options(products []contracts.Product) *contracts.Options {
	return &contracts.Options{Revenue: catalogRevenue(products), Bonus: referenceBonus}
}

// sampleDataset has four sellers with distinct profits and a few data-quality gaps
func sampleDataset() *contracts.Dataset {
	products := []contracts.Product{
		product("SKU_001", 100, 60),
		product("SKU_002", 50, 20),
		product("SKU_003", 10, 9),
	}
	return &contracts.Dataset{
		Sellers: []contracts.Seller{
			seller("seller_1", "Alexey", "Petrov"),
			seller("seller_2", "Ivan", "Smirnov"),
			seller("seller_3", "Maria", "Ivanova"),
			seller("seller_4", "Olga", "Kuznetsova"),
		},
		Products: products,
		PurchaseRecords: []contracts.PurchaseRecord{
			record("seller_1", 200, item("SKU_001", 2)),
			record("seller_2", 150, item("SKU_002", 3)),
			record("seller_3", 30, item("SKU_003", 3)),
			record("seller_1", 50, item("SKU_002", 1), item("SKU_999", 4)),
			record("seller_404", 999, item("SKU_001", 1)),
			record("seller_2", 100, item("SKU_001", 1)),
			record("seller_3", 20, contracts.LineItem{SKU: "SKU_003"}),
		},
	}
}
