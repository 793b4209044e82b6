package analysis

import (
	"math"

	"github.com/wonny/scorecard/internal/contracts"
)

// sellerAccount is the mutable running total for one seller.
// It is owned by the Accumulator during S2 and by the Ranker during S3.
type sellerAccount struct {
	sellerID   string
	name       string
	revenue    float64
	profit     float64
	salesCount int
	sold       map[string]float64
	skuOrder   []string // first-appearance order of sold SKUs
}

func newSellerAccount(seller contracts.Seller) *sellerAccount {
	return &sellerAccount{
		sellerID: seller.ID.String(),
		name:     seller.FullName(),
		sold:     make(map[string]float64),
	}
}

// addSale records one transaction total
func (a *sellerAccount) addSale(amount float64) {
	a.revenue += amount
	a.salesCount++
}

// addItem records the profit and quantity of one matched line item
func (a *sellerAccount) addItem(sku string, quantity, profit float64) {
	a.profit += profit
	if _, seen := a.sold[sku]; !seen {
		a.sold[sku] = 0
		a.skuOrder = append(a.skuOrder, sku)
	}
	a.sold[sku] += quantity
}

// snapshot copies the account so strategies cannot mutate it
func (a *sellerAccount) snapshot() contracts.SellerStat {
	sold := make(map[string]float64, len(a.sold))
	for sku, qty := range a.sold {
		sold[sku] = qty
	}
	return contracts.SellerStat{
		SellerID:     a.sellerID,
		Name:         a.name,
		Revenue:      a.revenue,
		Profit:       a.profit,
		SalesCount:   a.salesCount,
		ProductsSold: sold,
	}
}

// Accumulator implements S2: per-record revenue and per-item profit accrual
// ⭐ SSOT: 매출/이익 누적 로직은 여기서만
type Accumulator struct {
	index    *Index
	revenue  contracts.RevenueFunc
	diag     Diagnostics
	accounts map[string]*sellerAccount
	order    []*sellerAccount
	skipped  contracts.SkipCounters
}

// NewAccumulator opens one account per distinct seller id, in seller-list order.
// The account name comes from the index so it agrees with seller lookups.
func NewAccumulator(sellers []contracts.Seller, idx *Index, revenue contracts.RevenueFunc, diag Diagnostics) *Accumulator {
	if diag == nil {
		diag = nopSink{}
	}

	acc := &Accumulator{
		index:    idx,
		revenue:  revenue,
		diag:     diag,
		accounts: make(map[string]*sellerAccount, len(sellers)),
		order:    make([]*sellerAccount, 0, len(sellers)),
	}

	for _, s := range sellers {
		key := s.ID.String()
		if _, exists := acc.accounts[key]; exists {
			continue
		}
		seller, _ := idx.Seller(key)
		account := newSellerAccount(seller)
		acc.accounts[key] = account
		acc.order = append(acc.order, account)
	}

	return acc
}

// AddRecords processes records in input order
func (a *Accumulator) AddRecords(records []contracts.PurchaseRecord) {
	for i, record := range records {
		a.AddRecord(i, record)
	}
}

// AddRecord accrues one purchase record. It returns false when the record
// was skipped because its seller is unknown.
func (a *Accumulator) AddRecord(pos int, record contracts.PurchaseRecord) bool {
	account, ok := a.accounts[record.SellerID.String()]
	if !ok {
		a.skipped.UnknownSellers++
		a.diag.Warn("Seller not found, skipping purchase record", map[string]interface{}{
			"seller_id":  record.SellerID.String(),
			"record":     pos,
			"receipt_id": record.ReceiptID,
		})
		return false
	}

	account.addSale(record.TotalAmount.FloatOr(0))

	for i, item := range record.Items {
		a.addItem(account, pos, i, item)
	}

	return true
}

// addItem accrues profit for one line item of a record
func (a *Accumulator) addItem(account *sellerAccount, recordPos, itemPos int, item contracts.LineItem) {
	if item.SKU == "" || !item.Quantity.Present() {
		a.skipped.MalformedItems++
		a.diag.Warn("Line item without sku or quantity, skipping", map[string]interface{}{
			"seller_id": account.sellerID,
			"record":    recordPos,
			"item":      itemPos,
			"sku":       item.SKU,
		})
		return
	}

	product, ok := a.index.Product(item.SKU)
	if !ok {
		a.skipped.UnknownProducts++
		return
	}

	quantity := item.Quantity.FloatOr(1)
	cost := product.PurchasePrice.FloatOr(0) * quantity
	revenue := a.revenue(item)
	if math.IsNaN(revenue) || math.IsInf(revenue, 0) {
		a.diag.Warn("Revenue strategy returned a non-finite value, using 0", map[string]interface{}{
			"seller_id": account.sellerID,
			"record":    recordPos,
			"item":      itemPos,
			"sku":       item.SKU,
		})
		revenue = 0
	}

	account.addItem(item.SKU, quantity, revenue-cost)
}

// accountsInSellerOrder returns the accounts in seller-list order
func (a *Accumulator) accountsInSellerOrder() []*sellerAccount {
	out := make([]*sellerAccount, len(a.order))
	copy(out, a.order)
	return out
}

// Stats returns snapshots of every account in seller-list order
func (a *Accumulator) Stats() []contracts.SellerStat {
	stats := make([]contracts.SellerStat, 0, len(a.order))
	for _, account := range a.order {
		stats = append(stats, account.snapshot())
	}
	return stats
}

// Skipped returns the recoverable-skip counters
func (a *Accumulator) Skipped() contracts.SkipCounters {
	return a.skipped
}
