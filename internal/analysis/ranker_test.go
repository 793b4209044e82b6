package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/scorecard/internal/contracts"
)

func account(id string, profit float64) *sellerAccount {
	a := newSellerAccount(seller(id, "First", id))
	a.profit = profit
	return a
}

func TestRanker_StableProfitOrder(t *testing.T) {
	accounts := []*sellerAccount{
		account("a", 10),
		account("b", 50),
		account("c", 10),
		account("d", 50),
		account("e", -5),
	}

	results := NewRanker(referenceBonus, nil).Rank(accounts)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.SellerID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids)
}

func TestRanker_BonusArguments(t *testing.T) {
	type call struct {
		rank, total int
		sellerID    string
	}
	var calls []call
	bonus := func(rank, total int, s contracts.SellerStat) float64 {
		calls = append(calls, call{rank, total, s.SellerID})
		return s.Profit / 3
	}

	results := NewRanker(bonus, nil).Rank([]*sellerAccount{account("x", 10), account("y", 20)})

	assert.Equal(t, []call{{0, 2, "y"}, {1, 2, "x"}}, calls)
	assert.Equal(t, contracts.Money(6.67), results[0].Bonus)
	assert.Equal(t, contracts.Money(3.33), results[1].Bonus)
}

func TestRanker_NonFiniteBonusIsZero(t *testing.T) {
	sink := &recordingSink{}
	bonus := func(int, int, contracts.SellerStat) float64 { return math.Inf(1) }

	results := NewRanker(bonus, sink).Rank([]*sellerAccount{account("x", 10)})

	assert.Equal(t, contracts.Money(0), results[0].Bonus)
	assert.Equal(t, 1, sink.count("warn"))
}

func TestRanker_RoundsOutput(t *testing.T) {
	a := account("x", 10.006)
	a.revenue = 1234.5678
	a.salesCount = 3

	results := NewRanker(referenceBonus, nil).Rank([]*sellerAccount{a})

	require.Len(t, results, 1)
	assert.Equal(t, contracts.Money(1234.57), results[0].Revenue)
	assert.Equal(t, contracts.Money(10.01), results[0].Profit)
	assert.Equal(t, 3, results[0].SalesCount)
	assert.Equal(t, "First x", results[0].Name)
}

func TestRanker_HugeTotalsStaySerializable(t *testing.T) {
	a := account("x", 5e306)
	a.revenue = 1e307
	a.salesCount = 1

	results := NewRanker(referenceBonus, nil).Rank([]*sellerAccount{a})

	require.Len(t, results, 1)
	assert.Equal(t, contracts.Money(1e307), results[0].Revenue)
	assert.Equal(t, contracts.Money(5e306), results[0].Profit)

	out, err := json.Marshal(results)
	require.NoError(t, err)

	var back []map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.InEpsilon(t, 1e307, back[0]["revenue"], 1e-9)
}

func TestRanker_OverflowedTotalsAreZeroed(t *testing.T) {
	sink := &recordingSink{}
	overflowed := account("inf", math.NaN())
	overflowed.revenue = math.Inf(1)
	overflowed.addItem("A", math.Inf(1), 0)

	results := NewRanker(referenceBonus, sink).Rank([]*sellerAccount{
		account("low", -1),
		overflowed,
		account("high", 5),
	})

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.SellerID)
	}
	assert.Equal(t, []string{"high", "inf", "low"}, ids)
	assert.Equal(t, contracts.Money(0), results[1].Revenue)
	assert.Equal(t, contracts.Money(0), results[1].Profit)
	assert.Equal(t, 3, sink.count("warn"))

	_, err := json.Marshal(results)
	assert.NoError(t, err)
}

func TestTopProducts(t *testing.T) {
	a := newSellerAccount(seller("x", "A", "B"))
	for i := 0; i < 12; i++ {
		a.addItem(fmt.Sprintf("SKU_%02d", i), float64(i%4+1), 0)
	}
	a.addItem("SKU_00", 10, 0) // SKU_00 now 11

	top := topProducts(a, contracts.TopProductsLimit)

	require.Len(t, top, 10)
	assert.Equal(t, contracts.TopProduct{SKU: "SKU_00", Quantity: 11}, top[0])
	// quantity 4 ties keep first-appearance order
	assert.Equal(t, "SKU_03", top[1].SKU)
	assert.Equal(t, "SKU_07", top[2].SKU)
	assert.Equal(t, "SKU_11", top[3].SKU)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Quantity, top[i].Quantity)
	}
}

func TestTopProducts_EmptyIsNotNil(t *testing.T) {
	top := topProducts(newSellerAccount(seller("x", "A", "B")), contracts.TopProductsLimit)

	assert.NotNil(t, top)
	assert.Empty(t, top)
}
