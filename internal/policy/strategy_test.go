package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/scorecard/internal/contracts"
)

func TestSimpleRevenue(t *testing.T) {
	tests := []struct {
		name string
		item contracts.LineItem
		want float64
	}{
		{
			name: "no discount",
			item: contracts.LineItem{SKU: "A", Quantity: contracts.Num(2), SalePrice: contracts.Num(100), Discount: contracts.Num(0)},
			want: 200,
		},
		{
			name: "25% discount",
			item: contracts.LineItem{SKU: "A", Quantity: contracts.Num(4), SalePrice: contracts.Num(50), Discount: contracts.Num(25)},
			want: 150,
		},
		{
			name: "string inputs",
			item: contracts.LineItem{SKU: "A", Quantity: contracts.RawNumeric("3"), SalePrice: contracts.RawNumeric("10"), Discount: contracts.RawNumeric("10")},
			want: 27,
		},
		{
			name: "missing sale price",
			item: contracts.LineItem{SKU: "A", Quantity: contracts.Num(3)},
			want: 0,
		},
		{
			name: "zero quantity counts as one",
			item: contracts.LineItem{SKU: "A", Quantity: contracts.Num(0), SalePrice: contracts.Num(80)},
			want: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SimpleRevenue(tt.item), 1e-9)
		})
	}
}

func TestCatalogRevenue(t *testing.T) {
	revenue := CatalogRevenue([]contracts.Product{
		{SKU: "A", Price: contracts.Num(100)},
		{SKU: "B", Price: contracts.RawNumeric("12.5")},
		{SKU: "A", Price: contracts.Num(110)},
	})

	assert.InDelta(t, 220, revenue(contracts.LineItem{SKU: "A", Quantity: contracts.Num(2)}), 1e-9)
	assert.InDelta(t, 12.5, revenue(contracts.LineItem{SKU: "B", Quantity: contracts.RawNumeric("x")}), 1e-9)
	assert.Zero(t, revenue(contracts.LineItem{SKU: "Z", Quantity: contracts.Num(1)}))
}

func TestTieredBonus(t *testing.T) {
	bonus := TieredBonus(Default().Bonus)
	stat := contracts.SellerStat{Profit: 1000}

	tests := []struct {
		rank, total int
		want        float64
	}{
		{0, 1, 150},
		{0, 5, 150},
		{1, 2, 100}, // podium wins over last
		{2, 3, 100},
		{3, 5, 50},
		{4, 5, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, bonus(tt.rank, tt.total, stat), 1e-9, "rank %d of %d", tt.rank, tt.total)
	}
}

func TestTieredBonus_NegativeProfit(t *testing.T) {
	bonus := TieredBonus(Default().Bonus)
	assert.InDelta(t, -15, bonus(0, 3, contracts.SellerStat{Profit: -100}), 1e-9)
}

func TestOptions(t *testing.T) {
	data := &contracts.Dataset{Products: []contracts.Product{{SKU: "A", Price: contracts.Num(100)}}}
	item := contracts.LineItem{SKU: "A", Quantity: contracts.Num(2), SalePrice: contracts.Num(90)}

	catalog, err := Options(Default(), data)
	require.NoError(t, err)
	assert.InDelta(t, 200, catalog.Revenue(item), 1e-9)

	cfg := Default()
	cfg.Revenue.Method = MethodSimple
	simple, err := Options(cfg, data)
	require.NoError(t, err)
	assert.InDelta(t, 180, simple.Revenue(item), 1e-9)
	require.NotNil(t, simple.Bonus)

	cfg.Revenue.Method = "OTHER"
	_, err = Options(cfg, data)
	assert.Error(t, err)

	_, err = Options(nil, data)
	assert.Error(t, err)
}
