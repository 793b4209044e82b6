package analysis

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/scorecard/internal/contracts"
)

func TestAnalyzer_SingleSeller(t *testing.T) {
	data := &contracts.Dataset{
		Sellers:         []contracts.Seller{seller("seller_1", "Ivan", "Petrov")},
		Products:        []contracts.Product{product("SKU_001", 100, 60)},
		PurchaseRecords: []contracts.PurchaseRecord{record("seller_1", 200, item("SKU_001", 2))},
	}

	results, err := New().Analyze(data, options(data.Products))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "seller_1", r.SellerID)
	assert.Equal(t, "Ivan Petrov", r.Name)
	assert.Equal(t, contracts.Money(200), r.Revenue)
	assert.Equal(t, contracts.Money(80), r.Profit)
	assert.Equal(t, 1, r.SalesCount)
	assert.Equal(t, contracts.Money(12), r.Bonus)
	assert.Equal(t, []contracts.TopProduct{{SKU: "SKU_001", Quantity: 2}}, r.TopProducts)
}

func TestAnalyzer_SampleRanking(t *testing.T) {
	sink := &recordingSink{}
	data := sampleDataset()

	results, err := New(WithDiagnostics(sink)).Analyze(data, options(data.Products))
	require.NoError(t, err)
	require.Len(t, results, len(data.Sellers))

	want := []struct {
		id     string
		profit contracts.Money
		bonus  contracts.Money
	}{
		{"seller_2", 130, 19.5},
		{"seller_1", 110, 11},
		{"seller_3", 3, 0.3},
		{"seller_4", 0, 0},
	}
	for i, w := range want {
		assert.Equal(t, w.id, results[i].SellerID, "rank %d", i)
		assert.Equal(t, w.profit, results[i].Profit, "rank %d", i)
		assert.Equal(t, w.bonus, results[i].Bonus, "rank %d", i)
	}

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Profit, results[i].Profit)
	}
	assert.Equal(t, []contracts.TopProduct{
		{SKU: "SKU_002", Quantity: 3},
		{SKU: "SKU_001", Quantity: 1},
	}, results[0].TopProducts)
	assert.NotNil(t, results[3].TopProducts)
	assert.Equal(t, 2, sink.count("warn"))
}

func TestAnalyzer_Idempotent(t *testing.T) {
	data := sampleDataset()
	a := New()

	first, err := a.Analyze(data, options(data.Products))
	require.NoError(t, err)
	second, err := a.Analyze(data, options(data.Products))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzer_BonusTotalIndependentOfRecordOrder(t *testing.T) {
	data := sampleDataset()
	base, err := New().Run(data, options(data.Products))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := sampleDataset()
		rng.Shuffle(len(shuffled.PurchaseRecords), func(a, b int) {
			shuffled.PurchaseRecords[a], shuffled.PurchaseRecords[b] = shuffled.PurchaseRecords[b], shuffled.PurchaseRecords[a]
		})

		report, err := New().Run(shuffled, options(shuffled.Products))
		require.NoError(t, err)
		assert.InDelta(t, base.TotalBonus().Float(), report.TotalBonus().Float(), 1e-9)
	}
}

func TestAnalyzer_EmptySellersIsFatal(t *testing.T) {
	sink := &recordingSink{}
	data := sampleDataset()
	data.Sellers = []contracts.Seller{}

	results, err := New(WithDiagnostics(sink)).Analyze(data, options(data.Products))

	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, results)
	assert.Empty(t, sink.entries)
}

func TestAnalyzer_RunReport(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("KST", 9*3600))
	data := sampleDataset()

	report, err := New(WithClock(func() time.Time { return fixed })).Run(data, options(data.Products))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, fixed.UTC(), report.GeneratedAt)
	assert.Equal(t, contracts.SkipCounters{UnknownSellers: 1, MalformedItems: 1, UnknownProducts: 1}, report.Skipped)

	require.Len(t, report.Stages, len(contracts.AllStages()))
	for i, stage := range contracts.AllStages() {
		assert.Equal(t, stage, report.Stages[i].Stage)
		assert.True(t, report.Stages[i].Success)
	}
	assert.Equal(t, 7, report.Stages[2].InputCount)
	assert.Equal(t, 6, report.Stages[2].OutputCount)
	assert.Equal(t, 1, report.Stages[2].Metadata["unknown_sellers"])
}

func TestAnalyzer_RunIDsDiffer(t *testing.T) {
	data := sampleDataset()
	a := New()

	r1, err := a.Run(data, options(data.Products))
	require.NoError(t, err)
	r2, err := a.Run(data, options(data.Products))
	require.NoError(t, err)

	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestSellerResult_JSON(t *testing.T) {
	data := &contracts.Dataset{
		Sellers:         []contracts.Seller{seller("seller_1", "Ivan", "Petrov")},
		Products:        []contracts.Product{product("SKU_001", 100, 60)},
		PurchaseRecords: []contracts.PurchaseRecord{record("seller_1", 200, item("SKU_001", 2))},
	}
	results, err := New().Analyze(data, options(data.Products))
	require.NoError(t, err)

	out, err := json.Marshal(results[0])
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"seller_id": "seller_1",
		"name": "Ivan Petrov",
		"revenue": 200,
		"profit": 80,
		"sales_count": 1,
		"top_products": [{"sku": "SKU_001", "quantity": 2}],
		"bonus": 12
	}`, string(out))
	assert.Contains(t, string(out), `"revenue":200.00`)
	assert.Contains(t, string(out), `"bonus":12.00`)
}
