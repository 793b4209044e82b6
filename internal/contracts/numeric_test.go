package contracts

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNumeric_Float(t *testing.T) {
	tests := []struct {
		name   string
		in     Numeric
		want   float64
		wantOK bool
	}{
		{"absent", Numeric{}, 0, false},
		{"null", RawNumeric(nil), 0, true},
		{"float", Num(12.5), 12.5, true},
		{"int", RawNumeric(3), 3, true},
		{"json number", RawNumeric(json.Number("7.25")), 7.25, true},
		{"numeric string", RawNumeric(" 42 "), 42, true},
		{"blank string", RawNumeric("   "), 0, true},
		{"garbage string", RawNumeric("abc"), 0, false},
		{"true", RawNumeric(true), 1, true},
		{"false", RawNumeric(false), 0, true},
		{"nan", Num(math.NaN()), 0, false},
		{"inf string", RawNumeric("Inf"), 0, false},
		{"object", RawNumeric(map[string]interface{}{"a": 1}), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Float()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumeric_FloatOr(t *testing.T) {
	assert.Equal(t, 1.0, Num(0).FloatOr(1))
	assert.Equal(t, 1.0, RawNumeric("x").FloatOr(1))
	assert.Equal(t, 1.0, Numeric{}.FloatOr(1))
	assert.Equal(t, -2.0, Num(-2).FloatOr(1))
	assert.Equal(t, 0.0, RawNumeric(nil).FloatOr(0))
}

func TestNumeric_JSONPresence(t *testing.T) {
	var items []LineItem
	err := json.Unmarshal([]byte(`[
		{"sku": "A", "quantity": 2},
		{"sku": "B", "quantity": null},
		{"sku": "C"},
		{"sku": "D", "quantity": "3"}
	]`), &items)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.True(t, items[0].Quantity.Present())
	assert.Equal(t, json.Number("2"), items[0].Quantity.Raw())

	assert.True(t, items[1].Quantity.Present())
	assert.Nil(t, items[1].Quantity.Raw())

	assert.False(t, items[2].Quantity.Present())

	assert.Equal(t, 3.0, items[3].Quantity.FloatOr(1))
}

func TestNumeric_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(LineItem{SKU: "A", Quantity: RawNumeric("2")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sku":"A","quantity":"2"}`, string(out))

	out, err = json.Marshal(Num(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNumeric_YAML(t *testing.T) {
	var p Product
	err := yaml.Unmarshal([]byte("sku: SKU_1\nprice: 99.9\npurchase_price: \"40\"\n"), &p)
	require.NoError(t, err)

	assert.Equal(t, 99.9, p.Price.FloatOr(0))
	assert.Equal(t, 40.0, p.PurchasePrice.FloatOr(0))
}
