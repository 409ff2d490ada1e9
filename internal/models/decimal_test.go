package models_test

import (
	"encoding/json"
	"testing"

	"newpack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalsAsNumber(t *testing.T) {
	raw, err := json.Marshal(models.OrderDetail{Quantity: 3, FullPrice: decimal.NewFromInt(60)})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"full_price":60`)

	raw, err = json.Marshal(models.Product{Name: "Cliche", UnitValue: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"unit_value":2.5`)

	var detail models.OrderDetail
	require.NoError(t, json.Unmarshal([]byte(`{"full_price":12.34}`), &detail))
	assert.True(t, detail.FullPrice.Equal(decimal.RequireFromString("12.34")))
}
