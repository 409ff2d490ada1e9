package services_test

import (
	"testing"

	"newpack/internal/models"
	"newpack/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestFreight(t *testing.T) {
	tests := []struct {
		city string
		want string
	}{
		{"Valinhos", models.FreightCIF},
		{"VALINHOS", models.FreightCIF},
		{"valinhos", models.FreightCIF},
		{"Campinas", models.FreightFOB},
		{"Valinhos ", models.FreightFOB},
		{"", models.FreightFOB},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			assert.Equal(t, tt.want, services.Freight(tt.city))
		})
	}
}

func TestLineTotal(t *testing.T) {
	unit := &models.Product{UnitValue: decimal.NewFromInt(10)}
	assert.True(t, services.LineTotal(3, unit).Equal(decimal.NewFromInt(30)))

	pack := &models.Product{UnitValue: decimal.RequireFromString("2.5"), UnitQuantity: intPtr(4)}
	assert.True(t, services.EffectiveUnitPrice(pack).Equal(decimal.NewFromInt(10)))
	assert.True(t, services.LineTotal(3, pack).Equal(decimal.NewFromInt(30)))

	cents := &models.Product{UnitValue: decimal.RequireFromString("0.10")}
	assert.True(t, services.LineTotal(3, cents).Equal(decimal.RequireFromString("0.30")))
}
