package services

import (
	"strings"

	"newpack/internal/models"

	"github.com/shopspring/decimal"
)

// freightCity is the only destination shipped at the seller's cost.
const freightCity = "valinhos"

// Freight derives the freight code of an address from its city.
func Freight(city string) string {
	if strings.ToLower(city) == freightCity {
		return models.FreightCIF
	}
	return models.FreightFOB
}

// EffectiveUnitPrice is the price of one ordered unit of the product:
// unit_value times unit_quantity when the product is sold in packs.
func EffectiveUnitPrice(p *models.Product) decimal.Decimal {
	if p.UnitQuantity != nil {
		return p.UnitValue.Mul(decimal.NewFromInt(int64(*p.UnitQuantity)))
	}
	return p.UnitValue
}

// LineTotal is the full price of a line item.
func LineTotal(quantity int, p *models.Product) decimal.Decimal {
	return EffectiveUnitPrice(p).Mul(decimal.NewFromInt(int64(quantity)))
}

var errBoxUnitQuantity = validationError("Invalid type", "Type 'caixa' cannot have unit quantity")

// checkUnitQuantity rejects a box product carrying a unit quantity. stored is
// nil on create; on update every combination of supplied and stored values is checked.
func checkUnitQuantity(newType string, newQuantity *int, stored *models.Product) error {
	if newType == models.ProductTypeBox && newQuantity != nil {
		return errBoxUnitQuantity
	}
	if stored == nil {
		return nil
	}
	if stored.Type == models.ProductTypeBox && newQuantity != nil {
		return errBoxUnitQuantity
	}
	if newType == models.ProductTypeBox && stored.UnitQuantity != nil {
		return errBoxUnitQuantity
	}
	return nil
}
