package models

import "github.com/shopspring/decimal"

// Product types.
const (
	ProductTypeBox  = "caixa"
	ProductTypeRoll = "rolo"
	ProductTypeUnit = "unidade"
)

// ProductCategories lists every accepted product category.
var ProductCategories = []string{
	"cliches",
	"facas_rotativas",
	"facas_planas",
	"facas_graficas",
	"outros",
}

// IsProductCategory reports whether c is a known category.
func IsProductCategory(c string) bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents an item of the catalog.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	Toughness    *string         `json:"toughness"`
	Dimension    *string         `json:"dimension"`
	Type         string          `json:"type" gorm:"type:varchar(10);not null"`
	Category     string          `json:"category" gorm:"type:varchar(20);index;not null"`
	Description  string          `json:"description" gorm:"not null"`
	UnitQuantity *int            `json:"unit_quantity"`
	UnitValue    decimal.Decimal `json:"unit_value" gorm:"type:decimal(12,2);not null"`
	Images       []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductImage links a product to a hosted picture.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"productId" gorm:"index;not null"`
	ImageURL  string `json:"image_url" gorm:"not null"`
}
