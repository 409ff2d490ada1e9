package models

// Freight codes. CIF means the seller pays shipping.
const (
	FreightCIF = "CIF"
	FreightFOB = "FOB"
)

// Address is a delivery address of a user. At most one address per user is active.
type Address struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	UserID       string  `json:"user_id" gorm:"type:varchar(36);index;not null"`
	CEP          string  `json:"cep" gorm:"type:varchar(8);not null"`
	Street       string  `json:"street" gorm:"not null"`
	Number       int     `json:"number" gorm:"not null"`
	Complement   *string `json:"complement"`
	City         string  `json:"city" gorm:"not null"`
	Neighborhood *string `json:"neighborhood"`
	State        string  `json:"state" gorm:"type:varchar(2);not null"`
	Freight      string  `json:"freight" gorm:"type:varchar(3);not null"`
	Active       bool    `json:"active" gorm:"not null;default:true"`
}
