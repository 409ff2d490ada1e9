package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCompleted is the status an order must have before a confirmation is sent.
const OrderStatusCompleted = "Concluído"

// Order represents a customer order. OrderNumber is sequential per client.
type Order struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ClientID    string        `json:"client_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_orders_client_number"`
	Client      *User         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	OrderDate   time.Time     `json:"order_date" gorm:"not null"`
	Status      string        `json:"status" gorm:"not null"`
	Description *string       `json:"description"`
	Installment int           `json:"installment" gorm:"not null"`
	OrderNumber int           `json:"order_number" gorm:"not null;uniqueIndex:idx_orders_client_number"`
	Details     []OrderDetail `json:"order_details,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderDetail is a single line item of an order. An order holds a product at most once.
type OrderDetail struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_order_details_order_product"`
	Order     *Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	ProductID uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_order_details_order_product"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	FullPrice decimal.Decimal `json:"full_price" gorm:"type:decimal(12,2);not null"`
}
