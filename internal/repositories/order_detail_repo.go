package repositories

import (
	"context"

	"newpack/internal/models"
)

// PurchaseFilter narrows the products a client has ordered. Empty fields are ignored.
type PurchaseFilter struct {
	Category string
	Type     string
}

// OrderDetailRepository defines the interface for line item data access.
type OrderDetailRepository interface {
	List(ctx context.Context) ([]models.OrderDetail, error)
	GetByID(ctx context.Context, id string) (*models.OrderDetail, error)
	// PairExists reports whether a line item other than excludeID holds the product in the order.
	PairExists(ctx context.Context, orderID string, productID uint, excludeID string) (bool, error)
	// ListByClient returns the line items of the client's orders, newest order first.
	ListByClient(ctx context.Context, clientID string, filter PurchaseFilter) ([]models.OrderDetail, error)
	Create(ctx context.Context, detail *models.OrderDetail) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
