package repositories

import (
	"context"

	"newpack/internal/models"
)

// ProductFilter narrows and pages the public catalog listing.
type ProductFilter struct {
	Categories []string
	Search     []string // any term matching the name selects the product
	Offset     int
	Limit      int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	OrderedBy(ctx context.Context, clientID string, productIDs []uint) (map[uint]bool, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}
