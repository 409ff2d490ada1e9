package repositories

import (
	"context"

	"newpack/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// List returns orders newest first; an empty clientID lists every client.
	List(ctx context.Context, clientID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetFull loads line items with products and the client with its active address.
	GetFull(ctx context.Context, id string) (*models.Order, error)
	LastOrderNumber(ctx context.Context, clientID string) (int, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
