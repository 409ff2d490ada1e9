package repositories

import (
	"context"

	"newpack/internal/models"
)

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	List(ctx context.Context) ([]models.Address, error)
	GetByID(ctx context.Context, id uint) (*models.Address, error)
	LatestByUser(ctx context.Context, userID string) (*models.Address, error)
	CountOtherActive(ctx context.Context, userID string, exceptID uint) (int64, error)
	DeactivateOthers(ctx context.Context, userID string, exceptID uint) error
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}
