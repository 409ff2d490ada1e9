package repositories

import (
	"context"

	"newpack/internal/models"
)

// ProductImageRepository defines the interface for product image data access.
type ProductImageRepository interface {
	List(ctx context.Context, distinctURLs bool) ([]models.ProductImage, error)
	GetByID(ctx context.Context, id uint) (*models.ProductImage, error)
	Create(ctx context.Context, image *models.ProductImage) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}
