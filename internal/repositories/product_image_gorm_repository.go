package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"gorm.io/gorm"
)

// GORMProductImageRepository is a GORM implementation of ProductImageRepository.
type GORMProductImageRepository struct {
	db *gorm.DB
}

// NewGORMProductImageRepository creates a new instance of GORMProductImageRepository.
func NewGORMProductImageRepository(db *gorm.DB) *GORMProductImageRepository {
	return &GORMProductImageRepository{db: db}
}

// List returns every image, or the first image of each distinct URL.
func (r *GORMProductImageRepository) List(ctx context.Context, distinctURLs bool) ([]models.ProductImage, error) {
	query := GetDB(ctx, r.db).Order("id ASC")
	if distinctURLs {
		firstOfURL := r.db.Model(&models.ProductImage{}).Select("MIN(id)").Group("image_url")
		query = query.Where("id IN (?)", firstOfURL)
	}

	var images []models.ProductImage
	if err := query.Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}
	return images, nil
}

// GetByID retrieves a product image by its ID.
func (r *GORMProductImageRepository) GetByID(ctx context.Context, id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := GetDB(ctx, r.db).First(&image, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "product image with ID %d", id)
	}
	return &image, nil
}

// Create creates a new product image in the database.
func (r *GORMProductImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	if err := GetDB(ctx, r.db).Create(image).Error; err != nil {
		return fmt.Errorf("failed to create product image: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMProductImageRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.ProductImage{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product image with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a product image from the database.
func (r *GORMProductImageRepository) Delete(ctx context.Context, id uint) error {
	res := GetDB(ctx, r.db).Delete(&models.ProductImage{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product image with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
