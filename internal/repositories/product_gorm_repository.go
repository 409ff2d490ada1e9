package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns one page of products, best sellers first, and the total match count.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Product{})
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Search) > 0 {
		terms := r.db.Where("LOWER(name) LIKE ? ESCAPE '\\'", contains(filter.Search[0]))
		for _, term := range filter.Search[1:] {
			terms = terms.Or("LOWER(name) LIKE ? ESCAPE '\\'", contains(term))
		}
		query = query.Where(terms)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.
		Preload("Images").
		Order("(SELECT COUNT(*) FROM order_details WHERE order_details.product_id = products.id) DESC").
		Order("products.id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// OrderedBy reports which of the given products appear in orders of the client.
func (r *GORMProductRepository) OrderedBy(ctx context.Context, clientID string, productIDs []uint) (map[uint]bool, error) {
	ordered := make(map[uint]bool)
	if clientID == "" || len(productIDs) == 0 {
		return ordered, nil
	}

	var ids []uint
	err := GetDB(ctx, r.db).Model(&models.OrderDetail{}).
		Distinct("order_details.product_id").
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.client_id = ? AND order_details.product_id IN ?", clientID, productIDs).
		Pluck("order_details.product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load products ordered by %s: %w", clientID, err)
	}
	for _, id := range ids {
		ordered[id] = true
	}
	return ordered, nil
}

// GetByID retrieves a single product and its images.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := GetDB(ctx, r.db).Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "product with ID %d", id)
	}
	return &product, nil
}

// Create creates a new product. A zero ID lets the database assign one.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := GetDB(ctx, r.db).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMProductRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID, along with its images and line items.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete product line items: %w", err)
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
