package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderDetailRepository is a GORM implementation of OrderDetailRepository.
type GORMOrderDetailRepository struct {
	db *gorm.DB
}

// NewGORMOrderDetailRepository creates a new instance of GORMOrderDetailRepository.
func NewGORMOrderDetailRepository(db *gorm.DB) *GORMOrderDetailRepository {
	return &GORMOrderDetailRepository{db: db}
}

// List retrieves all line items.
func (r *GORMOrderDetailRepository) List(ctx context.Context) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	if err := GetDB(ctx, r.db).Order("order_id ASC").Order("product_id ASC").Find(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to list order details: %w", err)
	}
	return details, nil
}

// GetByID retrieves a line item with its product and order.
func (r *GORMOrderDetailRepository) GetByID(ctx context.Context, id string) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := GetDB(ctx, r.db).
		Preload("Product").
		Preload("Product.Images").
		Preload("Order").
		Preload("Order.Client").
		First(&detail, "id = ?", id).Error
	if err != nil {
		return nil, wrapLookup(err, "order details with ID %s", id)
	}
	return &detail, nil
}

// PairExists reports whether another line item holds the product in the order.
func (r *GORMOrderDetailRepository) PairExists(ctx context.Context, orderID string, productID uint, excludeID string) (bool, error) {
	query := GetDB(ctx, r.db).Model(&models.OrderDetail{}).
		Where("order_id = ? AND product_id = ?", orderID, productID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check order details: %w", err)
	}
	return count > 0, nil
}

// ListByClient retrieves the line items of a client's orders, newest order first.
func (r *GORMOrderDetailRepository) ListByClient(ctx context.Context, clientID string, filter PurchaseFilter) ([]models.OrderDetail, error) {
	query := GetDB(ctx, r.db).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Joins("JOIN products ON products.id = order_details.product_id").
		Where("orders.client_id = ?", clientID)
	if filter.Category != "" {
		query = query.Where("products.category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("products.type = ?", filter.Type)
	}

	var details []models.OrderDetail
	err := query.
		Preload("Product").
		Preload("Product.Images").
		Preload("Order").
		Order("orders.order_date DESC").
		Order("order_details.product_id ASC").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order details of client %s: %w", clientID, err)
	}
	return details, nil
}

// Create creates a new line item in the database.
func (r *GORMOrderDetailRepository) Create(ctx context.Context, detail *models.OrderDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	if err := GetDB(ctx, r.db).Omit("Order", "Product").Create(detail).Error; err != nil {
		return fmt.Errorf("failed to create order details: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMOrderDetailRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.OrderDetail{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update order details: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order details with ID %s not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a line item from the database.
func (r *GORMOrderDetailRepository) Delete(ctx context.Context, id string) error {
	res := GetDB(ctx, r.db).Delete(&models.OrderDetail{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order details: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order details with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
