package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Preload("Details.Product").
		Preload("Details.Product.Images").
		Preload("Client").
		Preload("Client.Addresses", "active = ?", true)
}

// List retrieves orders with their relations, newest first.
func (r *GORMOrderRepository) List(ctx context.Context, clientID string) ([]models.Order, error) {
	query := r.withRelations(GetDB(ctx, r.db))
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order without relations.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "order with ID %s", id)
	}
	return &order, nil
}

// GetFull retrieves an order with line items, products and client.
func (r *GORMOrderRepository) GetFull(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(GetDB(ctx, r.db)).First(&order, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "order with ID %s", id)
	}
	return &order, nil
}

// LastOrderNumber returns the highest order number of the client, or zero.
func (r *GORMOrderRepository) LastOrderNumber(ctx context.Context, clientID string) (int, error) {
	var last int
	err := GetDB(ctx, r.db).Model(&models.Order{}).
		Select("COALESCE(MAX(order_number), 0)").
		Where("client_id = ?", clientID).
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get last order number of client %s: %w", clientID, err)
	}
	return last, nil
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := GetDB(ctx, r.db).Omit("Client", "Details").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMOrderRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the order and its line items.
func (r *GORMOrderRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete order line items: %w", err)
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %s not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
