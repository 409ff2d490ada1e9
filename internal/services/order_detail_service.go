package services

import (
	"context"

	"newpack/internal/models"
	"newpack/internal/repositories"
)

// CreateOrderDetailInput carries a new line item. The full price is computed.
type CreateOrderDetailInput struct {
	OrderID   string
	ProductID uint
	Quantity  int
}

// UpdateOrderDetailInput carries a partial line item update. Nil fields are left unchanged.
type UpdateOrderDetailInput struct {
	OrderID   *string
	ProductID *uint
	Quantity  *int
}

var errDuplicateDetail = validationError("Order Details already exists", "Order Details with this order and product ID already exists")

// OrderDetailService keeps line items unique per order and product and prices them.
type OrderDetailService struct {
	detailRepo  repositories.OrderDetailRepository
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	tx          repositories.TransactionManager
}

// NewOrderDetailService creates a new OrderDetailService.
func NewOrderDetailService(
	detailRepo repositories.OrderDetailRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	tx repositories.TransactionManager,
) *OrderDetailService {
	return &OrderDetailService{
		detailRepo:  detailRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		tx:          tx,
	}
}

// List returns every line item.
func (s *OrderDetailService) List(ctx context.Context) ([]models.OrderDetail, error) {
	return s.detailRepo.List(ctx)
}

// Get returns the line item with its product, images, order and client.
func (s *OrderDetailService) Get(ctx context.Context, id string) (*models.OrderDetail, error) {
	detail, err := s.detailRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errOrderDetailNotFound)
	}
	return detail, nil
}

// Create prices and stores a new line item.
func (s *OrderDetailService) Create(ctx context.Context, in CreateOrderDetailInput) (*models.OrderDetail, error) {
	detail := &models.OrderDetail{
		OrderID:   in.OrderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.checkReferences(txCtx, in.OrderID, in.ProductID, "")
		if err != nil {
			return err
		}
		detail.FullPrice = LineTotal(in.Quantity, product)
		return s.detailRepo.Create(txCtx, detail)
	})
	if err != nil {
		return nil, duplicateDetailError(err)
	}
	return detail, nil
}

// Update applies a partial update and reprices the line item.
func (s *OrderDetailService) Update(ctx context.Context, id string, in UpdateOrderDetailInput) (*models.OrderDetail, error) {
	var updated *models.OrderDetail
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.detailRepo.GetByID(txCtx, id)
		if err != nil {
			return lookupError(err, errOrderDetailNotFound)
		}

		orderID, productID, quantity := current.OrderID, current.ProductID, current.Quantity
		if in.OrderID != nil {
			orderID = *in.OrderID
		}
		if in.ProductID != nil {
			productID = *in.ProductID
		}
		if in.Quantity != nil {
			quantity = *in.Quantity
		}

		product, err := s.checkReferences(txCtx, orderID, productID, id)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{
			"order_id":   orderID,
			"product_id": productID,
			"quantity":   quantity,
			"full_price": LineTotal(quantity, product),
		}
		if err := s.detailRepo.Update(txCtx, id, fields); err != nil {
			return lookupError(err, errOrderDetailNotFound)
		}
		updated, err = s.detailRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, duplicateDetailError(err)
	}
	return updated, nil
}

// Delete removes a line item and returns it.
func (s *OrderDetailService) Delete(ctx context.Context, id string) (*models.OrderDetail, error) {
	detail, err := s.detailRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errOrderDetailNotFound)
	}
	if err := s.detailRepo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, errOrderDetailNotFound)
	}
	return detail, nil
}

// checkReferences verifies the order and product exist and that no other line
// item than excludeID already holds the pair. It returns the product for pricing.
func (s *OrderDetailService) checkReferences(ctx context.Context, orderID string, productID uint, excludeID string) (*models.Product, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, lookupError(err, errProductNotFound)
	}
	exists, err := s.detailRepo.PairExists(ctx, orderID, productID, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errDuplicateDetail
	}
	return product, nil
}

func duplicateDetailError(err error) error {
	if repositories.IsDuplicate(err) {
		return errDuplicateDetail
	}
	return err
}
