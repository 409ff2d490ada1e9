package services

import (
	"context"
	"log"
	"time"

	"newpack/internal/models"
	"newpack/internal/repositories"
)

// CreateOrderInput carries the fields of a new order. The number is assigned by the service.
type CreateOrderInput struct {
	ClientID    string
	Status      string
	Description *string
	Installment int
}

// UpdateOrderInput carries a partial order update. Nil fields are left unchanged.
type UpdateOrderInput struct {
	ClientID    *string
	OrderDate   *time.Time
	Status      *string
	Description *string
	Installment *int
}

var (
	errClientNotFound = validationError("User not found", "User with this ID does not exist")
	errOrderNumber    = validationError("Order number conflict", "Another order was created for this client at the same time, try again")
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	tx        repositories.TransactionManager
	publisher EventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, tx repositories.TransactionManager, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		tx:        tx,
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns orders newest first, optionally only those of one client.
func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	if userID != "" {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return nil, lookupError(err, errUserNotFound)
		}
	}
	return s.orderRepo.List(ctx, userID)
}

// Get returns the order with its line items and client.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetFull(ctx, id)
	if err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}
	return order, nil
}

// Create stores an order with the next number of the client's sequence.
// The client row stays locked while the number is read and written.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	order := &models.Order{
		ClientID:    in.ClientID,
		OrderDate:   s.now().UTC(),
		Status:      in.Status,
		Description: in.Description,
		Installment: in.Installment,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.nextOrderNumber(txCtx, in.ClientID)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return s.orderRepo.Create(txCtx, order)
	})
	if err != nil {
		return nil, orderNumberError(err)
	}

	log.Printf("Order %s created for client %s with number %d", order.ID, order.ClientID, order.OrderNumber)
	publish(ctx, s.publisher, EventOrderCreated, OrderEvent{
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	})
	return order, nil
}

// Update applies a partial update. Moving an order to another client gives it
// the next number of that client's sequence.
func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	fields := make(map[string]interface{})
	if in.OrderDate != nil {
		fields["order_date"] = in.OrderDate.UTC()
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Installment != nil {
		fields["installment"] = *in.Installment
	}

	var updated *models.Order
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.orderRepo.GetByID(txCtx, id)
		if err != nil {
			return lookupError(err, errOrderNotFound)
		}

		if in.ClientID != nil && *in.ClientID != current.ClientID {
			number, err := s.nextOrderNumber(txCtx, *in.ClientID)
			if err != nil {
				return err
			}
			fields["client_id"] = *in.ClientID
			fields["order_number"] = number
		}

		if err := s.orderRepo.Update(txCtx, id, fields); err != nil {
			return lookupError(err, errOrderNotFound)
		}
		updated, err = s.orderRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, orderNumberError(err)
	}
	return updated, nil
}

// Delete removes the order with its line items.
func (s *OrderService) Delete(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}
	return order, nil
}

// nextOrderNumber must run inside a transaction.
func (s *OrderService) nextOrderNumber(txCtx context.Context, clientID string) (int, error) {
	if _, err := s.userRepo.LockByID(txCtx, clientID); err != nil {
		return 0, lookupError(err, errClientNotFound)
	}
	last, err := s.orderRepo.LastOrderNumber(txCtx, clientID)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func orderNumberError(err error) error {
	if repositories.IsDuplicate(err) {
		return errOrderNumber
	}
	return err
}
