package handlers

import (
	"fmt"
	"time"

	"newpack/internal/middleware"
	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes behind auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Get("/", middleware.AdminOnly(), h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDeleteOrder)
}

// CreateOrderRequest represents the request body of a new order.
type CreateOrderRequest struct {
	ClientID    string  `json:"client_id" validate:"required"`
	Status      string  `json:"status" validate:"required"`
	Description *string `json:"description"`
	Installment int     `json:"installment" validate:"required,min=1"`
}

// UpdateOrderRequest represents a partial order update. OrderDate is RFC 3339.
type UpdateOrderRequest struct {
	ClientID    *string `json:"client_id" validate:"omitempty,min=1"`
	OrderDate   *string `json:"order_date"`
	Status      *string `json:"status" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Installment *int    `json:"installment" validate:"omitempty,min=1"`
}

// HandleGetOrders lists orders, optionally those of ?user_id only.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID handles the request to get an order by ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCreateOrder handles the request to create an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	order, err := h.service.Create(c.UserContext(), services.CreateOrderInput{
		ClientID:    req.ClientID,
		Status:      req.Status,
		Description: req.Description,
		Installment: req.Installment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s created successfully", order.ID),
		"data":    order,
	})
}

// HandleUpdateOrder handles the request to update an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req UpdateOrderRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	in := services.UpdateOrderInput{
		ClientID:    req.ClientID,
		Status:      req.Status,
		Description: req.Description,
		Installment: req.Installment,
	}
	if req.OrderDate != nil {
		orderDate, err := time.Parse(time.RFC3339, *req.OrderDate)
		if err != nil {
			return respondError(c, &services.Error{Kind: services.KindValidation, Title: "Validation failed", Message: "Invalid order_date format"})
		}
		in.OrderDate = &orderDate
	}

	order, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s updated successfully", order.ID),
		"data":    order,
	})
}

// HandleDeleteOrder handles the request to delete an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	order, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Order %s deleted", order.ID)})
}
