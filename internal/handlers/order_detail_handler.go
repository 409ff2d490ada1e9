package handlers

import (
	"fmt"

	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderDetailHandler handles HTTP requests for order line items.
type OrderDetailHandler struct {
	service  *services.OrderDetailService
	validate *validator.Validate
}

// NewOrderDetailHandler creates a new OrderDetailHandler.
func NewOrderDetailHandler(service *services.OrderDetailService) *OrderDetailHandler {
	return &OrderDetailHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the line item routes behind auth.
func (h *OrderDetailHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	detailRoutes := router.Group("/orders_details", auth)
	detailRoutes.Get("/", h.HandleList)
	detailRoutes.Get("/:id", h.HandleGet)
	detailRoutes.Post("/", h.HandleCreate)
	detailRoutes.Put("/:id", h.HandleUpdate)
	detailRoutes.Delete("/:id", h.HandleDelete)
}

// CreateOrderDetailRequest represents the request body of a new line item.
type CreateOrderDetailRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	ProductID uint   `json:"product_id" validate:"required,min=1"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderDetailRequest represents a partial line item update.
type UpdateOrderDetailRequest struct {
	OrderID   *string `json:"order_id" validate:"omitempty,min=1"`
	ProductID *uint   `json:"product_id" validate:"omitempty,min=1"`
	Quantity  *int    `json:"quantity" validate:"omitempty,min=1"`
}

// HandleList handles the request to list line items.
func (h *OrderDetailHandler) HandleList(c *fiber.Ctx) error {
	details, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}

// HandleGet handles the request to get a line item by ID.
func (h *OrderDetailHandler) HandleGet(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// HandleCreate handles the request to add a line item.
func (h *OrderDetailHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderDetailRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	detail, err := h.service.Create(c.UserContext(), services.CreateOrderDetailInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Order Details %s created successfully", detail.ID),
		"data":    detail,
	})
}

// HandleUpdate handles the request to update a line item.
func (h *OrderDetailHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateOrderDetailRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	detail, err := h.service.Update(c.UserContext(), c.Params("id"), services.UpdateOrderDetailInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order Details %s updated successfully", detail.ID),
		"data":    detail,
	})
}

// HandleDelete handles the request to delete a line item.
func (h *OrderDetailHandler) HandleDelete(c *fiber.Ctx) error {
	detail, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Order Details %s deleted", detail.ID)})
}
