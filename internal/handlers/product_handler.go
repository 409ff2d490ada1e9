package handlers

import (
	"fmt"
	"strings"

	"newpack/internal/middleware"
	"newpack/internal/services"
	"newpack/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Only the catalog listing is public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/:id", auth, h.HandleGet)
	productRoutes.Post("/", auth, middleware.AdminOnly(), h.HandleCreate)
	productRoutes.Put("/:id", auth, middleware.AdminOnly(), h.HandleUpdate)
	productRoutes.Delete("/:id", auth, middleware.AdminOnly(), h.HandleDelete)
}

// CreateProductRequest represents the request body of a new product.
type CreateProductRequest struct {
	ID           *uint            `json:"id" validate:"omitempty,min=1"`
	Name         string           `json:"name" validate:"required"`
	Toughness    *string          `json:"toughness" validate:"omitempty,min=1"`
	Dimension    *string          `json:"dimension" validate:"omitempty,min=1"`
	Type         string           `json:"type" validate:"required,oneof=caixa rolo unidade"`
	Category     string           `json:"category" validate:"required,oneof=cliches facas_rotativas facas_planas facas_graficas outros"`
	Description  string           `json:"description" validate:"required"`
	UnitQuantity *int             `json:"unit_quantity" validate:"omitempty,min=1"`
	UnitValue    *decimal.Decimal `json:"unit_value" validate:"required"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	Toughness    *string          `json:"toughness" validate:"omitempty,min=1"`
	Dimension    *string          `json:"dimension" validate:"omitempty,min=1"`
	Type         *string          `json:"type" validate:"omitempty,oneof=caixa rolo unidade"`
	Category     *string          `json:"category" validate:"omitempty,oneof=cliches facas_rotativas facas_planas facas_graficas outros"`
	Description  *string          `json:"description" validate:"omitempty,min=1"`
	UnitQuantity *int             `json:"unit_quantity" validate:"omitempty,min=1"`
	UnitValue    *decimal.Decimal `json:"unit_value"`
}

var errNegativePrice = &services.Error{Kind: services.KindValidation, Title: "Validation failed", Message: "unit_value cannot be negative"}

// HandleList serves the paginated catalog.
// Query: page, limit, categories (comma separated), search (repeatable).
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	query := services.ProductQuery{Page: pagination.Parse(c)}
	for _, category := range strings.Split(c.Query("categories"), ",") {
		if category = strings.TrimSpace(category); category != "" {
			query.Categories = append(query.Categories, category)
		}
	}
	for _, term := range c.Context().QueryArgs().PeekMulti("search") {
		if t := strings.TrimSpace(string(term)); t != "" {
			query.Search = append(query.Search, t)
		}
	}

	page, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleGet handles the request to get a product by ID.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreate handles the request to create a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if req.UnitValue.IsNegative() {
		return respondError(c, errNegativePrice)
	}

	product, err := h.service.Create(c.UserContext(), services.CreateProductInput{
		ID:           req.ID,
		Name:         req.Name,
		Toughness:    req.Toughness,
		Dimension:    req.Dimension,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		UnitQuantity: req.UnitQuantity,
		UnitValue:    *req.UnitValue,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d created", product.ID),
		"data":    product,
	})
}

// HandleUpdate handles the request to update a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	if req.UnitValue != nil && req.UnitValue.IsNegative() {
		return respondError(c, errNegativePrice)
	}

	product, err := h.service.Update(c.UserContext(), id, services.UpdateProductInput{
		Name:         req.Name,
		Toughness:    req.Toughness,
		Dimension:    req.Dimension,
		Type:         req.Type,
		Category:     req.Category,
		Description:  req.Description,
		UnitQuantity: req.UnitQuantity,
		UnitValue:    req.UnitValue,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %d updated", product.ID),
		"data":    product,
	})
}

// HandleDelete handles the request to delete a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Product %d deleted", product.ID)})
}
