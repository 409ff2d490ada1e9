package handlers

import (
	"fmt"

	"newpack/internal/middleware"
	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductImageHandler handles HTTP requests for product images.
type ProductImageHandler struct {
	service  *services.ProductImageService
	validate *validator.Validate
}

// NewProductImageHandler creates a new ProductImageHandler.
func NewProductImageHandler(service *services.ProductImageService) *ProductImageHandler {
	return &ProductImageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product image routes. All of them are admin only.
func (h *ProductImageHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	imageRoutes := router.Group("/products_images", auth, middleware.AdminOnly())
	imageRoutes.Get("/", h.HandleList)
	imageRoutes.Get("/:id", h.HandleGet)
	imageRoutes.Post("/", h.HandleCreate)
	imageRoutes.Put("/:id", h.HandleUpdate)
	imageRoutes.Delete("/:id", h.HandleDelete)
}

// CreateProductImageRequest represents the request body of a new product image.
type CreateProductImageRequest struct {
	ProductID uint   `json:"productId" validate:"required,min=1"`
	ImageURL  string `json:"image_url" validate:"required,url"`
}

// UpdateProductImageRequest represents a partial product image update.
type UpdateProductImageRequest struct {
	ProductID *uint   `json:"productId" validate:"omitempty,min=1"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
}

// HandleList returns every image; ?unique=true keeps one row per URL.
func (h *ProductImageHandler) HandleList(c *fiber.Ctx) error {
	images, err := h.service.List(c.UserContext(), c.QueryBool("unique", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(images)
}

// HandleGet handles the request to get a product image by ID.
func (h *ProductImageHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	image, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(image)
}

// HandleCreate handles the request to attach an image to a product.
func (h *ProductImageHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductImageRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	image, err := h.service.Create(c.UserContext(), req.ProductID, req.ImageURL)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Product Image %d created", image.ID),
		"data":    image,
	})
}

// HandleUpdate handles the request to update a product image.
func (h *ProductImageHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateProductImageRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	image, err := h.service.Update(c.UserContext(), id, services.UpdateProductImageInput{
		ProductID: req.ProductID,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product Image %d updated", image.ID),
		"data":    image,
	})
}

// HandleDelete handles the request to delete a product image.
func (h *ProductImageHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	image, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Product Image %d deleted", image.ID)})
}
