package handlers

import (
	"fmt"

	"newpack/internal/middleware"
	"newpack/internal/repositories"
	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes behind auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users", auth)
	userRoutes.Get("/", middleware.AdminOnly(), h.HandleList)
	userRoutes.Get("/:id", h.HandleGet)
	userRoutes.Get("/:id/products", h.HandleProducts)
	userRoutes.Post("/", middleware.AdminOnly(), h.HandleCreate)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDelete)
}

// CreateUserRequest represents the request body of a new user.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required"`
	FullName string  `json:"full_name" validate:"required"`
	Password string  `json:"password" validate:"required,min=3"`
	IsAdmin  *bool   `json:"isAdmin"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// UpdateUserRequest represents a partial user update.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// HandleList handles the request to list users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext(), repositories.UserFilter{
		Name:     c.Query("name"),
		FullName: c.Query("full_name"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGet returns the user; ?active=<anything> keeps only the active address.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	scope := services.AddressScopeFull
	if c.Query("active") != "" {
		scope = services.AddressScopeActiveOnly
	}

	view, err := h.service.Get(c.UserContext(), c.Params("id"), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view.User)
}

// HandleProducts lists the products the user has already ordered.
func (h *UserHandler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.service.PurchasedProducts(c.UserContext(), c.Params("id"), repositories.PurchaseFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleCreate handles the request to register a user.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	in := services.CreateUserInput{
		Name:     req.Name,
		FullName: req.FullName,
		Password: req.Password,
		Email:    req.Email,
	}
	if req.IsAdmin != nil {
		in.IsAdmin = *req.IsAdmin
	}

	user, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("User %s created", user.Name),
		"data":    user,
	})
}

// HandleUpdate handles the request to update a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), services.UpdateUserInput{
		Name:     req.Name,
		FullName: req.FullName,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s updated", user.ID),
		"data":    user,
	})
}

// HandleDelete handles the request to delete a user.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	user, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s deleted", user.Name)})
}
