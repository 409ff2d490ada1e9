package handlers

import (
	"fmt"

	"newpack/internal/middleware"
	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes behind auth.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	addressRoutes := router.Group("/address", auth)
	addressRoutes.Get("/", middleware.AdminOnly(), h.HandleList)
	addressRoutes.Get("/:id", h.HandleGet)
	addressRoutes.Post("/", h.HandleCreate)
	addressRoutes.Put("/:id", h.HandleUpdate)
	addressRoutes.Delete("/:id", h.HandleDelete)
}

// CreateAddressRequest represents the request body of a new address.
// Freight and active are derived.
type CreateAddressRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	CEP          string  `json:"cep" validate:"required"`
	Street       string  `json:"street" validate:"required"`
	Number       int     `json:"number" validate:"gte=0"`
	Complement   *string `json:"complement"`
	City         string  `json:"city" validate:"required"`
	Neighborhood *string `json:"neighborhood"`
	State        string  `json:"state" validate:"required,len=2"`
}

// UpdateAddressRequest represents a partial address update.
type UpdateAddressRequest struct {
	CEP          *string `json:"cep" validate:"omitempty,min=1"`
	Street       *string `json:"street"`
	Number       *int    `json:"number" validate:"omitempty,gte=0"`
	Complement   *string `json:"complement"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	State        *string `json:"state" validate:"omitempty,len=2"`
	Active       *bool   `json:"active"`
}

// HandleList handles the request to list addresses.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(addresses)
}

// HandleGet handles the request to get an address by ID.
func (h *AddressHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	address, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(address)
}

// HandleCreate handles the request to create an address.
func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateAddressRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	address, err := h.service.Create(c.UserContext(), services.CreateAddressInput{
		UserID:       req.UserID,
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		State:        req.State,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Address %s created", address.CEP),
		"data":    address,
	})
}

// HandleUpdate handles the request to update an address.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateAddressRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	address, err := h.service.Update(c.UserContext(), id, services.UpdateAddressInput{
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		State:        req.State,
		Active:       req.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Address %s updated", address.CEP),
		"data":    address,
	})
}

// HandleDelete handles the request to delete an address.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	address, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Address %s deleted", address.CEP)})
}
