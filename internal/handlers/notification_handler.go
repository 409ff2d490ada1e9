package handlers

import (
	"newpack/internal/middleware"
	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler serves the email and WhatsApp notification routes.
type NotificationHandler struct {
	emailService    *services.EmailService
	whatsAppService *services.WhatsAppService
	validate        *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(emailService *services.EmailService, whatsAppService *services.WhatsAppService) *NotificationHandler {
	return &NotificationHandler{
		emailService:    emailService,
		whatsAppService: whatsAppService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers /email and /whatsapp behind auth.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	emailRoutes := router.Group("/email", auth)
	emailRoutes.Post("/order-confirmation/:idOrder", h.HandleSendConfirmation)
	emailRoutes.Post("/:idOrder", h.HandleSendOrderEmail)

	whatsAppRoutes := router.Group("/whatsapp", auth)
	whatsAppRoutes.Get("/status", middleware.AdminOnly(), h.HandleWhatsAppStatus)
	whatsAppRoutes.Post("/send-message", h.HandleWhatsAppSend)
}

// OrderEmailRequest carries who the sales team should contact about the order.
type OrderEmailRequest struct {
	Name            string `json:"name" validate:"required"`
	Telephone       string `json:"telephone" validate:"required"`
	HasNotification bool   `json:"hasNotification"`
}

// SendMessageRequest names the order to announce.
type SendMessageRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// HandleSendOrderEmail handles the request to mail an order to the sales inbox.
func (h *NotificationHandler) HandleSendOrderEmail(c *fiber.Ctx) error {
	var req OrderEmailRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	payload, err := h.emailService.SendOrderEmail(c.UserContext(), c.Params("idOrder"), services.EmailContact{
		Name:      req.Name,
		Telephone: req.Telephone,
	}, req.HasNotification)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Email sent successfully",
		"data":    payload,
	})
}

// HandleSendConfirmation handles the request to mail a completed order to its client.
func (h *NotificationHandler) HandleSendConfirmation(c *fiber.Ctx) error {
	payload, err := h.emailService.SendConfirmation(c.UserContext(), c.Params("idOrder"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Confirmation email sent successfully",
		"data":    payload,
	})
}

// HandleWhatsAppStatus handles the request for the gateway connection state.
func (h *NotificationHandler) HandleWhatsAppStatus(c *fiber.Ctx) error {
	status, err := h.whatsAppService.Status(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// HandleWhatsAppSend handles the request to post an order to the WhatsApp chat.
func (h *NotificationHandler) HandleWhatsAppSend(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.whatsAppService.SendOrder(c.UserContext(), req.OrderID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Message sent successfully",
	})
}
