package handlers

import (
	"time"

	"newpack/internal/middleware"
	"newpack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Auth         *services.AuthService
	Users        *services.UserService
	Addresses    *services.AddressService
	Products     *services.ProductService
	Images       *services.ProductImageService
	Orders       *services.OrderService
	OrderDetails *services.OrderDetailService
	Email        *services.EmailService
	WhatsApp     *services.WhatsAppService
}

// Setup installs the middleware stack and every route on app.
func Setup(app *fiber.App, svc Services) {
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "newpack API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	auth := middleware.AuthRequired(svc.Auth)

	NewAuthHandler(svc.Auth).RegisterRoutes(app)
	NewUserHandler(svc.Users).RegisterRoutes(app, auth)
	NewAddressHandler(svc.Addresses).RegisterRoutes(app, auth)
	NewProductHandler(svc.Products).RegisterRoutes(app, auth)
	NewProductImageHandler(svc.Images).RegisterRoutes(app, auth)
	NewOrderHandler(svc.Orders).RegisterRoutes(app, auth)
	NewOrderDetailHandler(svc.OrderDetails).RegisterRoutes(app, auth)
	NewNotificationHandler(svc.Email, svc.WhatsApp).RegisterRoutes(app, auth)
}
