package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"newpack/internal/config"
	"newpack/internal/database"
	"newpack/internal/handlers"
	"newpack/internal/repositories"
	"newpack/internal/services"
	"newpack/pkg/imagecheck"
	"newpack/pkg/mailer"
	"newpack/pkg/rabbitmq"
	"newpack/pkg/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer cleanup()

	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires storage, collaborators, services and routes. The returned
// cleanup closes the broker connection when one was opened.
func NewApp(cfg *config.Config) (*fiber.App, func(), error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}

	// --- Order events ---
	// Publishing is optional. The interface stays nil when no broker is configured.
	cleanup := func() {}
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		publisher = mqClient
		cleanup = func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set, order events are disabled")
	}

	// --- Repositories ---
	txManager := repositories.NewGORMTransactionManager(db)
	userRepo := repositories.NewGORMUserRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	imageRepo := repositories.NewGORMProductImageRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	detailRepo := repositories.NewGORMOrderDetailRepository(db)
	tokenRepo := repositories.NewGORMRefreshTokenRepository(db)

	// --- External collaborators ---
	mailClient := mailer.New(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Password,
	})
	whatsAppClient := whatsapp.NewClient(whatsapp.Config{
		BaseURL:  cfg.WhatsApp.APIURL,
		APIKey:   cfg.WhatsApp.APIKey,
		Instance: cfg.WhatsApp.Instance,
	})
	composer := services.NewNotificationComposer(loc)

	// --- Services ---
	svc := handlers.Services{
		Auth:         services.NewAuthService(userRepo, tokenRepo, txManager, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Users:        services.NewUserService(userRepo, detailRepo),
		Addresses:    services.NewAddressService(addressRepo, userRepo, txManager),
		Products:     services.NewProductService(productRepo, cfg.HouseClientID),
		Images:       services.NewProductImageService(imageRepo, productRepo, imagecheck.New(cfg.ImageFetchTimeout)),
		Orders:       services.NewOrderService(orderRepo, userRepo, txManager, publisher),
		OrderDetails: services.NewOrderDetailService(detailRepo, orderRepo, productRepo, txManager),
		Email: services.NewEmailService(orderRepo, composer, mailClient, services.EmailSettings{
			From:      cfg.Mail.User,
			Password:  cfg.Mail.Password,
			Recipient: cfg.Mail.Recipient,
		}, publisher),
		WhatsApp: services.NewWhatsAppService(orderRepo, composer, whatsAppClient, cfg.WhatsApp.ChatID, publisher),
	}

	app := fiber.New(fiber.Config{AppName: "newpack"})
	handlers.Setup(app, svc)
	return app, cleanup, nil
}
