package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"

	"newpack/internal/models"
	"newpack/internal/repositories"
	"newpack/pkg/format"
	"newpack/pkg/mailer"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"currency": format.Currency,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).ParseFS(templateFS, "templates/*.html"))

// MailSender delivers a rendered email.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// EmailSettings holds the sender account and the inbox receiving order emails.
type EmailSettings struct {
	From      string
	Password  string
	Recipient string
}

var (
	errMailConfig     = &Error{Kind: KindConfig, Title: "Email configuration error", Message: "Email configuration is missing"}
	errOrderNotClosed = validationError("Order not confirmed", "Order is not confirmed")
)

// EmailService composes and sends order emails.
type EmailService struct {
	orderRepo repositories.OrderRepository
	composer  *NotificationComposer
	sender    MailSender
	settings  EmailSettings
	publisher EventPublisher
}

// NewEmailService creates a new EmailService. publisher may be nil.
func NewEmailService(orderRepo repositories.OrderRepository, composer *NotificationComposer, sender MailSender, settings EmailSettings, publisher EventPublisher) *EmailService {
	return &EmailService{
		orderRepo: orderRepo,
		composer:  composer,
		sender:    sender,
		settings:  settings,
		publisher: publisher,
	}
}

// SendOrderEmail mails the order details to the sales inbox and returns the payload sent.
func (s *EmailService) SendOrderEmail(ctx context.Context, orderID string, contact EmailContact, hasNotification bool) (*OrderEmail, error) {
	order, err := s.orderRepo.GetFull(ctx, orderID)
	if err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}

	payload, err := s.composer.OrderEmail(order, contact, hasNotification)
	if err != nil {
		return nil, err
	}

	if !s.configured() || s.settings.Recipient == "" {
		return nil, errMailConfig
	}

	html, err := render("order_email.html", payload)
	if err != nil {
		return nil, err
	}
	err = s.deliver(ctx, mailer.Message{
		From:    s.settings.From,
		To:      []string{s.settings.Recipient},
		Subject: fmt.Sprintf("Pedido nº%d de %s", payload.OrderNumber, payload.ClientName),
		HTML:    html,
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, EventOrderNotified, OrderEvent{
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Channel:     "email",
	})
	return payload, nil
}

// SendConfirmation mails the client once the order is completed.
// Nothing is sent for an order in any other status.
func (s *EmailService) SendConfirmation(ctx context.Context, orderID string) (*ConfirmationEmail, error) {
	order, err := s.orderRepo.GetFull(ctx, orderID)
	if err != nil {
		return nil, lookupError(err, errOrderNotFound)
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, errOrderNotClosed
	}

	payload, err := s.composer.ConfirmationEmail(order)
	if err != nil {
		return nil, err
	}
	if !s.configured() {
		return nil, errMailConfig
	}

	html, err := render("order_confirmation.html", payload)
	if err != nil {
		return nil, err
	}
	err = s.deliver(ctx, mailer.Message{
		From:    s.settings.From,
		To:      []string{payload.ClientEmail},
		Subject: fmt.Sprintf("Pedido nº%d concluído", payload.OrderNumber),
		HTML:    html,
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *EmailService) configured() bool {
	return s.settings.From != "" && s.settings.Password != ""
}

func (s *EmailService) deliver(ctx context.Context, msg mailer.Message) error {
	if err := s.sender.Send(ctx, msg); err != nil {
		log.Printf("Error sending email %q: %v", msg.Subject, err)
		return &Error{Kind: KindDelivery, Title: "Email delivery failed", Message: "The email could not be sent", Err: err}
	}
	return nil
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
