package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"newpack/internal/repositories"
	"newpack/pkg/whatsapp"
)

// WhatsAppGateway is the hosted gateway holding the WhatsApp session.
type WhatsAppGateway interface {
	ConnectionState(ctx context.Context) (whatsapp.Connection, error)
	SendText(ctx context.Context, number, text string) error
}

// WhatsAppStatus reports the gateway session state.
type WhatsAppStatus struct {
	Status   string `json:"status"`
	Instance string `json:"instance"`
	Message  string `json:"message"`
}

const stateClosed = "close"

var (
	errWhatsAppNotConfigured = &Error{Kind: KindConfig, Title: "WhatsApp gateway not configured", Message: "Please set the WHATSAPP_API_URL and WHATSAPP_INSTANCE environment variables"}
	errChatIDMissing         = validationError("WhatsApp chat ID not configured", "Please set the WHATSAPP_CHAT_ID environment variable")
	errWhatsAppDisconnected  = &Error{Kind: KindUnavailable, Title: "WhatsApp is not connected", Message: "Please connect WhatsApp first"}
)

// WhatsAppService announces orders to the sales group through the gateway.
type WhatsAppService struct {
	orderRepo repositories.OrderRepository
	composer  *NotificationComposer
	gateway   WhatsAppGateway
	chatID    string
	publisher EventPublisher
}

// NewWhatsAppService creates a new WhatsAppService. publisher may be nil.
func NewWhatsAppService(orderRepo repositories.OrderRepository, composer *NotificationComposer, gateway WhatsAppGateway, chatID string, publisher EventPublisher) *WhatsAppService {
	return &WhatsAppService{
		orderRepo: orderRepo,
		composer:  composer,
		gateway:   gateway,
		chatID:    chatID,
		publisher: publisher,
	}
}

// Status asks the gateway for the session state.
func (s *WhatsAppService) Status(ctx context.Context) (*WhatsAppStatus, error) {
	conn, err := s.connection(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case conn.Connected():
		return &WhatsAppStatus{Status: "connected", Instance: conn.Instance, Message: fmt.Sprintf("WhatsApp is connected on %s", conn.Instance)}, nil
	case conn.State == stateClosed:
		return &WhatsAppStatus{Status: "disconnected", Instance: conn.Instance, Message: "WhatsApp is disconnected"}, nil
	default:
		return &WhatsAppStatus{Status: conn.State, Instance: conn.Instance, Message: "WhatsApp is not connected"}, nil
	}
}

// SendOrder posts the order summary to the configured chat.
func (s *WhatsAppService) SendOrder(ctx context.Context, orderID string) error {
	if s.chatID == "" {
		return errChatIDMissing
	}

	conn, err := s.connection(ctx)
	if err != nil {
		return err
	}
	if !conn.Connected() {
		return errWhatsAppDisconnected
	}

	order, err := s.orderRepo.GetFull(ctx, orderID)
	if err != nil {
		return lookupError(err, errOrderNotFound)
	}

	if err := s.gateway.SendText(ctx, s.chatID, s.composer.OrderMessage(order)); err != nil {
		log.Printf("Error sending WhatsApp message for order %s: %v", orderID, err)
		return &Error{Kind: KindUnavailable, Title: "Failed to send message", Message: "The WhatsApp gateway did not accept the message", Err: err}
	}

	publish(ctx, s.publisher, EventOrderNotified, OrderEvent{
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Channel:     "whatsapp",
	})
	return nil
}

func (s *WhatsAppService) connection(ctx context.Context) (whatsapp.Connection, error) {
	conn, err := s.gateway.ConnectionState(ctx)
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotConfigured) {
			return whatsapp.Connection{}, errWhatsAppNotConfigured
		}
		log.Printf("Error getting WhatsApp status: %v", err)
		return whatsapp.Connection{}, &Error{Kind: KindUnavailable, Title: "WhatsApp gateway unavailable", Message: "Could not reach the WhatsApp gateway", Err: err}
	}
	return conn, nil
}
