// Package whatsapp talks to a hosted WhatsApp gateway over HTTP.
package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StateOpen is the gateway state of a connected session.
const StateOpen = "open"

// ErrNotConfigured is returned when the gateway URL or instance is missing.
var ErrNotConfigured = errors.New("whatsapp gateway not configured")

// Config points at one gateway instance.
type Config struct {
	BaseURL  string
	APIKey   string
	Instance string
	Timeout  time.Duration
}

// Connection is the session state reported by the gateway.
type Connection struct {
	Instance string `json:"instanceName"`
	State    string `json:"state"`
}

// Connected reports whether messages can be sent.
func (c Connection) Connected() bool {
	return c.State == StateOpen
}

type connectionStateResponse struct {
	Instance Connection `json:"instance"`
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Client is a gateway client bound to one instance.
type Client struct {
	cfg Config
}

// NewClient creates a new gateway client.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{cfg: cfg}
}

// ConnectionState asks the gateway whether the instance session is up.
func (c *Client) ConnectionState(ctx context.Context) (Connection, error) {
	if err := c.ready(ctx); err != nil {
		return Connection{}, err
	}

	agent := fiber.Get(fmt.Sprintf("%s/instance/connectionState/%s", c.cfg.BaseURL, c.cfg.Instance))
	agent.Set("apikey", c.cfg.APIKey).Timeout(c.cfg.Timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return Connection{}, fmt.Errorf("failed to reach whatsapp gateway: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return Connection{}, fmt.Errorf("whatsapp gateway answered %d: %s", code, body)
	}

	var resp connectionStateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Connection{}, fmt.Errorf("failed to decode whatsapp connection state: %w", err)
	}
	if resp.Instance.Instance == "" {
		resp.Instance.Instance = c.cfg.Instance
	}
	return resp.Instance, nil
}

// SendText delivers text to a phone number or group id.
func (c *Client) SendText(ctx context.Context, number, text string) error {
	if err := c.ready(ctx); err != nil {
		return err
	}

	agent := fiber.Post(fmt.Sprintf("%s/message/sendText/%s", c.cfg.BaseURL, c.cfg.Instance))
	agent.Set("apikey", c.cfg.APIKey).Timeout(c.cfg.Timeout)
	agent.JSON(sendTextRequest{Number: number, Text: text})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("failed to reach whatsapp gateway: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK && code != fiber.StatusCreated {
		return fmt.Errorf("whatsapp gateway answered %d: %s", code, body)
	}
	return nil
}

func (c *Client) ready(ctx context.Context) error {
	if c.cfg.BaseURL == "" || c.cfg.Instance == "" {
		return ErrNotConfigured
	}
	return ctx.Err()
}
