// Package mailer delivers fully rendered HTML messages over SMTP.
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Message is a rendered email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Config holds the SMTP account used to send messages.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Client sends messages through one SMTP account. Port 465 uses implicit TLS.
type Client struct {
	dialer *gomail.Dialer
}

// New creates a Client for the account in cfg.
func New(cfg Config) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return &Client{dialer: dialer}
}

// Send opens a connection, delivers msg and closes the connection.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("message %q has no recipients", msg.Subject)
	}

	if err := c.dialer.DialAndSend(Build(msg)); err != nil {
		return fmt.Errorf("failed to send email %q: %w", msg.Subject, err)
	}
	return nil
}

// Build converts msg into a MIME message.
func Build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}
