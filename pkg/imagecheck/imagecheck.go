// Package imagecheck verifies that a URL serves a picture by sniffing its bytes.
package imagecheck

import (
	"context"
	"log"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// AllowedMIMETypes lists the accepted picture formats.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

// DefaultMaxBodySize caps the bytes read from an image URL.
const DefaultMaxBodySize = 5 << 20

// Checker downloads images over HTTP.
type Checker struct {
	timeout     time.Duration
	maxBodySize int
}

// New creates a Checker whose downloads give up after timeout.
func New(timeout time.Duration) *Checker {
	return &Checker{timeout: timeout, maxBodySize: DefaultMaxBodySize}
}

// WithMaxBodySize sets the largest response body accepted, in bytes.
func (c *Checker) WithMaxBodySize(n int) *Checker {
	c.maxBodySize = n
	return c
}

// IsValidImage reports whether url answers 200 with a body in one of the allowed formats.
// The declared Content-Type is ignored.
func (c *Checker) IsValidImage(ctx context.Context, url string) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	agent := fiber.Get(url)
	// HostClient is nil when the URL could not be parsed; Bytes reports that error.
	if agent.HostClient != nil {
		agent.MaxResponseBodySize = c.maxBodySize
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("Error fetching image %s: %v", url, errs)
		return false
	}
	if code != fiber.StatusOK {
		log.Printf("Error fetching image %s: status %d", url, code)
		return false
	}

	return IsAllowed(body)
}

// IsAllowed reports whether data is one of the allowed image formats.
func IsAllowed(data []byte) bool {
	detected := mimetype.Detect(data)
	return mimetype.EqualsAny(detected.String(), AllowedMIMETypes...)
}
