package repositories

import (
	"context"

	"newpack/internal/models"
)

// RefreshTokenRepository defines the interface for refresh token data access.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByID(ctx context.Context, id string) (*models.RefreshToken, error)
	// Delete fails with ErrNotFound when the token was already removed, which makes
	// redemption single-use even for concurrent requests.
	Delete(ctx context.Context, id string) error
}
