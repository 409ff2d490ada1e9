package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRefreshTokenRepository is a GORM implementation of RefreshTokenRepository.
type GORMRefreshTokenRepository struct {
	db *gorm.DB
}

// NewGORMRefreshTokenRepository creates a new instance of GORMRefreshTokenRepository.
func NewGORMRefreshTokenRepository(db *gorm.DB) *GORMRefreshTokenRepository {
	return &GORMRefreshTokenRepository{db: db}
}

// Create stores a new refresh token.
func (r *GORMRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := GetDB(ctx, r.db).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetByID retrieves a refresh token by its value.
func (r *GORMRefreshTokenRepository) GetByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := GetDB(ctx, r.db).First(&token, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "refresh token")
	}
	return &token, nil
}

// Delete removes a refresh token.
func (r *GORMRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	res := GetDB(ctx, r.db).Delete(&models.RefreshToken{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("refresh token not found for deletion: %w", ErrNotFound)
	}
	return nil
}
