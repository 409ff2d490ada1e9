package repositories

import (
	"context"

	"newpack/internal/models"
)

// UserFilter narrows a user listing. Empty fields are ignored.
type UserFilter struct {
	Name     string
	FullName string
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetWithAddresses(ctx context.Context, id string, activeOnly bool) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	NameTaken(ctx context.Context, name, fullName, excludeID string) (bool, error)
	LockByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
