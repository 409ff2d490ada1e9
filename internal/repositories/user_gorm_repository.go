package repositories

import (
	"context"
	"errors"
	"fmt"

	"newpack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// List returns users with all their addresses.
func (r *GORMUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query := GetDB(ctx, r.db).Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		return db.Order("active DESC").Order("id DESC")
	})
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", contains(filter.Name))
	}
	if filter.FullName != "" {
		query = query.Where("LOWER(full_name) LIKE ? ESCAPE '\\'", contains(filter.FullName))
	}

	var users []models.User
	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user without relations.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "user with ID %s", id)
	}
	return &user, nil
}

// GetWithAddresses retrieves a user and its addresses, active first.
func (r *GORMUserRepository) GetWithAddresses(ctx context.Context, id string, activeOnly bool) (*models.User, error) {
	var user models.User
	err := GetDB(ctx, r.db).Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			db = db.Where("active = ?", true)
		}
		return db.Order("active DESC").Order("id DESC")
	}).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, wrapLookup(err, "user with ID %s", id)
	}
	return &user, nil
}

// FindByLogin matches the login against name or full name, ignoring case.
func (r *GORMUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := GetDB(ctx, r.db).
		Where("LOWER(name) = ? OR LOWER(full_name) = ?", lower(login), lower(login)).
		First(&user).Error
	if err != nil {
		return nil, wrapLookup(err, "user with login %s", login)
	}
	return &user, nil
}

// NameTaken reports whether another user already uses the name or the full name.
// Empty arguments are not checked.
func (r *GORMUserRepository) NameTaken(ctx context.Context, name, fullName, excludeID string) (bool, error) {
	if name == "" && fullName == "" {
		return false, nil
	}

	query := GetDB(ctx, r.db).Model(&models.User{})
	switch {
	case name != "" && fullName != "":
		query = query.Where("LOWER(name) = ? OR LOWER(full_name) = ?", lower(name), lower(fullName))
	case name != "":
		query = query.Where("LOWER(name) = ?", lower(name))
	default:
		query = query.Where("LOWER(full_name) = ?", lower(fullName))
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user names: %w", err)
	}
	return count > 0, nil
}

// LockByID loads the user and holds a row lock until the transaction ends.
func (r *GORMUserRepository) LockByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := GetDB(ctx, r.db).Clauses(forUpdate).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "user with ID %s", id)
	}
	return &user, nil
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := GetDB(ctx, r.db).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMUserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the user together with addresses, orders, line items and refresh tokens.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id").Where("client_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete user line items: %w", err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete user orders: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return fmt.Errorf("failed to delete user addresses: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete user refresh tokens: %w", err)
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user with ID %s not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}

func wrapLookup(err error, format string, args ...interface{}) error {
	subject := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", subject, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", subject, err)
}
