package repositories

import (
	"context"
	"fmt"

	"newpack/internal/models"

	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

// List retrieves all addresses.
func (r *GORMAddressRepository) List(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := GetDB(ctx, r.db).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// GetByID retrieves an address by its ID.
func (r *GORMAddressRepository) GetByID(ctx context.Context, id uint) (*models.Address, error) {
	var address models.Address
	if err := GetDB(ctx, r.db).First(&address, "id = ?", id).Error; err != nil {
		return nil, wrapLookup(err, "address with ID %d", id)
	}
	return &address, nil
}

// LatestByUser returns the most recently created address of the user.
func (r *GORMAddressRepository) LatestByUser(ctx context.Context, userID string) (*models.Address, error) {
	var address models.Address
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("id DESC").First(&address).Error; err != nil {
		return nil, wrapLookup(err, "address of user %s", userID)
	}
	return &address, nil
}

// CountOtherActive counts active addresses of the user other than exceptID.
func (r *GORMAddressRepository) CountOtherActive(ctx context.Context, userID string, exceptID uint) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Address{}).
		Where("user_id = ? AND active = ? AND id <> ?", userID, true, exceptID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active addresses: %w", err)
	}
	return count, nil
}

// DeactivateOthers clears the active flag on every address of the user except exceptID.
// An exceptID of zero deactivates all of them.
func (r *GORMAddressRepository) DeactivateOthers(ctx context.Context, userID string, exceptID uint) error {
	err := GetDB(ctx, r.db).Model(&models.Address{}).
		Where("user_id = ? AND active = ? AND id <> ?", userID, true, exceptID).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate addresses of user %s: %w", userID, err)
	}
	return nil
}

// Create creates a new address in the database.
func (r *GORMAddressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := GetDB(ctx, r.db).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// Update applies the given column values.
func (r *GORMAddressRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := GetDB(ctx, r.db).Model(&models.Address{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes an address from the database.
func (r *GORMAddressRepository) Delete(ctx context.Context, id uint) error {
	res := GetDB(ctx, r.db).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("address with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
