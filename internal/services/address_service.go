package services

import (
	"context"
	"errors"

	"newpack/internal/models"
	"newpack/internal/repositories"
	"newpack/pkg/format"
)

// CreateAddressInput carries the fields of a new address.
type CreateAddressInput struct {
	UserID       string
	CEP          string
	Street       string
	Number       int
	Complement   *string
	City         string
	Neighborhood *string
	State        string
}

// UpdateAddressInput carries a partial address update. Nil fields are left unchanged.
type UpdateAddressInput struct {
	CEP          *string
	Street       *string
	Number       *int
	Complement   *string
	City         *string
	Neighborhood *string
	State        *string
	Active       *bool
}

var (
	errInvalidCEP         = validationError("Invalid CEP", "CEP must be 8 characters long")
	errOnlyActiveAddress  = validationError("Invalid Operation", "Cannot deactivate the only active address. User must have exactly one active address.")
	errConcurrentActivate = validationError("Invalid Operation", "User must have exactly one active address.")
)

// AddressService keeps exactly one active address per user.
type AddressService struct {
	addressRepo repositories.AddressRepository
	userRepo    repositories.UserRepository
	tx          repositories.TransactionManager
}

// NewAddressService creates a new AddressService.
func NewAddressService(addressRepo repositories.AddressRepository, userRepo repositories.UserRepository, tx repositories.TransactionManager) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
		tx:          tx,
	}
}

// List returns every address.
func (s *AddressService) List(ctx context.Context) ([]models.Address, error) {
	return s.addressRepo.List(ctx)
}

// Get retrieves an address by its ID.
func (s *AddressService) Get(ctx context.Context, id uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errAddressNotFound)
	}
	return address, nil
}

// Create stores the address as the user's active one and deactivates the others.
func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*models.Address, error) {
	cep, err := normalizeCEP(in.CEP)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:       in.UserID,
		CEP:          cep,
		Street:       in.Street,
		Number:       in.Number,
		Complement:   in.Complement,
		City:         in.City,
		Neighborhood: in.Neighborhood,
		State:        in.State,
		Freight:      Freight(in.City),
		Active:       true,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.userRepo.LockByID(txCtx, in.UserID); err != nil {
			return lookupError(err, errUserNotFound)
		}
		if err := s.addressRepo.DeactivateOthers(txCtx, in.UserID, 0); err != nil {
			return err
		}
		return s.addressRepo.Create(txCtx, address)
	})
	if err != nil {
		return nil, activeAddressError(err)
	}
	return address, nil
}

// Update applies a partial update. Freight follows the new or the stored city.
func (s *AddressService) Update(ctx context.Context, id uint, in UpdateAddressInput) (*models.Address, error) {
	fields := make(map[string]interface{})
	if in.CEP != nil {
		cep, err := normalizeCEP(*in.CEP)
		if err != nil {
			return nil, err
		}
		fields["cep"] = cep
	}
	if in.Street != nil {
		fields["street"] = *in.Street
	}
	if in.Number != nil {
		fields["number"] = *in.Number
	}
	if in.Complement != nil {
		fields["complement"] = *in.Complement
	}
	if in.Neighborhood != nil {
		fields["neighborhood"] = *in.Neighborhood
	}
	if in.State != nil {
		fields["state"] = *in.State
	}

	var updated *models.Address
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.addressRepo.GetByID(txCtx, id)
		if err != nil {
			return lookupError(err, errAddressNotFound)
		}
		if _, err := s.userRepo.LockByID(txCtx, current.UserID); err != nil {
			return lookupError(err, errUserNotFound)
		}

		city := current.City
		if in.City != nil {
			city = *in.City
			fields["city"] = city
		}
		fields["freight"] = Freight(city)

		if in.Active != nil {
			if *in.Active {
				if err := s.addressRepo.DeactivateOthers(txCtx, current.UserID, id); err != nil {
					return err
				}
			} else if current.Active {
				others, err := s.addressRepo.CountOtherActive(txCtx, current.UserID, id)
				if err != nil {
					return err
				}
				if others == 0 {
					return errOnlyActiveAddress
				}
			}
			fields["active"] = *in.Active
		}

		if err := s.addressRepo.Update(txCtx, id, fields); err != nil {
			return lookupError(err, errAddressNotFound)
		}
		updated, err = s.addressRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, activeAddressError(err)
	}
	return updated, nil
}

// Delete removes the address. When it was the active one, the most recent
// remaining address of the user becomes active.
func (s *AddressService) Delete(ctx context.Context, id uint) (*models.Address, error) {
	var deleted *models.Address
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.addressRepo.GetByID(txCtx, id)
		if err != nil {
			return lookupError(err, errAddressNotFound)
		}
		if _, err := s.userRepo.LockByID(txCtx, current.UserID); err != nil {
			return lookupError(err, errUserNotFound)
		}
		if err := s.addressRepo.Delete(txCtx, id); err != nil {
			return lookupError(err, errAddressNotFound)
		}
		deleted = current

		if !current.Active {
			return nil
		}
		next, err := s.addressRepo.LatestByUser(txCtx, current.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}
		return s.addressRepo.Update(txCtx, next.ID, map[string]interface{}{"active": true})
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func normalizeCEP(cep string) (string, error) {
	digits := format.Digits(cep)
	if len(digits) != 8 {
		return "", errInvalidCEP
	}
	return digits, nil
}

func activeAddressError(err error) error {
	if repositories.IsDuplicate(err) {
		return errConcurrentActivate
	}
	return err
}
