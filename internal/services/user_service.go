package services

import (
	"context"
	"time"

	"newpack/internal/models"
	"newpack/internal/repositories"

	"github.com/shopspring/decimal"
)

// AddressScope selects which addresses a user lookup carries.
type AddressScope int

const (
	// AddressScopeFull returns every address, the active one first.
	AddressScopeFull AddressScope = iota
	// AddressScopeActiveOnly returns only the active address.
	AddressScopeActiveOnly
)

// UserView is a user lookup tagged with the address scope it was loaded with.
type UserView struct {
	Scope AddressScope
	User  *models.User
}

// PurchasedProduct is a product the user has ordered, with its most recent line item.
type PurchasedProduct struct {
	ID             uint            `json:"id"`
	OrderDetailsID string          `json:"order_details_id"`
	Name           string          `json:"name"`
	Toughness      *string         `json:"toughness"`
	Dimension      *string         `json:"dimension"`
	Type           string          `json:"type"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	UnitQuantity   *int            `json:"unit_quantity"`
	UnitValue      decimal.Decimal `json:"unit_value"`
	Quantity       int             `json:"quantity"`
	OrderDate      time.Time       `json:"order_date"`
	OrderStatus    string          `json:"order_status"`
	Image          string          `json:"image,omitempty"`
}

// CreateUserInput carries the fields of a new user.
type CreateUserInput struct {
	Name     string
	FullName string
	Password string
	IsAdmin  bool
	Email    *string
}

// UpdateUserInput carries a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string
	FullName *string
	Password *string
	Email    *string
}

var errUserExists = validationError("User already exists", "User with this name or full name already exists")

// UserService handles business logic related to users.
type UserService struct {
	userRepo   repositories.UserRepository
	detailRepo repositories.OrderDetailRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, detailRepo repositories.OrderDetailRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		detailRepo: detailRepo,
	}
}

// List returns users matching the filter with their addresses.
func (s *UserService) List(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	return s.userRepo.List(ctx, filter)
}

// Get returns a user with the addresses selected by scope.
func (s *UserService) Get(ctx context.Context, id string, scope AddressScope) (*UserView, error) {
	user, err := s.userRepo.GetWithAddresses(ctx, id, scope == AddressScopeActiveOnly)
	if err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	if user.Addresses == nil {
		user.Addresses = []models.Address{}
	}
	return &UserView{Scope: scope, User: user}, nil
}

// PurchasedProducts lists the distinct products the user has ordered, newest order first.
func (s *UserService) PurchasedProducts(ctx context.Context, id string, filter repositories.PurchaseFilter) ([]PurchasedProduct, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, errUserNotFound)
	}

	details, err := s.detailRepo.ListByClient(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(details))
	products := make([]PurchasedProduct, 0, len(details))
	for _, d := range details {
		if seen[d.ProductID] || d.Product == nil || d.Order == nil {
			continue
		}
		seen[d.ProductID] = true

		p := PurchasedProduct{
			ID:             d.Product.ID,
			OrderDetailsID: d.ID,
			Name:           d.Product.Name,
			Toughness:      d.Product.Toughness,
			Dimension:      d.Product.Dimension,
			Type:           d.Product.Type,
			Category:       d.Product.Category,
			Description:    d.Product.Description,
			UnitQuantity:   d.Product.UnitQuantity,
			UnitValue:      d.Product.UnitValue,
			Quantity:       d.Quantity,
			OrderDate:      d.Order.OrderDate,
			OrderStatus:    d.Order.Status,
		}
		if len(d.Product.Images) > 0 {
			p.Image = d.Product.Images[0].ImageURL
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, notFoundError("No products found", "No products found for this user")
	}
	return products, nil
}

// Create registers a user with a hashed password.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	taken, err := s.userRepo.NameTaken(ctx, in.Name, in.FullName, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errUserExists
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		FullName: in.FullName,
		Password: hashed,
		IsAdmin:  in.IsAdmin,
		Email:    in.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, errUserExists
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. Names stay unique among other users.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, errUserNotFound)
	}

	fields := make(map[string]interface{})
	var name, fullName string
	if in.Name != nil {
		name = *in.Name
		fields["name"] = name
	}
	if in.FullName != nil {
		fullName = *in.FullName
		fields["full_name"] = fullName
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}

	taken, err := s.userRepo.NameTaken(ctx, name, fullName, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errUserExists
	}

	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}

	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, errUserExists
		}
		return nil, lookupError(err, errUserNotFound)
	}
	return s.userRepo.GetByID(ctx, id)
}

// Delete removes the user and everything that belongs to it.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	return user, nil
}
