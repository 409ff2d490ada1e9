package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newpack/internal/models"
	"newpack/internal/repositories"
	"newpack/pkg/pagination"

	"github.com/shopspring/decimal"
)

// CatalogProduct is a product as shown in the public catalog. The price is not disclosed.
type CatalogProduct struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Toughness    *string               `json:"toughness"`
	Dimension    *string               `json:"dimension"`
	Type         string                `json:"type"`
	Category     string                `json:"category"`
	Description  string                `json:"description"`
	UnitQuantity *int                  `json:"unit_quantity"`
	Images       []models.ProductImage `json:"images"`
	Featured     bool                  `json:"featured"`
}

// ProductPage is one page of the catalog.
type ProductPage struct {
	Products   []CatalogProduct `json:"products"`
	Pagination pagination.Meta  `json:"pagination"`
}

// ProductQuery filters the catalog. Any search term matching the name selects a product.
type ProductQuery struct {
	Categories []string
	Search     []string
	Page       pagination.Params
}

// CreateProductInput carries a new product. ID is optional.
type CreateProductInput struct {
	ID           *uint
	Name         string
	Toughness    *string
	Dimension    *string
	Type         string
	Category     string
	Description  string
	UnitQuantity *int
	UnitValue    decimal.Decimal
}

// UpdateProductInput carries a partial product update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name         *string
	Toughness    *string
	Dimension    *string
	Type         *string
	Category     *string
	Description  *string
	UnitQuantity *int
	UnitValue    *decimal.Decimal
}

var errProductExists = validationError("Product already exists", "Product with this ID already exists")

// ProductService handles business logic related to products.
type ProductService struct {
	productRepo   repositories.ProductRepository
	houseClientID string
}

// NewProductService creates a new ProductService. Products ordered by
// houseClientID are flagged as featured in the catalog.
func NewProductService(productRepo repositories.ProductRepository, houseClientID string) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		houseClientID: houseClientID,
	}
}

// List returns a catalog page, most ordered products first.
func (s *ProductService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var invalid []string
	for _, c := range q.Categories {
		if !models.IsProductCategory(c) {
			invalid = append(invalid, c)
		}
	}
	if len(invalid) > 0 {
		return nil, validationError("Invalid categories", fmt.Sprintf(
			"The following categories are invalid: %s. Valid categories are: %s",
			strings.Join(invalid, ", "), strings.Join(models.ProductCategories, ", "),
		))
	}

	products, total, err := s.productRepo.List(ctx, repositories.ProductFilter{
		Categories: q.Categories,
		Search:     q.Search,
		Offset:     q.Page.Offset,
		Limit:      q.Page.Limit,
	})
	if err != nil {
		return nil, err
	}

	featured := map[uint]bool{}
	if s.houseClientID != "" && len(products) > 0 {
		ids := make([]uint, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		if featured, err = s.productRepo.OrderedBy(ctx, s.houseClientID, ids); err != nil {
			return nil, err
		}
	}

	page := &ProductPage{
		Products:   make([]CatalogProduct, len(products)),
		Pagination: q.Page.Meta(total),
	}
	for i, p := range products {
		images := p.Images
		if images == nil {
			images = []models.ProductImage{}
		}
		page.Products[i] = CatalogProduct{
			ID:           p.ID,
			Name:         p.Name,
			Toughness:    p.Toughness,
			Dimension:    p.Dimension,
			Type:         p.Type,
			Category:     p.Category,
			Description:  p.Description,
			UnitQuantity: p.UnitQuantity,
			Images:       images,
			Featured:     featured[p.ID],
		}
	}
	return page, nil
}

// Get returns a product with its images.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errProductNotFound)
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := checkUnitQuantity(in.Type, in.UnitQuantity, nil); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         in.Name,
		Toughness:    in.Toughness,
		Dimension:    in.Dimension,
		Type:         in.Type,
		Category:     in.Category,
		Description:  in.Description,
		UnitQuantity: in.UnitQuantity,
		UnitValue:    in.UnitValue,
	}
	if in.ID != nil {
		_, err := s.productRepo.GetByID(ctx, *in.ID)
		switch {
		case err == nil:
			return nil, errProductExists
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
		product.ID = *in.ID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, errProductExists
		}
		return nil, err
	}
	return product, nil
}

// Update applies a partial update. A box never carries a unit quantity,
// whether the type or the quantity is the value being changed.
func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	stored, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errProductNotFound)
	}

	var newType string
	if in.Type != nil {
		newType = *in.Type
	}
	if err := checkUnitQuantity(newType, in.UnitQuantity, stored); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Toughness != nil {
		fields["toughness"] = *in.Toughness
	}
	if in.Dimension != nil {
		fields["dimension"] = *in.Dimension
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.UnitQuantity != nil {
		fields["unit_quantity"] = *in.UnitQuantity
	}
	if in.UnitValue != nil {
		fields["unit_value"] = *in.UnitValue
	}

	if err := s.productRepo.Update(ctx, id, fields); err != nil {
		return nil, lookupError(err, errProductNotFound)
	}
	return s.Get(ctx, id)
}

// Delete removes the product with its images and line items.
func (s *ProductService) Delete(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errProductNotFound)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, errProductNotFound)
	}
	return product, nil
}
