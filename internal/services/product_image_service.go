package services

import (
	"context"

	"newpack/internal/models"
	"newpack/internal/repositories"
)

// ImageVerifier checks that a URL serves an accepted picture format.
type ImageVerifier interface {
	IsValidImage(ctx context.Context, url string) bool
}

// UpdateProductImageInput carries a partial image update. Nil fields are left unchanged.
type UpdateProductImageInput struct {
	ProductID *uint
	ImageURL  *string
}

var errInvalidImageURL = validationError("Invalid image URL", "The provided URL is not a valid image")

// ProductImageService handles business logic related to product images.
type ProductImageService struct {
	imageRepo   repositories.ProductImageRepository
	productRepo repositories.ProductRepository
	verifier    ImageVerifier
}

// NewProductImageService creates a new ProductImageService.
func NewProductImageService(imageRepo repositories.ProductImageRepository, productRepo repositories.ProductRepository, verifier ImageVerifier) *ProductImageService {
	return &ProductImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		verifier:    verifier,
	}
}

// List returns every image, or one image per distinct URL when unique is set.
func (s *ProductImageService) List(ctx context.Context, unique bool) ([]models.ProductImage, error) {
	return s.imageRepo.List(ctx, unique)
}

// Get retrieves a product image by its ID.
func (s *ProductImageService) Get(ctx context.Context, id uint) (*models.ProductImage, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errImageNotFound)
	}
	return image, nil
}

// Create links a verified picture to an existing product.
func (s *ProductImageService) Create(ctx context.Context, productID uint, imageURL string) (*models.ProductImage, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, lookupError(err, validationError("Product not found", "Product with this ID does not exist"))
	}
	if !s.verifier.IsValidImage(ctx, imageURL) {
		return nil, errInvalidImageURL
	}

	image := &models.ProductImage{ProductID: productID, ImageURL: imageURL}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// Update changes the product or URL of an image.
func (s *ProductImageService) Update(ctx context.Context, id uint, in UpdateProductImageInput) (*models.ProductImage, error) {
	if _, err := s.imageRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, errImageNotFound)
	}

	fields := make(map[string]interface{})
	if in.ProductID != nil {
		if _, err := s.productRepo.GetByID(ctx, *in.ProductID); err != nil {
			return nil, lookupError(err, errProductNotFound)
		}
		fields["product_id"] = *in.ProductID
	}
	if in.ImageURL != nil {
		if !s.verifier.IsValidImage(ctx, *in.ImageURL) {
			return nil, errInvalidImageURL
		}
		fields["image_url"] = *in.ImageURL
	}

	if err := s.imageRepo.Update(ctx, id, fields); err != nil {
		return nil, lookupError(err, errImageNotFound)
	}
	return s.Get(ctx, id)
}

// Delete removes a product image and returns it.
func (s *ProductImageService) Delete(ctx context.Context, id uint) (*models.ProductImage, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errImageNotFound)
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, errImageNotFound)
	}
	return image, nil
}
