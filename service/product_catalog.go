package service

import (
	"context"

	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/repository"
)

// ProductCatalog handles catalog browsing and owner catalog management
type ProductCatalog struct {
	repository repository.ProductRepositoryInterface
	identity   IdentityProvider
	logger     *zap.Logger
}

// NewProductCatalog creates a new ProductCatalog
func NewProductCatalog(repo repository.ProductRepositoryInterface, identity IdentityProvider, logger *zap.Logger) *ProductCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCatalog{
		repository: repo,
		identity:   identity,
		logger:     logger,
	}
}

// Ensure ProductCatalog implements ProductCatalogInterface and CatalogProvider
var (
	_ ProductCatalogInterface = (*ProductCatalog)(nil)
	_ CatalogProvider         = (*ProductCatalog)(nil)
)

// GetProduct returns the product with id
func (s *ProductCatalog) GetProduct(ctx context.Context, id string) (models.Product, error) {
	product, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	return *product, nil
}

// List returns products, optionally restricted to one category and to available products
func (s *ProductCatalog) List(ctx context.Context, category string, onlyAvailable bool) ([]models.Product, error) {
	filter := repository.ProductFilterParams{OnlyAvailable: onlyAvailable}
	if category != "" {
		filter.Category = &category
	}
	return s.repository.List(ctx, filter)
}

// Create adds a product. Owner only.
func (s *ProductCatalog) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := requireOwner(ctx, s.identity, "create products"); err != nil {
		return nil, err
	}
	return s.repository.Create(ctx, req)
}

// Update applies patch to product id. Owner only.
func (s *ProductCatalog) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := requireOwner(ctx, s.identity, "update products"); err != nil {
		return nil, err
	}
	return s.repository.Update(ctx, id, patch)
}

// SetAvailability toggles whether a product can be added to carts. Owner only.
func (s *ProductCatalog) SetAvailability(ctx context.Context, id string, available bool) (*models.Product, error) {
	return s.Update(ctx, id, models.ProductPatch{Available: &available})
}

// Delete removes product id. Owner only.
func (s *ProductCatalog) Delete(ctx context.Context, id string) error {
	if err := requireOwner(ctx, s.identity, "delete products"); err != nil {
		return err
	}
	return s.repository.Delete(ctx, id)
}
