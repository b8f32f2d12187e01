package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pookadai/models"
)

// ProductFilterParams represents optional filter parameters for products
type ProductFilterParams struct {
	Category      *string
	OnlyAvailable bool
}

// ProductRepository keeps the catalog in memory; it is persisted through snapshots
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	logger   *zap.Logger
	now      func() time.Time
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(logger *zap.Logger) *ProductRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductRepository{
		products: make(map[string]*models.Product),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// Create adds a product to the catalog
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.now()
	product := models.Product{
		ID:            uuid.NewString(),
		NameEN:        strings.TrimSpace(req.NameEN),
		NameTA:        strings.TrimSpace(req.NameTA),
		DescriptionEN: req.DescriptionEN,
		DescriptionTA: req.DescriptionTA,
		Category:      strings.ToLower(strings.TrimSpace(req.Category)),
		Price:         req.Price,
		Available:     req.Available,
		TiedLength:    req.TiedLength,
		BallQuantity:  req.BallQuantity,
		ImageURL:      req.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.mu.Lock()
	r.products[product.ID] = &product
	r.mu.Unlock()

	r.logger.Info("product created", zap.String("product_id", product.ID), zap.String("name", product.NameEN))
	created := product
	return &created, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.NotFoundError("product %s not found", id)
	}
	found := *product
	return &found, nil
}

// Update validates and merges patch into the product
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.NotFoundError("product %s not found", id)
	}
	updated := patch.Apply(*product)
	updated.UpdatedAt = r.now()
	r.products[id] = &updated

	r.logger.Info("product updated", zap.String("product_id", id))
	result := updated
	return &result, nil
}

// Delete removes a product from the catalog. Carts and orders keep their copies.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.NotFoundError("product %s not found", id)
	}
	delete(r.products, id)
	r.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// List returns products matching filter, oldest first
func (r *ProductRepository) List(ctx context.Context, filter ProductFilterParams) ([]models.Product, error) {
	var category string
	if filter.Category != nil {
		category = strings.ToLower(strings.TrimSpace(*filter.Category))
	}

	r.mu.RLock()
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		if filter.OnlyAvailable && !p.Available {
			continue
		}
		products = append(products, *p)
	}
	r.mu.RUnlock()

	sortProducts(products)
	return products, nil
}

// Snapshot returns every product for persistence
func (r *ProductRepository) Snapshot(ctx context.Context) ([]models.Product, error) {
	return r.List(ctx, ProductFilterParams{})
}

// Restore replaces the catalog with products
func (r *ProductRepository) Restore(ctx context.Context, products []models.Product) error {
	restored := make(map[string]*models.Product, len(products))
	for i := range products {
		p := products[i]
		if p.ID == "" {
			return models.ValidationError("snapshot product without id")
		}
		restored[p.ID] = &p
	}

	r.mu.Lock()
	r.products = restored
	r.mu.Unlock()

	r.logger.Info("catalog restored", zap.Int("products", len(restored)))
	return nil
}

func sortProducts(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}
