package service

import (
	"context"

	"pookadai/models"
)

// ProductCatalogInterface defines the contract for catalog operations
type ProductCatalogInterface interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context, category string, onlyAvailable bool) ([]models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	SetAvailability(ctx context.Context, id string, available bool) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
