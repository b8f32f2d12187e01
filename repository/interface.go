package repository

import (
	"context"

	"pookadai/models"
)

// ProductRepositoryInterface defines the contract for catalog storage
type ProductRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilterParams) ([]models.Product, error)
	Snapshot(ctx context.Context) ([]models.Product, error)
	Restore(ctx context.Context, products []models.Product) error
}

// SnapshotRepositoryInterface persists serialized store snapshots by key
type SnapshotRepositoryInterface interface {
	Save(ctx context.Context, key string, payload []byte) error
	// Load returns (nil, nil) when nothing was saved under key
	Load(ctx context.Context, key string) ([]byte, error)
}
