package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pookadai/models"
	"pookadai/repository"
)

// Snapshot keys
const (
	SnapshotKeyCarts    = "carts"
	SnapshotKeyOrders   = "orders"
	SnapshotKeyProducts = "products"
)

// SnapshotService saves and restores the in-memory stores through a SnapshotRepository
type SnapshotService struct {
	repository repository.SnapshotRepositoryInterface
	carts      *CartRegistry
	orders     *OrderStore
	products   repository.ProductRepositoryInterface
	logger     *zap.Logger
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(
	repo repository.SnapshotRepositoryInterface,
	carts *CartRegistry,
	orders *OrderStore,
	products repository.ProductRepositoryInterface,
	logger *zap.Logger,
) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		repository: repo,
		carts:      carts,
		orders:     orders,
		products:   products,
		logger:     logger,
	}
}

// Save writes products, orders and carts
func (s *SnapshotService) Save(ctx context.Context) error {
	products, err := s.products.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot products: %w", err)
	}
	if err := s.save(ctx, SnapshotKeyProducts, products); err != nil {
		return err
	}
	if err := s.save(ctx, SnapshotKeyOrders, s.orders.Snapshot()); err != nil {
		return err
	}
	if err := s.save(ctx, SnapshotKeyCarts, s.carts.Snapshot()); err != nil {
		return err
	}

	s.logger.Debug("snapshots saved", zap.Int("products", len(products)))
	return nil
}

// Restore loads whatever snapshots exist. Missing keys leave the store untouched.
func (s *SnapshotService) Restore(ctx context.Context) error {
	var products []models.Product
	found, err := s.load(ctx, SnapshotKeyProducts, &products)
	if err != nil {
		return err
	}
	if found {
		if err := s.products.Restore(ctx, products); err != nil {
			return fmt.Errorf("failed to restore products: %w", err)
		}
	}

	var orders models.OrderSnapshot
	found, err = s.load(ctx, SnapshotKeyOrders, &orders)
	if err != nil {
		return err
	}
	if found {
		if err := s.orders.Restore(orders); err != nil {
			return fmt.Errorf("failed to restore orders: %w", err)
		}
	}

	var carts map[string]models.CartSnapshot
	found, err = s.load(ctx, SnapshotKeyCarts, &carts)
	if err != nil {
		return err
	}
	if found {
		s.carts.Restore(carts)
	}

	s.logger.Info("snapshots restored")
	return nil
}

// Run evicts idle carts and saves every interval until ctx is done, then saves once more
func (s *SnapshotService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := s.Save(final); err != nil {
				s.logger.Error("final snapshot failed", zap.Error(err))
				return err
			}
			s.logger.Info("final snapshot saved")
			return nil
		case <-ticker.C:
			s.carts.EvictIdle()
			if err := s.Save(ctx); err != nil {
				s.logger.Warn("periodic snapshot failed", zap.Error(err))
			}
		}
	}
}

func (s *SnapshotService) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", key, err)
	}
	if err := s.repository.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", key, err)
	}
	return nil
}

func (s *SnapshotService) load(ctx context.Context, key string, v any) (bool, error) {
	payload, err := s.repository.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s snapshot: %w", key, err)
	}
	if payload == nil {
		return false, nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("failed to decode %s snapshot: %w", key, err)
	}
	return true, nil
}
