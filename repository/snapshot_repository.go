package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// PostgresSnapshotRepository stores snapshots in the store_snapshots table
type PostgresSnapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository
func NewPostgresSnapshotRepository(conn *sql.DB, logger *zap.Logger) *PostgresSnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresSnapshotRepository{db: conn, logger: logger}
}

// Ensure PostgresSnapshotRepository implements SnapshotRepositoryInterface
var _ SnapshotRepositoryInterface = (*PostgresSnapshotRepository)(nil)

// Save upserts payload under key
func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO store_snapshots (key, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		r.logger.Error("snapshot save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// Load returns the payload stored under key, or nil when there is none
func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload::text FROM store_snapshots WHERE key = $1`

	var payload string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("snapshot load failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return []byte(payload), nil
}

// MemorySnapshotRepository keeps snapshots in process memory
type MemorySnapshotRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemorySnapshotRepository creates a new MemorySnapshotRepository
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{items: make(map[string][]byte)}
}

var _ SnapshotRepositoryInterface = (*MemorySnapshotRepository)(nil)

func (r *MemorySnapshotRepository) Save(_ context.Context, key string, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	r.mu.Lock()
	r.items[key] = stored
	r.mu.Unlock()
	return nil
}

func (r *MemorySnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
