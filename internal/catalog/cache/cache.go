package cache

import (
	"context"
	"errors"

	"github.com/Pageblan/Carepulse/internal/catalog/domain"
)

// MedicineCache caches catalog reads. The consumer (the catalog service)
// defines this interface, not the Redis implementation.
type MedicineCache interface {
	GetList(ctx context.Context) ([]domain.Medicine, error)
	SetList(ctx context.Context, medicines []domain.Medicine) error
	Get(ctx context.Context, id string) (*domain.Medicine, error)
	Set(ctx context.Context, m *domain.Medicine) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
