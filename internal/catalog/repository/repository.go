package repository

import (
	"context"
	"errors"

	"github.com/Pageblan/Carepulse/internal/catalog/domain"
)

var ErrMedicineNotFound = errors.New("medicine not found")

// MedicineRepository defines the interface for catalog data operations
type MedicineRepository interface {
	List(ctx context.Context) ([]domain.Medicine, error)
	GetByID(ctx context.Context, id string) (*domain.Medicine, error)
	Create(ctx context.Context, m *domain.Medicine) error
	CreateIndexes(ctx context.Context) error
}
