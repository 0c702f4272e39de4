package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/Pageblan/Carepulse/internal/catalog/cache"
	"github.com/Pageblan/Carepulse/internal/catalog/domain"
	"github.com/Pageblan/Carepulse/internal/catalog/repository"
)

const listFlightKey = "medicines"

type CatalogService struct {
	repo  repository.MedicineRepository
	cache cache.MedicineCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.MedicineRepository, c cache.MedicineCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
	}
}

// ListMedicines serves the catalog read path: cache first, then the
// repository, with singleflight collapsing concurrent misses into one
// database query. Cache failures degrade to the repository, never to
// the caller.
func (s *CatalogService) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	v, err, _ := s.sfg.Do(listFlightKey, func() (interface{}, error) {
		medicines, err := s.cache.GetList(ctx)
		if err == nil {
			return medicines, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		medicines, errList := s.repo.List(ctx)
		if errList != nil {
			return nil, errList
		}

		if errSet := s.cache.SetList(ctx, medicines); errSet != nil {
			log.Printf("cache set error: %v", errSet)
		}
		return medicines, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Medicine), nil
}

// GetMedicine reads one catalog document, cache first.
func (s *CatalogService) GetMedicine(ctx context.Context, id string) (*domain.Medicine, error) {
	med, err := s.cache.Get(ctx, id)
	if err == nil {
		return med, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("cache get error: %v", err)
	}

	med, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errSet := s.cache.Set(ctx, med); errSet != nil {
		log.Printf("cache set error: %v", errSet)
	}
	return med, nil
}

// CreateMedicine writes through the repository and drops the cached list.
func (s *CatalogService) CreateMedicine(ctx context.Context, med *domain.Medicine) error {
	if err := s.repo.Create(ctx, med); err != nil {
		log.Printf("repo create medicine error: %v", err)
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
	return nil
}
