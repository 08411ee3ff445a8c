package usecase

import (
	"context"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	drepo "DataHub/internal/domain/repository"
)

// InventoryService lists what the store holds.
type InventoryService struct {
	store drepo.Store
}

func NewInventoryService(store drepo.Store) *InventoryService {
	return &InventoryService{store: store}
}

func (s *InventoryService) Inventory(ctx context.Context) (*models.Inventory, error) {
	inds, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, errs.CacheIO("list_indicators", "", err)
	}
	series, err := s.store.ListSeriesStats(ctx)
	if err != nil {
		return nil, errs.CacheIO("list_series", "", err)
	}
	if inds == nil {
		inds = []models.IndicatorSummary{}
	}
	if series == nil {
		series = []models.SeriesStats{}
	}
	return &models.Inventory{Indicators: inds, Series: series}, nil
}

// Health pings the store.
func (s *InventoryService) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}
