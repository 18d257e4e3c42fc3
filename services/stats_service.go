package services

import (
	"Marketplace/models"
	"context"
	"go.uber.org/zap"
)

// 統計只讀，快取失敗時直接查資料庫
type StatsService struct {
	store  StatsStore
	cache  StatsCache
	logger *zap.Logger
}

func NewStatsService(store StatsStore, cache StatsCache, logger *zap.Logger) *StatsService {
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{store: store, cache: cache, logger: logger}
}

func (s *StatsService) SellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, error) {
	cached, found, err := s.cache.GetSellerStats(ctx, sellerID)
	if err != nil {
		s.logger.Warn("read seller stats cache failed", zap.Uint("seller_id", sellerID), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	stats, err := s.store.SellerStats(ctx, sellerID)
	if err != nil {
		return nil, &AggregationError{Err: err}
	}

	if err := s.cache.SetSellerStats(ctx, sellerID, stats); err != nil {
		s.logger.Warn("write seller stats cache failed", zap.Uint("seller_id", sellerID), zap.Error(err))
	}
	return stats, nil
}

func (s *StatsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	cached, found, err := s.cache.GetAdminStats(ctx)
	if err != nil {
		s.logger.Warn("read admin stats cache failed", zap.Error(err))
	}
	if found {
		return cached, nil
	}

	stats, err := s.store.AdminStats(ctx)
	if err != nil {
		return nil, &AggregationError{Err: err}
	}

	if err := s.cache.SetAdminStats(ctx, stats); err != nil {
		s.logger.Warn("write admin stats cache failed", zap.Error(err))
	}
	return stats, nil
}
