package cache

import (
	"Marketplace/models"
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

const (
	adminStatsKey  = "stats:admin"
	sellerStatsKey = "stats:seller:%d"
)

// 統計結果快取，建立訂單後清除
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func sellerKey(sellerID uint) string {
	return fmt.Sprintf(sellerStatsKey, sellerID)
}

func (c *StatsCache) GetSellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, bool, error) {
	var stats models.SellerStats
	found, err := c.getJSON(ctx, sellerKey(sellerID), &stats)
	if !found || err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *StatsCache) SetSellerStats(ctx context.Context, sellerID uint, stats *models.SellerStats) error {
	return c.setJSON(ctx, sellerKey(sellerID), stats)
}

func (c *StatsCache) GetAdminStats(ctx context.Context) (*models.AdminStats, bool, error) {
	var stats models.AdminStats
	found, err := c.getJSON(ctx, adminStatsKey, &stats)
	if !found || err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *StatsCache) SetAdminStats(ctx context.Context, stats *models.AdminStats) error {
	return c.setJSON(ctx, adminStatsKey, stats)
}

// 清除全站統計及相關賣家統計
func (c *StatsCache) Invalidate(ctx context.Context, sellerIDs []uint) error {
	keys := make([]string, 0, len(sellerIDs)+1)
	keys = append(keys, adminStatsKey)
	for _, id := range sellerIDs {
		keys = append(keys, sellerKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *StatsCache) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *StatsCache) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}
