package service

import (
	"context"
	"first20_backend/pkg/logger"
	"first20_backend/pkg/monitoring"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DashboardCache stores rendered dashboards per user. Any write that can
// change a user's dashboard must call Invalidate.
type DashboardCache interface {
	Get(ctx context.Context, userID uint, key string) ([]byte, bool)
	Set(ctx context.Context, userID uint, key string, data []byte)
	Invalidate(ctx context.Context, userID uint)
}

// NoopCache is used when redis is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint, string) ([]byte, bool) { return nil, false }
func (NoopCache) Set(context.Context, uint, string, []byte)        {}
func (NoopCache) Invalidate(context.Context, uint)                 {}

// RedisDashboardCache keeps one hash per user, one field per dashboard
// variant, so invalidation is a single DEL.
type RedisDashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) DashboardCache {
	if rdb == nil {
		return NoopCache{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisDashboardCache{rdb: rdb, ttl: ttl}
}

func dashboardKey(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d", userID)
}

func (c *RedisDashboardCache) Get(ctx context.Context, userID uint, key string) ([]byte, bool) {
	data, err := c.rdb.HGet(ctx, dashboardKey(userID), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("dashboard cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		monitoring.DashboardCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	monitoring.DashboardCache.WithLabelValues("hit").Inc()
	return data, true
}

func (c *RedisDashboardCache) Set(ctx context.Context, userID uint, key string, data []byte) {
	k := dashboardKey(userID)
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, k, key, data)
	pipe.Expire(ctx, k, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("dashboard cache write failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func (c *RedisDashboardCache) Invalidate(ctx context.Context, userID uint) {
	if err := c.rdb.Del(ctx, dashboardKey(userID)).Err(); err != nil {
		logger.Log.Warn("dashboard cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
